package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/gridiron/internal/models"
)

const recentFormLength = 5

type result byte

const (
	win  result = 'W'
	loss result = 'L'
	tie  result = 'T'
)

// ComputeStats folds the completed games of a list into a season record for
// teamName. Games that aren't final are ignored.
func ComputeStats(games []models.Game, teamName string) models.TeamSeasonStats {
	completed := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.Completed() {
			completed = append(completed, g)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartTime.Before(completed[j].StartTime)
	})

	stats := models.TeamSeasonStats{CurrentStreak: "N/A"}
	results := make([]result, 0, len(completed))
	for _, g := range completed {
		home := playsAtHome(g, teamName)
		own, opp := teamScores(g, teamName)
		stats.PointsFor += own
		stats.PointsAgainst += opp
		if home {
			stats.HomeGames++
		} else {
			stats.AwayGames++
		}

		switch {
		case own > opp:
			stats.Wins++
			if home {
				stats.HomeWins++
			} else {
				stats.AwayWins++
			}
			results = append(results, win)
		case own < opp:
			stats.Losses++
			results = append(results, loss)
		default:
			stats.Ties++
			results = append(results, tie)
		}
	}

	stats.GamesPlayed = len(completed)
	stats.PointDifferential = stats.PointsFor - stats.PointsAgainst
	if stats.GamesPlayed > 0 {
		played := float64(stats.GamesPlayed)
		stats.WinPercentage = round2(float64(stats.Wins) / played * 100)
		stats.AveragePointsFor = round2(float64(stats.PointsFor) / played)
		stats.AveragePointsAgainst = round2(float64(stats.PointsAgainst) / played)
	}
	stats.HomeWinPercentage = splitPercentage(stats.HomeWins, stats.HomeGames)
	stats.AwayWinPercentage = splitPercentage(stats.AwayWins, stats.AwayGames)

	stats.CurrentStreak = currentStreak(results)
	stats.LongestWinStreak, stats.LongestLossStreak = longestStreaks(results)
	stats.RecentForm = recentForm(results)
	return stats
}

// playsAtHome uses IsHome on games carrying team context and matches by
// name otherwise.
func playsAtHome(g models.Game, teamName string) bool {
	if g.Opponent == "" {
		return teamIsHome(g, teamName)
	}
	return g.IsHome
}

// teamScores returns (own, opponent).
func teamScores(g models.Game, teamName string) (int, int) {
	if playsAtHome(g, teamName) {
		return g.HomeScore, g.AwayScore
	}
	return g.AwayScore, g.HomeScore
}

// currentStreak walks back from the most recent result. A tie ends the
// streak; a most recent tie means there is none.
func currentStreak(results []result) string {
	if len(results) == 0 {
		return "N/A"
	}
	latest := results[len(results)-1]
	if latest == tie {
		return "N/A"
	}
	n := 0
	for i := len(results) - 1; i >= 0 && results[i] == latest; i-- {
		n++
	}
	return formatStreak(n, latest)
}

func formatStreak(n int, r result) string {
	switch {
	case r == win && n == 1:
		return "1 win"
	case r == win:
		return fmt.Sprintf("%d wins", n)
	case n == 1:
		return "1 loss"
	default:
		return fmt.Sprintf("%d losses", n)
	}
}

func longestStreaks(results []result) (int, int) {
	var longestWin, longestLoss, wins, losses int
	for _, r := range results {
		switch r {
		case win:
			wins++
			losses = 0
		case loss:
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		longestWin = max(longestWin, wins)
		longestLoss = max(longestLoss, losses)
	}
	return longestWin, longestLoss
}

func recentForm(results []result) string {
	start := max(0, len(results)-recentFormLength)
	var sb strings.Builder
	for _, r := range results[start:] {
		sb.WriteByte(byte(r))
	}
	return sb.String()
}

// splitPercentage is wins over games to one decimal, 0 without games.
func splitPercentage(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(games)*1000) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
