package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/omarshaarawi/gridiron/internal/models"
)

// GetTeamGames collects the team's games from week 1 through four weeks past
// the current one and splits them around now. When nothing is found the
// result is a generated slate flagged IsFallback.
func (s *SportsService) GetTeamGames(ctx context.Context, teamName string, league models.League) models.TeamGames {
	result := models.TeamGames{
		Team:        strings.TrimSpace(teamName),
		League:      league,
		PastGames:   []models.Game{},
		FutureGames: []models.Game{},
	}

	if team, err := s.LookupTeam(ctx, teamName, league); err == nil {
		result.TeamID = team.ID
		if team.Name != "" {
			result.Team = team.Name
		}
	}

	current := s.CurrentWeek(ctx, league)
	last := min(current+weeksAhead, s.maxWeek)

	var matched []models.Game
	seen := make(map[string]bool)
	for week := 1; week <= last; week++ {
		if err := s.limiter.Wait(ctx); err != nil {
			slog.Info("team games collection stopped", "team", teamName, "week", week, "error", err)
			break
		}

		games, _, err := s.api.ScoreboardGames(ctx, league, week)
		if err != nil {
			logFetchError("week unavailable", err, "league", league, "week", week)
			continue
		}
		for _, g := range games {
			if !MatchesTeam(g, teamName) || seen[g.ID] {
				continue
			}
			seen[g.ID] = true
			matched = append(matched, g)
		}
	}

	past, future := Partition(matched, teamName, s.clock.Now())
	if len(matched) == 0 {
		slog.Info("no games found, using fallback slate", "team", teamName, "league", league)
		s.metrics.Fallback("games")
		past, future = Partition(s.fallback.GenerateTeamGames(result.Team, league), result.Team, s.clock.Now())
		result.IsFallback = true
	}

	result.PastGames = past
	result.FutureGames = future
	return result
}

// MatchesTeam is deliberately loose so partial input like "Chiefs" finds
// "Kansas City Chiefs": containment either way, the search with spaces
// removed, or its first or last word.
func MatchesTeam(g models.Game, search string) bool {
	s := strings.ToLower(strings.TrimSpace(search))
	if s == "" {
		return false
	}
	for _, team := range []string{g.HomeTeam, g.AwayTeam} {
		if matchScore(team, s) > 0 {
			return true
		}
	}
	return false
}

// matchScore ranks how well a team name matches a lowercased search term:
// 4 exact, 3 name contains search, 2 search contains name, 1 word match.
func matchScore(team, search string) int {
	name := strings.ToLower(strings.TrimSpace(team))
	if name == "" || search == "" {
		return 0
	}
	switch {
	case name == search:
		return 4
	case strings.Contains(name, search):
		return 3
	case strings.Contains(search, name):
		return 2
	}

	if compact := strings.ReplaceAll(search, " ", ""); compact != search && strings.Contains(name, compact) {
		return 1
	}
	words := strings.Fields(search)
	if len(words) == 0 {
		return 0
	}
	if strings.Contains(name, words[0]) || strings.Contains(name, words[len(words)-1]) {
		return 1
	}
	return 0
}

// teamIsHome picks the side whose name matches the search better. Equal
// non-zero scores favour home.
func teamIsHome(g models.Game, search string) bool {
	s := strings.ToLower(strings.TrimSpace(search))
	home := matchScore(g.HomeTeam, s)
	away := matchScore(g.AwayTeam, s)
	return home >= away && home > 0
}

// WithTeamContext returns a copy of g with Opponent and IsHome set from the
// searched team's point of view.
func WithTeamContext(g models.Game, search string) models.Game {
	g.IsHome = teamIsHome(g, search)
	if g.IsHome {
		g.Opponent = g.AwayTeam
	} else {
		g.Opponent = g.HomeTeam
	}
	return g
}

// Partition splits games into those starting before now and the rest, each
// in kickoff order. Games without a start time are upcoming and sort last.
func Partition(games []models.Game, search string, now time.Time) (past, future []models.Game) {
	past = []models.Game{}
	future = []models.Game{}
	for _, g := range games {
		g = WithTeamContext(g, search)
		if !g.StartTime.IsZero() && g.StartTime.Before(now) {
			past = append(past, g)
		} else {
			future = append(future, g)
		}
	}

	byKickoff := func(list []models.Game) {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i].StartTime, list[j].StartTime
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.Before(b)
		})
	}
	byKickoff(past)
	byKickoff(future)
	return past, future
}
