package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/gridiron/internal/models"
)

const fallbackNote = "_ESPN unavailable, showing sample data._\n\n"

func leagueLabel(league models.League) string {
	if league == models.LeagueNCAA {
		return "NCAA"
	}
	return "NFL"
}

func ScoreboardReport(league models.League, week int, games []models.Game) string {
	var sb strings.Builder
	if week > 0 {
		sb.WriteString(fmt.Sprintf("🏈 *%s Week %d Scores*\n\n", leagueLabel(league), week))
	} else {
		sb.WriteString(fmt.Sprintf("🏈 *%s Scores*\n\n", leagueLabel(league)))
	}

	if len(games) == 0 {
		sb.WriteString("No games found.")
		return sb.String()
	}

	for _, g := range games {
		sb.WriteString(fmt.Sprintf("*%s* @ *%s*\n", g.AwayTeam, g.HomeTeam))
		switch g.Status {
		case models.StatusScheduled:
			sb.WriteString(fmt.Sprintf("%s, %s\n", g.Date, g.Time))
		case models.StatusFinal:
			sb.WriteString(fmt.Sprintf("%d - %d (Final)\n", g.AwayScore, g.HomeScore))
		default:
			sb.WriteString(fmt.Sprintf("%d - %d (%s)\n", g.AwayScore, g.HomeScore, g.Status))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func ScheduleReport(tg models.TeamGames) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *%s Schedule*\n\n", tg.Team))
	if tg.IsFallback {
		sb.WriteString(fallbackNote)
	}

	sb.WriteString("*Results*\n")
	if len(tg.PastGames) == 0 {
		sb.WriteString("None yet\n")
	}
	for _, g := range tg.PastGames {
		own, opp := teamScores(g, tg.Team)
		outcome := "T"
		switch {
		case !g.Completed():
			outcome = string(g.Status)
		case own > opp:
			outcome = "W"
		case own < opp:
			outcome = "L"
		}
		sb.WriteString(fmt.Sprintf("Wk %d %s %s: %s %d-%d\n", g.Week, venue(g), g.Opponent, outcome, own, opp))
	}

	sb.WriteString("\n*Upcoming*\n")
	if len(tg.FutureGames) == 0 {
		sb.WriteString("No scheduled games\n")
	}
	for _, g := range tg.FutureGames {
		sb.WriteString(fmt.Sprintf("Wk %d %s %s: %s, %s\n", g.Week, venue(g), g.Opponent, g.Date, g.Time))
	}
	return sb.String()
}

func venue(g models.Game) string {
	if g.IsHome {
		return "vs"
	}
	return "@"
}

func StatsReport(r models.TeamStatsReport) string {
	s := r.Stats
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s Season*\n\n", r.Team))
	if r.IsFallback {
		sb.WriteString(fallbackNote)
	}
	sb.WriteString(fmt.Sprintf("Record: %d-%d-%d (%.2f%%)\n", s.Wins, s.Losses, s.Ties, s.WinPercentage))
	sb.WriteString(fmt.Sprintf("Points For: %d (%.2f/game)\n", s.PointsFor, s.AveragePointsFor))
	sb.WriteString(fmt.Sprintf("Points Against: %d (%.2f/game)\n", s.PointsAgainst, s.AveragePointsAgainst))
	sb.WriteString(fmt.Sprintf("Differential: %+d\n", s.PointDifferential))
	sb.WriteString(fmt.Sprintf("Home: %d/%d won (%.1f%%) / Away: %d/%d won (%.1f%%)\n",
		s.HomeWins, s.HomeGames, s.HomeWinPercentage, s.AwayWins, s.AwayGames, s.AwayWinPercentage))
	sb.WriteString(fmt.Sprintf("Streak: %s\n", s.CurrentStreak))
	sb.WriteString(fmt.Sprintf("Longest: %d W / %d L\n", s.LongestWinStreak, s.LongestLossStreak))
	if s.RecentForm != "" {
		sb.WriteString(fmt.Sprintf("Form: %s\n", s.RecentForm))
	}
	return sb.String()
}

// RosterReport lists at most limit players; limit <= 0 lists all.
func RosterReport(teamName string, roster models.Roster, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 *%s Roster*\n\n", teamName))
	if roster.IsFallback {
		sb.WriteString(fallbackNote)
	}

	players := roster.Players
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	for _, p := range players {
		sb.WriteString(fmt.Sprintf("#%s %s - %s (%s, %s)\n", p.Jersey, p.Name, p.Position, p.Height, p.Weight))
	}
	if len(players) < len(roster.Players) {
		sb.WriteString(fmt.Sprintf("\n...and %d more", len(roster.Players)-len(players)))
	}
	return sb.String()
}
