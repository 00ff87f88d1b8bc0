package service

import (
	"testing"

	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScoreboardReport(t *testing.T) {
	games := []models.Game{
		{HomeTeam: "Seattle Seahawks", AwayTeam: "Denver Broncos", HomeScore: 26, AwayScore: 20, Status: models.StatusFinal},
		{HomeTeam: "Kansas City Chiefs", AwayTeam: "Baltimore Ravens", Status: models.StatusScheduled, Date: "Sep 5, 2024", Time: "8:20 PM EDT"},
		{HomeTeam: "Detroit Lions", AwayTeam: "Los Angeles Rams", HomeScore: 14, AwayScore: 7, Status: models.StatusLive},
	}

	report := ScoreboardReport(models.LeagueNFL, 1, games)

	assert.Contains(t, report, "*NFL Week 1 Scores*")
	assert.Contains(t, report, "*Denver Broncos* @ *Seattle Seahawks*\n20 - 26 (Final)")
	assert.Contains(t, report, "Sep 5, 2024, 8:20 PM EDT")
	assert.Contains(t, report, "7 - 14 (Live)")

	assert.Contains(t, ScoreboardReport(models.LeagueNCAA, 0, nil), "No games found.")
}

func TestScheduleReport(t *testing.T) {
	tg := models.TeamGames{
		Team: "Seattle Seahawks",
		PastGames: []models.Game{
			{Week: 1, HomeTeam: "Seattle Seahawks", AwayTeam: "Denver Broncos", HomeScore: 26, AwayScore: 20, Status: models.StatusFinal, Opponent: "Denver Broncos", IsHome: true},
			{Week: 2, HomeTeam: "New England Patriots", AwayTeam: "Seattle Seahawks", HomeScore: 23, AwayScore: 20, Status: models.StatusFinal, Opponent: "New England Patriots"},
		},
		FutureGames: []models.Game{
			{Week: 3, HomeTeam: "Seattle Seahawks", AwayTeam: "Miami Dolphins", Status: models.StatusScheduled, Opponent: "Miami Dolphins", IsHome: true, Date: "Sep 22, 2024", Time: "4:05 PM EDT"},
		},
		IsFallback: true,
	}

	report := ScheduleReport(tg)

	assert.Contains(t, report, fallbackNote)
	assert.Contains(t, report, "Wk 1 vs Denver Broncos: W 26-20")
	assert.Contains(t, report, "Wk 2 @ New England Patriots: L 20-23")
	assert.Contains(t, report, "Wk 3 vs Miami Dolphins: Sep 22, 2024, 4:05 PM EDT")
}

func TestStatsReport(t *testing.T) {
	report := StatsReport(models.TeamStatsReport{
		Team: "Seattle Seahawks",
		Stats: models.TeamSeasonStats{
			Wins: 2, Losses: 1, WinPercentage: 66.67,
			PointsFor: 59, PointsAgainst: 64, PointDifferential: -5,
			AveragePointsFor: 19.67, AveragePointsAgainst: 21.33,
			CurrentStreak: "1 loss", LongestWinStreak: 2, LongestLossStreak: 1,
			RecentForm: "WWL",
			HomeGames: 2, HomeWins: 2, HomeWinPercentage: 100,
			AwayGames: 1, AwayWinPercentage: 0,
		},
	})

	assert.Contains(t, report, "Record: 2-1-0 (66.67%)")
	assert.Contains(t, report, "Differential: -5")
	assert.Contains(t, report, "Streak: 1 loss")
	assert.Contains(t, report, "Form: WWL")
	assert.Contains(t, report, "Home: 2/2 won (100.0%) / Away: 0/1 won (0.0%)")
	assert.NotContains(t, report, fallbackNote)
}

func TestRosterReportLimit(t *testing.T) {
	roster := newGenerator(9, 12).GenerateRoster("26", models.LeagueNFL)

	report := RosterReport("Seattle Seahawks", roster, 10)

	assert.Contains(t, report, "*Seattle Seahawks Roster*")
	assert.Contains(t, report, "...and 2 more")
	assert.Contains(t, report, fallbackNote)
}
