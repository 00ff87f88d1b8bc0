package espn

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var est = time.FixedZone("EST", -5*60*60)

const scoreboardJSON = `{
  "week": {"number": 2},
  "events": [
    {
      "id": "401671789",
      "date": "2024-09-08T17:00Z",
      "competitions": [{
        "status": {"type": {"name": "STATUS_FINAL", "completed": true}},
        "competitors": [
          {"homeAway": "home", "score": "26", "team": {"displayName": "Seattle Seahawks", "abbreviation": "SEA"}},
          {"homeAway": "away", "score": 20, "team": {"displayName": "Denver Broncos", "abbreviation": "DEN"}}
        ]
      }]
    },
    {
      "id": "401671790",
      "date": "2024-09-08T20:25Z",
      "competitions": [{
        "status": {"type": {"name": "STATUS_SCHEDULED"}},
        "competitors": [
          {"homeAway": "home", "score": null, "team": {"displayName": "Kansas City Chiefs"}}
        ]
      }]
    },
    {
      "id": "401671791",
      "date": "not a date",
      "week": {"number": 5},
      "competitions": [{
        "status": {"type": {"name": "STATUS_SOMETHING_NEW"}},
        "competitors": [
          {"homeAway": "away", "score": {"value": 10}, "team": {"displayName": "New York Jets"}},
          {"homeAway": "home", "score": "abc"}
        ]
      }]
    }
  ]
}`

func decodeScoreboard(t *testing.T) models.ScoreboardResponse {
	t.Helper()
	var resp models.ScoreboardResponse
	require.NoError(t, json.Unmarshal([]byte(scoreboardJSON), &resp))
	return resp
}

func TestFormatScoreboard(t *testing.T) {
	f := NewFormatter(est)
	games := f.FormatScoreboard(decodeScoreboard(t), models.LeagueNFL)

	require.Len(t, games, 2, "event without an away competitor is dropped")

	first := games[0]
	assert.Equal(t, "401671789", first.ID)
	assert.Equal(t, "Seattle Seahawks", first.HomeTeam)
	assert.Equal(t, "Denver Broncos", first.AwayTeam)
	assert.Equal(t, 26, first.HomeScore)
	assert.Equal(t, 20, first.AwayScore)
	assert.Equal(t, models.StatusFinal, first.Status)
	assert.Equal(t, "12:00 PM EST", first.Time)
	assert.Equal(t, "Sep 8, 2024", first.Date)
	assert.Equal(t, 2, first.Week)
	assert.Equal(t, models.LeagueNFL, first.League)
	assert.True(t, first.Completed())

	second := games[1]
	assert.Equal(t, "Home Team", second.HomeTeam)
	assert.Equal(t, "New York Jets", second.AwayTeam)
	assert.Equal(t, 0, second.HomeScore)
	assert.Equal(t, 10, second.AwayScore)
	assert.Equal(t, models.StatusUnknown, second.Status)
	assert.Equal(t, models.DateTBD, second.Time)
	assert.Equal(t, models.DateTBD, second.Date)
	assert.True(t, second.StartTime.IsZero())
	assert.Equal(t, 5, second.Week)
}

func TestFormatGamesIsIdempotent(t *testing.T) {
	f := NewFormatter(est)
	resp := decodeScoreboard(t)

	assert.Equal(t, f.FormatScoreboard(resp, models.LeagueNFL), f.FormatScoreboard(resp, models.LeagueNFL))
}

func TestFormatGamePlaceholderID(t *testing.T) {
	f := NewFormatter(est)
	ev := models.Event{
		Date: "2024-10-01T00:15Z",
		Competitions: []models.Competition{{
			Competitors: []models.Competitor{
				{HomeAway: "home", Team: &models.TeamRef{DisplayName: "Ohio State Buckeyes"}},
				{HomeAway: "away", Team: &models.TeamRef{DisplayName: "Michigan Wolverines"}},
			},
		}},
	}

	a, ok := f.FormatGame(ev, models.LeagueNCAA)
	require.True(t, ok)
	b, _ := f.FormatGame(ev, models.LeagueNCAA)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.StatusUnknown, a.Status)
	assert.Equal(t, 5, a.Week)
}

func TestFormatGameWithoutCompetitions(t *testing.T) {
	_, ok := NewFormatter(est).FormatGame(models.Event{ID: "1"}, models.LeagueNFL)
	assert.False(t, ok)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"24", 24},
		{" 7 ", 7},
		{"21.0", 21},
		{"14abc", 14},
		{"+3", 3},
		{"-3", 0},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScore(tt.in))
		})
	}
}

func TestStatusFromESPN(t *testing.T) {
	tests := map[string]models.GameStatus{
		"STATUS_SCHEDULED":   models.StatusScheduled,
		"STATUS_IN_PROGRESS": models.StatusLive,
		"STATUS_HALFTIME":    models.StatusLive,
		"STATUS_FINAL":       models.StatusFinal,
		"STATUS_POSTPONED":   models.StatusPostponed,
		"STATUS_CANCELLED":   models.StatusCancelled,
		"STATUS_CANCELED":    models.StatusCancelled,
		"status_final":       models.StatusFinal,
		"STATUS_DELAYED":     models.StatusUnknown,
		"":                   models.StatusUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, StatusFromESPN(in), in)
	}
}

func TestParseTime(t *testing.T) {
	got, ok := ParseTime("2024-09-08T17:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC), got.UTC())

	got, ok = ParseTime("2024-09-08T17:00:30-04:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 9, 8, 21, 0, 30, 0, time.UTC), got.UTC())

	_, ok = ParseTime("")
	assert.False(t, ok)
	_, ok = ParseTime("yesterday")
	assert.False(t, ok)
}

func TestSeasonWeek(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"season opener", time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC), 1},
		{"second week", time.Date(2024, 9, 8, 17, 0, 0, 0, time.UTC), 2},
		{"before season clamps to one", time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), 1},
		{"january belongs to previous season", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonWeek(tt.at))
		})
	}
}

func TestFormatRosterDefaults(t *testing.T) {
	height := 74.0
	weight := 225.0
	age := 27
	years := 4
	resp := models.AthletesResponse{Items: []models.Athlete{
		{
			ID:          "3139477",
			DisplayName: "Patrick Mahomes",
			Jersey:      "15",
			Position:    &models.Position{Abbreviation: "QB"},
			Height:      &height,
			Weight:      &weight,
			Age:         &age,
			Experience:  &models.Experience{Years: &years},
			Team:        &models.TeamRef{DisplayName: "Kansas City Chiefs"},
			College:     &models.NamedRef{Name: "Texas Tech"},
		},
		{},
	}}

	players := NewFormatter(est).FormatRoster(resp, "12")
	require.Len(t, players, 2)

	assert.Equal(t, models.Player{
		ID:         "3139477",
		Name:       "Patrick Mahomes",
		Position:   "QB",
		Jersey:     "15",
		Height:     `6'2"`,
		Weight:     "225 lbs",
		Age:        "27",
		Experience: "4",
		Team:       "Kansas City Chiefs",
		College:    "Texas Tech",
	}, players[0])

	assert.Equal(t, models.Player{
		ID:         "player-12-1",
		Name:       "Unknown Player",
		Position:   "Unknown",
		Jersey:     "00",
		Height:     "N/A",
		Weight:     "N/A",
		Age:        "N/A",
		Experience: "N/A",
		Team:       "Unknown Team",
		College:    "N/A",
	}, players[1])
}

func TestFormatTeam(t *testing.T) {
	team := NewFormatter(est).FormatTeam(models.TeamItem{
		ID:           "26",
		DisplayName:  "Seattle Seahawks",
		Abbreviation: "SEA",
		Location:     "Seattle",
		Conference:   &models.NamedRef{Name: "NFC"},
		Division:     &models.NamedRef{DisplayName: "NFC West"},
	})

	assert.Equal(t, models.Team{
		ID:           "26",
		Name:         "Seattle Seahawks",
		Abbreviation: "SEA",
		City:         "Seattle",
		Conference:   "NFC",
		Division:     "NFC West",
	}, team)
}
