package service

import (
	"math/rand/v2"
	"reflect"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/api/espn"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var heightPattern = regexp.MustCompile(`^[5-6]'\d{1,2}"$`)

func newGenerator(seed uint64, size int) *FallbackGenerator {
	return NewFallbackGenerator(
		rand.New(rand.NewPCG(seed, seed+1)),
		clockwork.NewFakeClockAt(testNow),
		espn.NewFormatter(time.UTC),
		size,
	)
}

func requireFilled(t *testing.T, v any) {
	t.Helper()
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.NumField(); i++ {
		if rv.Field(i).Kind() == reflect.String {
			require.NotEmpty(t, rv.Field(i).String(), rv.Type().Field(i).Name)
		}
	}
}

func TestGenerateRosterShape(t *testing.T) {
	for _, league := range []models.League{models.LeagueNFL, models.LeagueNCAA} {
		for _, teamID := range []string{"12", "0", "abc", ""} {
			roster := newGenerator(3, DefaultRosterSize).GenerateRoster(teamID, league)

			require.Len(t, roster.Players, DefaultRosterSize)
			assert.True(t, roster.IsFallback)
			assert.Equal(t, teamID, roster.TeamID)
			assert.Equal(t, league, roster.League)

			for i, p := range roster.Players {
				requireFilled(t, p)
				assert.Equal(t, "player-"+teamID+"-"+strconv.Itoa(i), p.ID)
				assert.Regexp(t, heightPattern, p.Height)
				assert.Equal(t, "Various Universities", p.College)

				jersey, err := strconv.Atoi(p.Jersey)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, jersey, 1)
				assert.LessOrEqual(t, jersey, 99)

				age, err := strconv.Atoi(p.Age)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, age, 22)
				assert.LessOrEqual(t, age, 31)
			}
		}
	}
}

func TestGenerateRosterConfiguredSize(t *testing.T) {
	assert.Len(t, newGenerator(1, 10).GenerateRoster("1", models.LeagueNFL).Players, 10)
	assert.Len(t, newGenerator(1, 0).GenerateRoster("1", models.LeagueNFL).Players, DefaultRosterSize)
}

func TestGenerateRosterTeamName(t *testing.T) {
	g := newGenerator(1, 1)

	assert.Equal(t, "Kansas City Chiefs", g.GenerateRoster("4", models.LeagueNFL).Players[0].Team)
	assert.Equal(t, "Philadelphia Eagles", g.GenerateRoster("32", models.LeagueNFL).Players[0].Team)
	assert.Equal(t, "Georgia Bulldogs", g.GenerateRoster("1", models.LeagueNCAA).Players[0].Team)
	assert.Equal(t, "Unknown Team", g.GenerateRoster("abc", models.LeagueNFL).Players[0].Team)
}

func TestGenerateRosterIsReproducibleWithSeed(t *testing.T) {
	a := newGenerator(42, DefaultRosterSize).GenerateRoster("26", models.LeagueNFL)
	b := newGenerator(42, DefaultRosterSize).GenerateRoster("26", models.LeagueNFL)

	assert.Equal(t, a, b)
}

func TestGenerateTeamGamesShape(t *testing.T) {
	games := newGenerator(5, DefaultRosterSize).GenerateTeamGames("Seattle Seahawks", models.LeagueNFL)

	require.Len(t, games, fallbackPastGames+fallbackNextGames)

	ids := make(map[string]bool)
	var past, future int
	for _, g := range games {
		assert.True(t, g.IsFallback)
		assert.Equal(t, models.LeagueNFL, g.League)
		assert.True(t, g.HomeTeam == "Seattle Seahawks" || g.AwayTeam == "Seattle Seahawks")
		assert.NotEqual(t, g.HomeTeam, g.AwayTeam)
		assert.NotEqual(t, models.DateTBD, g.Date)
		assert.NotEqual(t, models.DateTBD, g.Time)
		assert.GreaterOrEqual(t, g.Week, 1)
		assert.GreaterOrEqual(t, g.HomeScore, 0)
		assert.GreaterOrEqual(t, g.AwayScore, 0)
		ids[g.ID] = true

		if g.StartTime.Before(testNow) {
			past++
			assert.Equal(t, models.StatusFinal, g.Status)
		} else {
			future++
			assert.Equal(t, models.StatusScheduled, g.Status)
			assert.Zero(t, g.HomeScore+g.AwayScore)
		}
	}
	assert.Equal(t, fallbackPastGames, past)
	assert.Equal(t, fallbackNextGames, future)
	assert.Len(t, ids, len(games))
}

func TestGenerateTeamGamesBlankName(t *testing.T) {
	games := newGenerator(5, DefaultRosterSize).GenerateTeamGames("  ", models.LeagueNCAA)

	require.Len(t, games, fallbackPastGames+fallbackNextGames)
	for _, g := range games {
		assert.True(t, g.HomeTeam == "Home Team" || g.AwayTeam == "Home Team")
	}
}
