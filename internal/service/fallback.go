package service

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/api/espn"
	"github.com/omarshaarawi/gridiron/internal/models"
)

const (
	DefaultRosterSize = 53
	fallbackPastGames = 8
	fallbackNextGames = 4
)

// Rand is the random source behind generated data. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

var (
	fallbackPositions = []string{
		"QB", "RB", "WR", "TE", "OL", "C", "G", "T",
		"DE", "DT", "LB", "CB", "S", "K", "P", "LS",
	}
	firstNames = []string{
		"John", "Mike", "David", "Chris", "James", "Robert", "William", "Richard",
		"Thomas", "Charles", "Daniel", "Matthew", "Anthony", "Mark", "Donald", "Steven",
		"Paul", "Andrew", "Joshua", "Kenneth", "Kevin", "Brian", "George", "Timothy",
		"Ronald", "Jason", "Edward", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	}
	nflTeams = []string{
		"Philadelphia Eagles", "Dallas Cowboys", "New York Giants", "Washington Commanders",
		"Kansas City Chiefs", "Las Vegas Raiders", "Los Angeles Chargers", "Denver Broncos",
		"Buffalo Bills", "Miami Dolphins", "New England Patriots", "New York Jets",
		"Baltimore Ravens", "Cincinnati Bengals", "Cleveland Browns", "Pittsburgh Steelers",
		"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars", "Tennessee Titans",
		"Chicago Bears", "Detroit Lions", "Green Bay Packers", "Minnesota Vikings",
		"Atlanta Falcons", "Carolina Panthers", "New Orleans Saints", "Tampa Bay Buccaneers",
		"Arizona Cardinals", "Los Angeles Rams", "San Francisco 49ers", "Seattle Seahawks",
	}
	ncaaTeams = []string{
		"Alabama Crimson Tide", "Georgia Bulldogs", "Ohio State Buckeyes", "Michigan Wolverines",
		"Texas Longhorns", "Oregon Ducks", "Penn State Nittany Lions", "Notre Dame Fighting Irish",
		"LSU Tigers", "Clemson Tigers", "USC Trojans", "Florida State Seminoles",
		"Oklahoma Sooners", "Tennessee Volunteers", "Ole Miss Rebels", "Miami Hurricanes",
	}
)

// FallbackGenerator builds placeholder rosters and schedules that match the
// real data's shape exactly. It never fails.
type FallbackGenerator struct {
	rnd        Rand
	clock      clockwork.Clock
	formatter  espn.Formatter
	rosterSize int
	mu         sync.Mutex
}

// NewFallbackGenerator uses the process-wide random source and wall clock
// when rnd or clock are nil.
func NewFallbackGenerator(rnd Rand, clock clockwork.Clock, formatter espn.Formatter, rosterSize int) *FallbackGenerator {
	if rnd == nil {
		rnd = globalRand{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rosterSize <= 0 {
		rosterSize = DefaultRosterSize
	}
	return &FallbackGenerator{
		rnd:        rnd,
		clock:      clock,
		formatter:  formatter,
		rosterSize: rosterSize,
	}
}

// intn returns a value in [lo, hi].
func (g *FallbackGenerator) intn(lo, hi int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *FallbackGenerator) pick(list []string) string {
	return list[g.intn(0, len(list)-1)]
}

func (g *FallbackGenerator) GenerateRoster(teamID string, league models.League) models.Roster {
	teamName := fallbackTeamName(teamID, league)
	players := make([]models.Player, g.rosterSize)
	for i := range players {
		players[i] = models.Player{
			ID:         fmt.Sprintf("player-%s-%d", teamID, i),
			Name:       g.pick(firstNames) + " " + g.pick(lastNames),
			Position:   g.pick(fallbackPositions),
			Jersey:     strconv.Itoa(g.intn(1, 99)),
			Height:     espn.FormatHeight(g.intn(69, 80)),
			Weight:     fmt.Sprintf("%d lbs", g.intn(180, 279)),
			Age:        strconv.Itoa(g.intn(22, 31)),
			Experience: strconv.Itoa(g.intn(1, 8)),
			Team:       teamName,
			College:    "Various Universities",
		}
	}
	return models.Roster{
		TeamID:     teamID,
		League:     league,
		Players:    players,
		IsFallback: true,
	}
}

func fallbackTeamName(teamID string, league models.League) string {
	teams := nflTeams
	if league == models.LeagueNCAA {
		teams = ncaaTeams
	}
	id, err := strconv.Atoi(teamID)
	if err != nil || id < 0 {
		return "Unknown Team"
	}
	return teams[id%len(teams)]
}

// GenerateTeamGames returns eight finished games in the weeks before now and
// four scheduled ones after it.
func (g *FallbackGenerator) GenerateTeamGames(teamName string, league models.League) []models.Game {
	if strings.TrimSpace(teamName) == "" {
		teamName = "Home Team"
	}
	opponents := opponentsFor(teamName, league)
	kickoff := g.clock.Now().UTC().Truncate(time.Hour)

	games := make([]models.Game, 0, fallbackPastGames+fallbackNextGames)
	for i := 0; i < fallbackPastGames+fallbackNextGames; i++ {
		offset := i - fallbackPastGames
		if offset >= 0 {
			offset++
		}
		start := kickoff.AddDate(0, 0, 7*offset)
		opponent := g.pick(opponents)

		game := models.Game{
			HomeTeam:   teamName,
			AwayTeam:   opponent,
			Status:     models.StatusScheduled,
			StartTime:  start,
			Week:       espn.SeasonWeek(start),
			League:     league,
			IsFallback: true,
		}
		if g.intn(0, 1) == 1 {
			game.HomeTeam, game.AwayTeam = opponent, teamName
		}
		if offset < 0 {
			game.Status = models.StatusFinal
			game.HomeScore = g.intn(0, 45)
			game.AwayScore = g.intn(0, 45)
		}
		game.Time, game.Date = g.formatter.Schedule(start)
		game.ID = espn.PlaceholderGameID(start.Format(time.RFC3339), game.HomeTeam, game.AwayTeam)
		games = append(games, game)
	}
	return games
}

func opponentsFor(teamName string, league models.League) []string {
	teams := nflTeams
	if league == models.LeagueNCAA {
		teams = ncaaTeams
	}
	self := strings.ToLower(teamName)
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		lower := strings.ToLower(t)
		if strings.Contains(lower, self) || strings.Contains(self, lower) {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return teams
	}
	return out
}
