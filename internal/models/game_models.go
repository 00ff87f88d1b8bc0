package models

import (
	"fmt"
	"strings"
	"time"
)

type League string

const (
	LeagueNFL  League = "nfl"
	LeagueNCAA League = "ncaa"
)

// ParseLeague accepts the short names plus ESPN's own path segment for
// college football.
func ParseLeague(s string) (League, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nfl":
		return LeagueNFL, nil
	case "ncaa", "college-football", "cfb", "ncaaf":
		return LeagueNCAA, nil
	default:
		return "", fmt.Errorf("unknown league %q", s)
	}
}

// Path is the league segment used in ESPN URLs.
func (l League) Path() string {
	if l == LeagueNCAA {
		return "college-football"
	}
	return "nfl"
}

// DirectoryPageSize covers the whole league in one teams request.
func (l League) DirectoryPageSize() int {
	if l == LeagueNCAA {
		return 130
	}
	return 32
}

type GameStatus string

const (
	StatusScheduled GameStatus = "Scheduled"
	StatusLive      GameStatus = "Live"
	StatusFinal     GameStatus = "Final"
	StatusPostponed GameStatus = "Postponed"
	StatusCancelled GameStatus = "Cancelled"
	StatusUnknown   GameStatus = "Unknown"
)

const DateTBD = "TBD"

type Game struct {
	ID         string     `json:"id"`
	HomeTeam   string     `json:"homeTeam"`
	AwayTeam   string     `json:"awayTeam"`
	HomeScore  int        `json:"homeScore"`
	AwayScore  int        `json:"awayScore"`
	Status     GameStatus `json:"status"`
	StartTime  time.Time  `json:"startTime"`
	Time       string     `json:"time"`
	Date       string     `json:"date"`
	Week       int        `json:"week"`
	League     League     `json:"league"`
	Opponent   string     `json:"opponent,omitempty"`
	IsHome     bool       `json:"isHome"`
	IsFallback bool       `json:"isFallback,omitempty"`
}

// Completed reports whether the game counts toward season stats.
func (g Game) Completed() bool {
	return g.Status == StatusFinal
}

type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	City         string `json:"city,omitempty"`
	Conference   string `json:"conference,omitempty"`
	Division     string `json:"division,omitempty"`
}

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Jersey     string `json:"jersey"`
	Height     string `json:"height"`
	Weight     string `json:"weight"`
	Age        string `json:"age"`
	Experience string `json:"experience"`
	Team       string `json:"team"`
	College    string `json:"college"`
}

type Roster struct {
	TeamID     string   `json:"teamId"`
	League     League   `json:"league"`
	Players    []Player `json:"players"`
	IsFallback bool     `json:"isFallback"`
}

type TeamGames struct {
	Team        string `json:"team"`
	TeamID      string `json:"teamId,omitempty"`
	League      League `json:"league"`
	PastGames   []Game `json:"pastGames"`
	FutureGames []Game `json:"futureGames"`
	IsFallback  bool   `json:"isFallback"`
}

type TeamSeasonStats struct {
	Wins                 int     `json:"wins"`
	Losses               int     `json:"losses"`
	Ties                 int     `json:"ties"`
	GamesPlayed          int     `json:"gamesPlayed"`
	WinPercentage        float64 `json:"winPercentage"`
	PointsFor            int     `json:"pointsFor"`
	PointsAgainst        int     `json:"pointsAgainst"`
	PointDifferential    int     `json:"pointDifferential"`
	AveragePointsFor     float64 `json:"averagePointsFor"`
	AveragePointsAgainst float64 `json:"averagePointsAgainst"`
	CurrentStreak        string  `json:"currentStreak"`
	LongestWinStreak     int     `json:"longestWinStreak"`
	LongestLossStreak    int     `json:"longestLossStreak"`
	RecentForm           string  `json:"recentForm"`
	HomeGames            int     `json:"homeGames"`
	AwayGames            int     `json:"awayGames"`
	HomeWins             int     `json:"homeWins"`
	AwayWins             int     `json:"awayWins"`
	HomeWinPercentage    float64 `json:"homeWinPercentage"`
	AwayWinPercentage    float64 `json:"awayWinPercentage"`
}

type TeamStatsReport struct {
	Team       string          `json:"team"`
	TeamID     string          `json:"teamId,omitempty"`
	League     League          `json:"league"`
	Stats      TeamSeasonStats `json:"stats"`
	IsFallback bool            `json:"isFallback"`
}

type TeamBoxscore struct {
	Team   string            `json:"team"`
	IsHome bool              `json:"isHome"`
	Stats  map[string]string `json:"stats"`
}

type PlayerGameStats struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Position string            `json:"position"`
	Jersey   string            `json:"jersey"`
	Team     string            `json:"team"`
	Category string            `json:"category"`
	Stats    map[string]string `json:"stats"`
}

// GameSummary is a single game's box score. Game is nil when ESPN sent no
// usable header.
type GameSummary struct {
	GameID  string            `json:"gameId"`
	League  League            `json:"league"`
	Game    *Game             `json:"game,omitempty"`
	Teams   []TeamBoxscore    `json:"teams"`
	Players []PlayerGameStats `json:"players"`
}
