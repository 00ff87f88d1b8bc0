package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/api/espn"
	"github.com/omarshaarawi/gridiron/internal/metrics"
	"github.com/omarshaarawi/gridiron/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultMaxWeek    = 18
	weeksAhead        = 4
	suggestionsLimit  = 5
	defaultWeekPacing = 100 * time.Millisecond
)

// ESPN is the subset of espn.API the service depends on.
type ESPN interface {
	ScoreboardGames(ctx context.Context, league models.League, week int) ([]models.Game, int, error)
	ResolveTeam(ctx context.Context, name string, league models.League) (models.Team, error)
	SuggestTeams(ctx context.Context, name string, league models.League, n int) []string
	TeamRoster(ctx context.Context, league models.League, teamID string) ([]models.Player, error)
	GameSummary(ctx context.Context, league models.League, eventID string) (models.GameSummary, error)
}

// ErrGameUnavailable is returned when a game's box score can't be fetched.
var ErrGameUnavailable = errors.New("game summary unavailable")

// SportsService reconciles ESPN data into the dashboard's shapes. Upstream
// failures never reach callers: they are logged and replaced with empty or
// fallback data.
type SportsService struct {
	api      ESPN
	fallback *FallbackGenerator
	clock    clockwork.Clock
	limiter  *rate.Limiter
	maxWeek  int
	metrics  *metrics.Metrics
}

type Option func(*SportsService)

func WithClock(clock clockwork.Clock) Option {
	return func(s *SportsService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithWeekInterval sets the pause between per-week scoreboard requests.
func WithWeekInterval(d time.Duration) Option {
	return func(s *SportsService) {
		s.limiter = newLimiter(d)
	}
}

func WithMaxWeek(n int) Option {
	return func(s *SportsService) {
		if n > 0 {
			s.maxWeek = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SportsService) { s.metrics = m }
}

func NewSportsService(api ESPN, fallback *FallbackGenerator, opts ...Option) *SportsService {
	s := &SportsService{
		api:      api,
		fallback: fallback,
		clock:    clockwork.NewRealClock(),
		limiter:  newLimiter(defaultWeekPacing),
		maxWeek:  defaultMaxWeek,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// GetScoreboard returns a week's games; week 0 is the current week. Any
// upstream failure yields an empty slate.
func (s *SportsService) GetScoreboard(ctx context.Context, league models.League, week int) []models.Game {
	games, _, err := s.api.ScoreboardGames(ctx, league, week)
	if err != nil {
		logFetchError("scoreboard unavailable", err, "league", league, "week", week)
		return []models.Game{}
	}
	return games
}

// CurrentWeek is the week ESPN reports on the current scoreboard, 1 when it
// can't be determined.
func (s *SportsService) CurrentWeek(ctx context.Context, league models.League) int {
	_, week, err := s.api.ScoreboardGames(ctx, league, 0)
	if err != nil {
		logFetchError("current week unavailable", err, "league", league)
		return 1
	}
	if week < 1 {
		return 1
	}
	return week
}

// LookupTeam resolves name to a team. Lookup failures of any kind are
// reported as espn.ErrTeamNotFound.
func (s *SportsService) LookupTeam(ctx context.Context, name string, league models.League) (models.Team, error) {
	team, err := s.api.ResolveTeam(ctx, name, league)
	if err != nil {
		if !errors.Is(err, espn.ErrTeamNotFound) {
			logFetchError("team lookup failed", err, "team", name, "league", league)
		}
		return models.Team{}, espn.ErrTeamNotFound
	}
	return team, nil
}

func (s *SportsService) SuggestTeams(ctx context.Context, name string, league models.League) []string {
	return s.api.SuggestTeams(ctx, name, league, suggestionsLimit)
}

// GetRoster returns the team's ESPN roster, or a generated one when ESPN
// fails or returns no players.
func (s *SportsService) GetRoster(ctx context.Context, teamID string, league models.League) models.Roster {
	players, err := s.api.TeamRoster(ctx, league, teamID)
	if err != nil {
		logFetchError("roster unavailable, using fallback", err, "team_id", teamID, "league", league)
	}
	if err == nil && len(players) > 0 {
		return models.Roster{TeamID: teamID, League: league, Players: players}
	}

	s.metrics.Fallback("roster")
	return s.fallback.GenerateRoster(teamID, league)
}

// GetTeamStats aggregates the team's season and computes its record.
func (s *SportsService) GetTeamStats(ctx context.Context, teamName string, league models.League) models.TeamStatsReport {
	tg := s.GetTeamGames(ctx, teamName, league)
	return models.TeamStatsReport{
		Team:       tg.Team,
		TeamID:     tg.TeamID,
		League:     league,
		Stats:      ComputeStats(tg.PastGames, teamName),
		IsFallback: tg.IsFallback,
	}
}

// GetGameSummary returns the box score for one game. Unlike the season
// views there is nothing to fall back to, so failures surface as
// ErrGameUnavailable.
func (s *SportsService) GetGameSummary(ctx context.Context, gameID string, league models.League) (models.GameSummary, error) {
	if strings.TrimSpace(gameID) == "" {
		return models.GameSummary{}, ErrGameUnavailable
	}
	summary, err := s.api.GameSummary(ctx, league, gameID)
	if err != nil {
		logFetchError("game summary unavailable", err, "game_id", gameID, "league", league)
		return models.GameSummary{}, ErrGameUnavailable
	}
	return summary, nil
}

func logFetchError(msg string, err error, args ...any) {
	if fe, ok := espn.AsFetchError(err); ok {
		args = append(args, "kind", fe.Kind, "status", fe.StatusCode)
	}
	args = append(args, "error", err)
	slog.Warn(msg, args...)
}
