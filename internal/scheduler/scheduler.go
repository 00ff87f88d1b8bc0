package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/service"
)

const (
	warmInterval      = 15 * time.Minute
	defaultPruneEvery = 10 * time.Minute
)

// Sports is the part of service.SportsService the jobs use.
type Sports interface {
	GetScoreboard(ctx context.Context, league models.League, week int) []models.Game
	GetTeamStats(ctx context.Context, teamName string, league models.League) models.TeamStatsReport
}

// Pruner drops expired cache entries and reports how many were removed.
type Pruner interface {
	Prune() int
}

type Settings struct {
	Location       *time.Location
	PruneInterval  time.Duration
	FavoriteTeam   string
	FavoriteLeague models.League
	Clock          clockwork.Clock
}

type Scheduler struct {
	s           gocron.Scheduler
	sports      Sports
	cache       Pruner
	settings    Settings
	sendMessage func(string) error
}

// NewScheduler builds the job scheduler. cache and sendMessage are optional:
// without a cache there is no prune job, and without sendMessage no digest.
func NewScheduler(sports Sports, cache Pruner, settings Settings, sendMessage func(string) error) (*Scheduler, error) {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.PruneInterval <= 0 {
		settings.PruneInterval = defaultPruneEvery
	}
	if settings.FavoriteLeague == "" {
		settings.FavoriteLeague = models.LeagueNFL
	}

	opts := []gocron.SchedulerOption{gocron.WithLocation(settings.Location)}
	if settings.Clock != nil {
		opts = append(opts, gocron.WithClock(settings.Clock))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		sports:      sports,
		cache:       cache,
		settings:    settings,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	var err error

	if s.cache != nil {
		_, err = s.s.NewJob(
			gocron.DurationJob(s.settings.PruneInterval),
			gocron.NewTask(s.pruneCache),
			gocron.WithName("prune-cache"),
		)
		if err != nil {
			return fmt.Errorf("failed to create prune job: %w", err)
		}
	}

	// Keeps the current week's scoreboards hot for dashboard readers.
	_, err = s.s.NewJob(
		gocron.DurationJob(warmInterval),
		gocron.NewTask(s.warmScoreboards, ctx),
		gocron.WithName("warm-scoreboards"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create scoreboard warm-up job: %w", err)
	}

	// Favorite team digest - Tuesday 7:30
	if s.sendMessage != nil && s.settings.FavoriteTeam != "" {
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendDigest, ctx),
			gocron.WithName("favorite-team-digest"),
		)
		if err != nil {
			return fmt.Errorf("failed to create digest job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	jobs := s.s.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) pruneCache() {
	if n := s.cache.Prune(); n > 0 {
		slog.Debug("Pruned cache entries", "count", n)
	}
}

func (s *Scheduler) warmScoreboards(ctx context.Context) {
	for _, league := range []models.League{models.LeagueNFL, models.LeagueNCAA} {
		if ctx.Err() != nil {
			return
		}
		games := s.sports.GetScoreboard(ctx, league, 0)
		slog.Debug("Warmed scoreboard", "league", league, "games", len(games))
	}
}

func (s *Scheduler) sendDigest(ctx context.Context) {
	report := s.sports.GetTeamStats(ctx, s.settings.FavoriteTeam, s.settings.FavoriteLeague)
	if err := s.sendMessage(service.StatsReport(report)); err != nil {
		slog.Error("Failed to send favorite team digest", "team", s.settings.FavoriteTeam, "error", err)
	}
}
