package espn

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/gridiron/internal/models"
	"golang.org/x/sync/errgroup"
)

type API struct {
	client    *Client
	formatter Formatter
}

func NewAPI(client *Client) *API {
	loc, err := time.LoadLocation(client.Config.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "timezone", client.Config.Timezone, "error", err)
		loc = time.UTC
	}
	return &API{client: client, formatter: NewFormatter(loc)}
}

func (a *API) Formatter() Formatter {
	return a.formatter
}

func (a *API) scoreboardURL(league models.League) string {
	return fmt.Sprintf("%s/football/%s/scoreboard", strings.TrimRight(a.client.Config.SiteURL, "/"), league.Path())
}

func (a *API) teamsURL(league models.League) string {
	return fmt.Sprintf("%s/%s/teams", strings.TrimRight(a.client.Config.CoreURL, "/"), league.Path())
}

// FetchScoreboard returns the raw scoreboard. week 0 asks for the current week.
func (a *API) FetchScoreboard(ctx context.Context, league models.League, week int) (models.ScoreboardResponse, error) {
	var resp models.ScoreboardResponse
	var params map[string]string
	if week > 0 {
		params = map[string]string{"week": strconv.Itoa(week)}
	}

	if err := a.client.Get(ctx, a.scoreboardURL(league), params, &resp); err != nil {
		return models.ScoreboardResponse{}, fmt.Errorf("fetching scoreboard: %w", err)
	}
	return resp, nil
}

// ScoreboardGames returns the formatted games of a week along with the week
// number ESPN reported, 0 when absent.
func (a *API) ScoreboardGames(ctx context.Context, league models.League, week int) ([]models.Game, int, error) {
	resp, err := a.FetchScoreboard(ctx, league, week)
	if err != nil {
		return nil, 0, err
	}
	reported := 0
	if resp.Week != nil {
		reported = resp.Week.Number
	}
	return a.formatter.FormatScoreboard(resp, league), reported, nil
}

func (a *API) FetchTeams(ctx context.Context, league models.League, pageSize, pageIndex int) (models.TeamsPage, error) {
	var page models.TeamsPage
	params := map[string]string{"pageSize": strconv.Itoa(pageSize)}
	if pageIndex > 1 {
		params["pageIndex"] = strconv.Itoa(pageIndex)
	}

	if err := a.client.Get(ctx, a.teamsURL(league), params, &page); err != nil {
		return models.TeamsPage{}, fmt.Errorf("fetching teams: %w", err)
	}

	a.hydrateTeams(ctx, page.Items)
	return page, nil
}

func (a *API) FetchRoster(ctx context.Context, league models.League, teamID string) (models.AthletesResponse, error) {
	var resp models.AthletesResponse
	endpoint := fmt.Sprintf("%s/%s/athletes", a.teamsURL(league), teamID)
	params := map[string]string{"limit": "200"}

	if err := a.client.Get(ctx, endpoint, params, &resp); err != nil {
		return models.AthletesResponse{}, fmt.Errorf("fetching roster: %w", err)
	}

	a.hydrateAthletes(ctx, resp.Items)
	return resp, nil
}

// TeamRoster fetches and formats a roster. An empty roster is returned as is.
func (a *API) TeamRoster(ctx context.Context, league models.League, teamID string) ([]models.Player, error) {
	resp, err := a.FetchRoster(ctx, league, teamID)
	if err != nil {
		return nil, err
	}
	return a.formatter.FormatRoster(resp, teamID), nil
}

// refConcurrency caps in-flight $ref requests per listing. An FBS teams
// page is ~130 refs, so a cold cache costs about 130/refConcurrency round trips.
const refConcurrency = 8

// The core API often lists bare {"$ref": ...} items. A failed ref leaves
// the item as it was.
func (a *API) hydrateTeams(ctx context.Context, items []models.TeamItem) {
	followRefs(ctx, a.client, items, func(t models.TeamItem) string {
		if t.DisplayName != "" || t.Abbreviation != "" {
			return ""
		}
		return t.Ref
	}, func(t *models.TeamItem, ref string) { t.Ref = ref })
}

func (a *API) hydrateAthletes(ctx context.Context, items []models.Athlete) {
	followRefs(ctx, a.client, items, func(p models.Athlete) string {
		if p.DisplayName != "" || p.FullName != "" {
			return ""
		}
		return p.Ref
	}, func(p *models.Athlete, ref string) { p.Ref = ref })
}

// followRefs replaces items in place, each goroutine owning one index.
// Nothing new is started once ctx is done.
func followRefs[T any](ctx context.Context, c *Client, items []T, refOf func(T) string, setRef func(*T, string)) {
	var g errgroup.Group
	g.SetLimit(refConcurrency)
	for i := range items {
		ref := refOf(items[i])
		if ref == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var full T
			if err := c.Get(ctx, ref, nil, &full); err != nil {
				slog.Debug("ref not followed", "ref", ref, "error", err)
				return nil
			}
			setRef(&full, ref)
			items[i] = full
			return nil
		})
	}
	_ = g.Wait()
}
