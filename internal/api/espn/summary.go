package espn

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/omarshaarawi/gridiron/internal/models"
)

func (a *API) summaryURL(league models.League) string {
	return fmt.Sprintf("%s/football/%s/summary", strings.TrimRight(a.client.Config.SiteURL, "/"), league.Path())
}

func (a *API) FetchGameSummary(ctx context.Context, league models.League, eventID string) (models.SummaryResponse, error) {
	var resp models.SummaryResponse
	params := map[string]string{"event": eventID}

	if err := a.client.Get(ctx, a.summaryURL(league), params, &resp); err != nil {
		return models.SummaryResponse{}, fmt.Errorf("fetching game summary: %w", err)
	}
	return resp, nil
}

func (a *API) GameSummary(ctx context.Context, league models.League, eventID string) (models.GameSummary, error) {
	resp, err := a.FetchGameSummary(ctx, league, eventID)
	if err != nil {
		return models.GameSummary{}, err
	}
	return a.formatter.FormatSummary(resp, league, eventID), nil
}

// FormatSummary flattens the box score. Player stats are keyed by the
// category's labels; athletes without an identity get positional defaults.
func (f Formatter) FormatSummary(resp models.SummaryResponse, league models.League, eventID string) models.GameSummary {
	summary := models.GameSummary{
		GameID:  eventID,
		League:  league,
		Teams:   []models.TeamBoxscore{},
		Players: []models.PlayerGameStats{},
	}

	if h := resp.Header; h != nil {
		if h.ID != "" {
			summary.GameID = h.ID
		}
		ev := models.Event{ID: summary.GameID, Competitions: h.Competitions}
		if h.Week > 0 {
			ev.Week = &models.Week{Number: h.Week}
		}
		if game, ok := f.FormatGame(ev, league); ok {
			summary.Game = &game
		}
	}

	if resp.Boxscore == nil {
		return summary
	}

	for _, t := range resp.Boxscore.Teams {
		stats := make(map[string]string, len(t.Statistics))
		for _, st := range t.Statistics {
			if key := firstNonEmpty(st.Label, st.Name); key != "" {
				stats[key] = st.DisplayValue
			}
		}
		summary.Teams = append(summary.Teams, models.TeamBoxscore{
			Team:   teamRefName(t.Team, "Unknown Team"),
			IsHome: strings.EqualFold(t.HomeAway, "home"),
			Stats:  stats,
		})
	}

	n := 0
	for _, side := range resp.Boxscore.Players {
		team := teamRefName(side.Team, "Unknown Team")
		for _, group := range side.Statistics {
			for _, line := range group.Athletes {
				summary.Players = append(summary.Players, formatPlayerLine(line, group, team, n))
				n++
			}
		}
	}
	return summary
}

func formatPlayerLine(line models.AthleteStats, group models.PlayerStatGroup, team string, index int) models.PlayerGameStats {
	p := models.PlayerGameStats{
		ID:       "player-" + strconv.Itoa(index),
		Name:     "Player " + strconv.Itoa(index+1),
		Position: "N/A",
		Jersey:   "N/A",
		Team:     team,
		Category: group.Name,
		Stats:    make(map[string]string, len(group.Labels)),
	}
	if a := line.Athlete; a != nil {
		p.ID = firstNonEmpty(a.ID, p.ID)
		p.Name = firstNonEmpty(a.DisplayName, a.FullName, p.Name)
		p.Jersey = firstNonEmpty(a.Jersey, p.Jersey)
		if a.Position != nil {
			p.Position = firstNonEmpty(a.Position.Abbreviation, p.Position)
		}
	}
	for i, label := range group.Labels {
		if i >= len(line.Stats) {
			break
		}
		p.Stats[label] = line.Stats[i]
	}
	return p
}
