package espn

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/gridiron/internal/models"
)

const suggestionThreshold = 0.5

// ResolveTeam looks name up in the league's team directory. The first page
// is sized to hold the whole league; later pages are only fetched when it
// has no match. Returns ErrTeamNotFound when nothing matches.
func (a *API) ResolveTeam(ctx context.Context, name string, league models.League) (models.Team, error) {
	if strings.TrimSpace(name) == "" {
		return models.Team{}, ErrTeamNotFound
	}

	pageSize := league.DirectoryPageSize()
	page, err := a.FetchTeams(ctx, league, pageSize, 1)
	if err != nil {
		return models.Team{}, fmt.Errorf("resolving team %q: %w", name, err)
	}

	items := page.Items
	if item, ok := MatchTeam(items, name); ok {
		return a.formatter.FormatTeam(item), nil
	}

	for idx := 2; idx <= page.PageCount; idx++ {
		next, err := a.FetchTeams(ctx, league, pageSize, idx)
		if err != nil {
			return models.Team{}, fmt.Errorf("resolving team %q: %w", name, err)
		}
		items = append(items, next.Items...)
	}
	if page.PageCount > 1 {
		if item, ok := MatchTeam(items, name); ok {
			return a.formatter.FormatTeam(item), nil
		}
	}

	return models.Team{}, ErrTeamNotFound
}

// ResolveTeamID is ResolveTeam with every failure collapsed to "".
func (a *API) ResolveTeamID(ctx context.Context, name string, league models.League) string {
	team, err := a.ResolveTeam(ctx, name, league)
	if err != nil {
		if fe, ok := AsFetchError(err); ok {
			slog.Warn("team lookup failed", "team", name, "league", league, "kind", fe.Kind, "error", err)
		} else {
			slog.Info("team not found", "team", name, "league", league)
		}
		return ""
	}
	return team.ID
}

// MatchTeam returns the first item, in directory order, that matches name
// case-insensitively by display name, abbreviation or containment either way.
func MatchTeam(items []models.TeamItem, name string) (models.TeamItem, bool) {
	search := strings.ToLower(strings.TrimSpace(name))
	if search == "" {
		return models.TeamItem{}, false
	}

	for _, item := range items {
		display := strings.ToLower(strings.TrimSpace(item.DisplayName))
		abbr := strings.ToLower(strings.TrimSpace(item.Abbreviation))

		switch {
		case display != "" && display == search:
		case abbr != "" && abbr == search:
		case display != "" && strings.Contains(display, search):
		case display != "" && strings.Contains(search, display):
		default:
			continue
		}
		return item, true
	}
	return models.TeamItem{}, false
}

// Directory returns every team of the league across all pages.
func (a *API) Directory(ctx context.Context, league models.League) ([]models.Team, error) {
	pageSize := league.DirectoryPageSize()
	page, err := a.FetchTeams(ctx, league, pageSize, 1)
	if err != nil {
		return nil, err
	}
	items := page.Items
	for idx := 2; idx <= page.PageCount; idx++ {
		next, err := a.FetchTeams(ctx, league, pageSize, idx)
		if err != nil {
			return nil, err
		}
		items = append(items, next.Items...)
	}

	teams := make([]models.Team, 0, len(items))
	for _, item := range items {
		if team := a.formatter.FormatTeam(item); team.Name != "" {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

// SuggestTeams ranks directory names close to name, best first, at most n.
func (a *API) SuggestTeams(ctx context.Context, name string, league models.League, n int) []string {
	teams, err := a.Directory(ctx, league)
	if err != nil {
		slog.Warn("team suggestions unavailable", "league", league, "error", err)
		return nil
	}
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return RankTeamNames(name, names, n)
}

// RankTeamNames orders names by fuzzy closeness to search. Subsequence
// matches come first; otherwise names within a Levenshtein similarity
// threshold are used.
func RankTeamNames(search string, names []string, n int) []string {
	search = strings.TrimSpace(search)
	if search == "" || n <= 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(search, names)
	sort.Stable(ranks)

	out := make([]string, 0, n)
	seen := make(map[string]bool)
	for _, r := range ranks {
		if len(out) == n {
			return out
		}
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
	}

	type scored struct {
		name       string
		similarity float64
	}
	var nearby []scored
	lower := strings.ToLower(search)
	for _, name := range names {
		if seen[name] {
			continue
		}
		candidate := strings.ToLower(name)
		distance := fuzzy.LevenshteinDistance(lower, candidate)
		maxLen := float64(max(len(lower), len(candidate)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > suggestionThreshold {
			nearby = append(nearby, scored{name: name, similarity: similarity})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].similarity > nearby[j].similarity
	})
	for _, c := range nearby {
		if len(out) == n {
			break
		}
		out = append(out, c.name)
	}
	return out
}
