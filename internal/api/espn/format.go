package espn

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/gridiron/internal/models"
)

const (
	timeLayout = "3:04 PM MST"
	dateLayout = "Jan 2, 2006"
)

// ESPN sends both full RFC3339 and minute-precision timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

var statusMap = map[string]models.GameStatus{
	"STATUS_SCHEDULED":   models.StatusScheduled,
	"STATUS_IN_PROGRESS": models.StatusLive,
	"STATUS_HALFTIME":    models.StatusLive,
	"STATUS_END_PERIOD":  models.StatusLive,
	"STATUS_FINAL":       models.StatusFinal,
	"STATUS_POSTPONED":   models.StatusPostponed,
	"STATUS_CANCELLED":   models.StatusCancelled,
	"STATUS_CANCELED":    models.StatusCancelled,
}

// Formatter turns raw ESPN payloads into the fixed internal shapes. It holds
// no mutable state, so formatting the same input twice gives equal output.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{loc: loc}
}

// FormatScoreboard formats every event, using the scoreboard's week for
// events that don't carry their own.
func (f Formatter) FormatScoreboard(resp models.ScoreboardResponse, league models.League) []models.Game {
	week := 0
	if resp.Week != nil {
		week = resp.Week.Number
	}
	return f.formatGames(resp.Events, league, week)
}

func (f Formatter) FormatGames(events []models.Event, league models.League) []models.Game {
	return f.formatGames(events, league, 0)
}

func (f Formatter) formatGames(events []models.Event, league models.League, week int) []models.Game {
	games := make([]models.Game, 0, len(events))
	for _, ev := range events {
		game, ok := f.formatGame(ev, league, week)
		if !ok {
			continue
		}
		games = append(games, game)
	}
	return games
}

// FormatGame reports false when the event lacks a home or away competitor.
func (f Formatter) FormatGame(ev models.Event, league models.League) (models.Game, bool) {
	return f.formatGame(ev, league, 0)
}

func (f Formatter) formatGame(ev models.Event, league models.League, week int) (models.Game, bool) {
	if len(ev.Competitions) == 0 {
		return models.Game{}, false
	}
	comp := ev.Competitions[0]

	var home, away *models.Competitor
	for i := range comp.Competitors {
		switch strings.ToLower(comp.Competitors[i].HomeAway) {
		case "home":
			if home == nil {
				home = &comp.Competitors[i]
			}
		case "away":
			if away == nil {
				away = &comp.Competitors[i]
			}
		}
	}
	if home == nil || away == nil {
		return models.Game{}, false
	}

	rawDate := ev.Date
	if rawDate == "" {
		rawDate = comp.Date
	}
	start, hasTime := ParseTime(rawDate)

	status := ev.Status
	if comp.Status != nil && comp.Status.Type != nil {
		status = comp.Status
	}
	statusName := ""
	if status != nil && status.Type != nil {
		statusName = status.Type.Name
	}

	game := models.Game{
		ID:        ev.ID,
		HomeTeam:  competitorName(home, "Home Team"),
		AwayTeam:  competitorName(away, "Away Team"),
		HomeScore: ParseScore(string(home.Score)),
		AwayScore: ParseScore(string(away.Score)),
		Status:    StatusFromESPN(statusName),
		Time:      models.DateTBD,
		Date:      models.DateTBD,
		League:    league,
	}

	if hasTime {
		game.StartTime = start
		game.Time, game.Date = f.Schedule(start)
	}

	switch {
	case ev.Week != nil && ev.Week.Number > 0:
		game.Week = ev.Week.Number
	case week > 0:
		game.Week = week
	case hasTime:
		game.Week = SeasonWeek(start)
	default:
		game.Week = 1
	}

	if game.ID == "" {
		game.ID = PlaceholderGameID(rawDate, game.HomeTeam, game.AwayTeam)
	}
	return game, true
}

// Schedule renders the kickoff time and date in the formatter's location.
func (f Formatter) Schedule(t time.Time) (string, string) {
	local := t.In(f.loc)
	return local.Format(timeLayout), local.Format(dateLayout)
}

func competitorName(c *models.Competitor, fallback string) string {
	return teamRefName(c.Team, fallback)
}

func teamRefName(t *models.TeamRef, fallback string) string {
	if t == nil {
		return fallback
	}
	for _, name := range []string{t.DisplayName, t.ShortDisplayName, t.Name, t.Abbreviation} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return fallback
}

// PlaceholderGameID derives a stable id for events ESPN sent without one.
func PlaceholderGameID(date, home, away string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(date+"|"+home+"|"+away)).String()
}

// ParseScore reads the leading integer of s. Anything else, including a
// negative value, is 0.
func ParseScore(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func StatusFromESPN(name string) models.GameStatus {
	if status, ok := statusMap[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return status
	}
	return models.StatusUnknown
}

func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SeasonStart is September 1 of the season t belongs to. January and
// February games belong to the previous year's season.
func SeasonStart(t time.Time) time.Time {
	t = t.UTC()
	year := t.Year()
	if t.Month() <= time.February {
		year--
	}
	return time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
}

// SeasonWeek estimates the week number of t when ESPN doesn't supply one.
func SeasonWeek(t time.Time) int {
	days := t.Sub(SeasonStart(t)).Hours() / 24
	week := int(math.Floor(days/7)) + 1
	if week < 1 {
		return 1
	}
	return week
}

// FormatRoster fills every player field, falling back to placeholders.
func (f Formatter) FormatRoster(resp models.AthletesResponse, teamID string) []models.Player {
	players := make([]models.Player, 0, len(resp.Items))
	for i, a := range resp.Items {
		players = append(players, formatPlayer(a, teamID, i))
	}
	return players
}

func formatPlayer(a models.Athlete, teamID string, index int) models.Player {
	p := models.Player{
		ID:         a.ID,
		Name:       firstNonEmpty(a.DisplayName, a.FullName, "Unknown Player"),
		Position:   "Unknown",
		Jersey:     firstNonEmpty(a.Jersey, "00"),
		Height:     "N/A",
		Weight:     "N/A",
		Age:        "N/A",
		Experience: "N/A",
		Team:       "Unknown Team",
		College:    "N/A",
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("player-%s-%d", teamID, index)
	}
	if a.Position != nil {
		p.Position = firstNonEmpty(a.Position.Abbreviation, a.Position.DisplayName, a.Position.Name, p.Position)
	}
	switch {
	case a.DisplayHeight != "":
		p.Height = a.DisplayHeight
	case a.Height != nil && *a.Height > 0:
		p.Height = FormatHeight(int(*a.Height))
	}
	switch {
	case a.DisplayWeight != "":
		p.Weight = a.DisplayWeight
	case a.Weight != nil && *a.Weight > 0:
		p.Weight = fmt.Sprintf("%d lbs", int(*a.Weight))
	}
	if a.Age != nil && *a.Age > 0 {
		p.Age = strconv.Itoa(*a.Age)
	}
	if a.Experience != nil && a.Experience.Years != nil {
		p.Experience = strconv.Itoa(*a.Experience.Years)
	}
	if a.Team != nil {
		p.Team = firstNonEmpty(a.Team.DisplayName, a.Team.Name, p.Team)
	}
	if a.College != nil {
		p.College = firstNonEmpty(a.College.DisplayName, a.College.Name, p.College)
	}
	return p
}

// FormatHeight renders inches as 6'2".
func FormatHeight(inches int) string {
	return fmt.Sprintf("%d'%d\"", inches/12, inches%12)
}

func (f Formatter) FormatTeam(item models.TeamItem) models.Team {
	team := models.Team{
		ID:           item.ID,
		Name:         firstNonEmpty(item.DisplayName, item.ShortDisplayName, item.Name),
		Abbreviation: item.Abbreviation,
		City:         item.Location,
	}
	if item.Conference != nil {
		team.Conference = firstNonEmpty(item.Conference.DisplayName, item.Conference.Name)
	}
	if item.Division != nil {
		team.Division = firstNonEmpty(item.Division.DisplayName, item.Division.Name)
	}
	return team
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
