package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/api/espn"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeSports struct {
	league      models.League
	week        int
	teamQueries []string
}

func (f *fakeSports) GetScoreboard(_ context.Context, league models.League, week int) []models.Game {
	f.league, f.week = league, week
	return []models.Game{{HomeTeam: "Seattle Seahawks", AwayTeam: "Denver Broncos", HomeScore: 26, AwayScore: 20, Status: models.StatusFinal}}
}

func (f *fakeSports) CurrentWeek(context.Context, models.League) int { return 6 }

func (f *fakeSports) GetTeamGames(_ context.Context, name string, league models.League) models.TeamGames {
	f.league = league
	f.teamQueries = append(f.teamQueries, name)
	return models.TeamGames{Team: "Seattle Seahawks", League: league}
}

func (f *fakeSports) GetTeamStats(_ context.Context, name string, league models.League) models.TeamStatsReport {
	f.league = league
	f.teamQueries = append(f.teamQueries, name)
	return models.TeamStatsReport{Team: "Seattle Seahawks", Stats: models.TeamSeasonStats{Wins: 3, Losses: 2, CurrentStreak: "2 wins"}}
}

func (f *fakeSports) LookupTeam(_ context.Context, name string, _ models.League) (models.Team, error) {
	if strings.EqualFold(name, "seahawks") {
		return models.Team{ID: "26", Name: "Seattle Seahawks"}, nil
	}
	return models.Team{}, espn.ErrTeamNotFound
}

func (f *fakeSports) SuggestTeams(context.Context, string, models.League) []string {
	return []string{"Seattle Seahawks", "Seahawks Reserve"}
}

func (f *fakeSports) GetRoster(_ context.Context, teamID string, league models.League) models.Roster {
	return models.Roster{TeamID: teamID, League: league, Players: []models.Player{
		{Name: "Geno Smith", Position: "QB", Jersey: "7", Height: "6'3\"", Weight: "221 lbs"},
	}}
}

type fakeExpert struct{ err error }

func (f fakeExpert) AskExpert(_ context.Context, q string) (backend.ExpertAnswer, error) {
	if f.err != nil {
		return backend.ExpertAnswer{}, f.err
	}
	return backend.ExpertAnswer{Question: q, Answer: "Run the ball."}, nil
}

func commandUpdate(text string) tgbotapi.Update {
	cmd, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 42},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/start", "Welcome to Gridiron!"},
		{"/help", "/roster [ncaa] <team>"},
		{"/bogus", "Unknown command"},
		{"/scores", "*NFL Week 6 Scores*"},
		{"/scores ncaa 3", "*NCAA Week 3 Scores*"},
		{"/scores zero", "Week must be a positive number"},
		{"/games", "Please provide a team name"},
		{"/games seahawks", "*Seattle Seahawks Schedule*"},
		{"/stats seahawks", "Streak: 2 wins"},
		{"/roster seahawks", "#7 Geno Smith - QB"},
		{"/roster hawks", `Team "hawks" not found. Did you mean: Seattle Seahawks, Seahawks Reserve?`},
		{"/ask", "Please provide a question"},
		{"/ask who should start?", "Run the ball."},
	}
	h := NewHandler(&fakeSports{}, fakeExpert{}, models.LeagueNFL)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := h.HandleCommand(context.Background(), commandUpdate(tt.text))

			assert.Equal(t, int64(42), msg.ChatID)
			assert.Contains(t, msg.Text, tt.want)
		})
	}
}

func TestHandleCommandLeaguePrefix(t *testing.T) {
	sports := &fakeSports{}
	h := NewHandler(sports, nil, "")

	h.HandleCommand(context.Background(), commandUpdate("/games ncaa Ohio State"))
	assert.Equal(t, models.LeagueNCAA, sports.league)

	h.HandleCommand(context.Background(), commandUpdate("/stats Kansas City Chiefs"))
	assert.Equal(t, models.LeagueNFL, sports.league)

	assert.Equal(t, []string{"Ohio State", "Kansas City Chiefs"}, sports.teamQueries)
}

func TestHandleAskErrors(t *testing.T) {
	h := NewHandler(&fakeSports{}, fakeExpert{err: errors.New("backend down")}, models.LeagueNFL)
	msg := h.HandleCommand(context.Background(), commandUpdate("/ask anything"))
	assert.Contains(t, msg.Text, "backend down")

	h = NewHandler(&fakeSports{}, nil, models.LeagueNFL)
	msg = h.HandleCommand(context.Background(), commandUpdate("/ask anything"))
	assert.Equal(t, "The expert is not available right now.", msg.Text)
}
