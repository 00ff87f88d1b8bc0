package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/service"
)

const rosterLimit = 25

// Sports is the part of service.SportsService the commands use.
type Sports interface {
	GetScoreboard(ctx context.Context, league models.League, week int) []models.Game
	CurrentWeek(ctx context.Context, league models.League) int
	GetTeamGames(ctx context.Context, teamName string, league models.League) models.TeamGames
	GetTeamStats(ctx context.Context, teamName string, league models.League) models.TeamStatsReport
	LookupTeam(ctx context.Context, name string, league models.League) (models.Team, error)
	SuggestTeams(ctx context.Context, name string, league models.League) []string
	GetRoster(ctx context.Context, teamID string, league models.League) models.Roster
}

type Expert interface {
	AskExpert(ctx context.Context, question string) (backend.ExpertAnswer, error)
}

type Handler struct {
	sports        Sports
	expert        Expert
	defaultLeague models.League
}

// NewHandler builds the command handler. expert may be nil, which disables /ask.
func NewHandler(sports Sports, expert Expert, defaultLeague models.League) *Handler {
	if defaultLeague == "" {
		defaultLeague = models.LeagueNFL
	}
	return &Handler{sports: sports, expert: expert, defaultLeague: defaultLeague}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Gridiron! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/scores [ncaa] [week] - Scoreboard\n/games [ncaa] <team> - Team schedule and results\n/stats [ncaa] <team> - Season record and streaks\n/roster [ncaa] <team> - Team roster\n/ask <question> - Ask the football expert"
	case "scores":
		h.handleScores(ctx, &msg, args)
	case "games":
		h.handleGames(ctx, &msg, args)
	case "stats":
		h.handleStats(ctx, &msg, args)
	case "roster":
		h.handleRoster(ctx, &msg, args)
	case "ask":
		h.handleAsk(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

// splitLeague peels an optional leading league name off args.
func (h *Handler) splitLeague(args string) (models.League, string) {
	args = strings.TrimSpace(args)
	first, rest, _ := strings.Cut(args, " ")
	if league, err := models.ParseLeague(first); err == nil {
		return league, strings.TrimSpace(rest)
	}
	return h.defaultLeague, args
}

func (h *Handler) handleScores(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	league, rest := h.splitLeague(args)
	week := 0
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			msg.Text = "Week must be a positive number. Usage: /scores [ncaa] [week]"
			return
		}
		week = n
	}
	if week == 0 {
		week = h.sports.CurrentWeek(ctx, league)
	}
	msg.Text = service.ScoreboardReport(league, week, h.sports.GetScoreboard(ctx, league, week))
}

func (h *Handler) handleGames(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	league, team := h.splitLeague(args)
	if team == "" {
		msg.Text = "Please provide a team name. Usage: /games [ncaa] <team name>"
		return
	}
	msg.Text = service.ScheduleReport(h.sports.GetTeamGames(ctx, team, league))
}

func (h *Handler) handleStats(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	league, team := h.splitLeague(args)
	if team == "" {
		msg.Text = "Please provide a team name. Usage: /stats [ncaa] <team name>"
		return
	}
	msg.Text = service.StatsReport(h.sports.GetTeamStats(ctx, team, league))
}

func (h *Handler) handleRoster(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	league, name := h.splitLeague(args)
	if name == "" {
		msg.Text = "Please provide a team name. Usage: /roster [ncaa] <team name>"
		return
	}
	team, err := h.sports.LookupTeam(ctx, name, league)
	if err != nil {
		msg.Text = notFoundText(name, h.sports.SuggestTeams(ctx, name, league))
		return
	}
	msg.Text = service.RosterReport(team.Name, h.sports.GetRoster(ctx, team.ID, league), rosterLimit)
}

func (h *Handler) handleAsk(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	question := strings.TrimSpace(args)
	if question == "" {
		msg.Text = "Please provide a question. Usage: /ask <question>"
		return
	}
	if h.expert == nil {
		msg.Text = "The expert is not available right now."
		return
	}
	answer, err := h.expert.AskExpert(ctx, question)
	if err != nil {
		msg.Text = fmt.Sprintf("Error asking the expert: %v", err)
		return
	}
	msg.ParseMode = ""
	msg.Text = answer.Answer
}

func notFoundText(name string, suggestions []string) string {
	text := fmt.Sprintf("Team %q not found.", name)
	if len(suggestions) > 0 {
		text += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return text
}
