package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/models"
)

// Sports is the part of service.SportsService the API serves.
type Sports interface {
	GetScoreboard(ctx context.Context, league models.League, week int) []models.Game
	GetTeamGames(ctx context.Context, teamName string, league models.League) models.TeamGames
	GetTeamStats(ctx context.Context, teamName string, league models.League) models.TeamStatsReport
	LookupTeam(ctx context.Context, name string, league models.League) (models.Team, error)
	SuggestTeams(ctx context.Context, name string, league models.League) []string
	GetRoster(ctx context.Context, teamID string, league models.League) models.Roster
	GetGameSummary(ctx context.Context, gameID string, league models.League) (models.GameSummary, error)
}

// Backend is the chat and document service the API passes through to.
type Backend interface {
	AskExpert(ctx context.Context, question string) (backend.ExpertAnswer, error)
	CreateSession(ctx context.Context) (backend.Session, error)
	Chat(ctx context.Context, req backend.ChatRequest) (backend.ChatResponse, error)
	ChatHistory(ctx context.Context, sessionID string) (backend.ChatHistory, error)
	ClearChat(ctx context.Context, sessionID string) error
	UploadPDF(ctx context.Context, filename string, r io.Reader) (backend.UploadResult, error)
	ExtractPDFText(ctx context.Context, fileID string, page int) (backend.PageText, error)
	PDFPage(ctx context.Context, fileID string, page int) ([]byte, error)
	UpdatePDFText(ctx context.Context, fileID string, page int, blocks []backend.TextBlock) (backend.UpdateResult, error)
	DownloadTextPDF(ctx context.Context, fileID string) ([]byte, error)
}

type Options struct {
	CORSOrigins    []string
	Metrics        http.Handler
	RequestTimeout time.Duration
}

// NewRouter wires the dashboard API. chat and opts.Metrics may be nil.
func NewRouter(sports Sports, chat Backend, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	h := &handler{sports: sports, backend: chat}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", h.ask)

		r.Route("/chat", func(r chi.Router) {
			r.Use(h.requireBackend)
			r.Post("/", h.chat)
			r.Post("/sessions", h.createSession)
			r.Get("/{session}/history", h.chatHistory)
			r.Delete("/{session}", h.clearChat)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Use(h.requireBackend)
			r.Post("/", h.uploadDocument)
			r.Get("/{id}/download", h.downloadDocument)
			r.Route("/{id}/pages/{page}", func(r chi.Router) {
				r.Get("/image", h.pageImage)
				r.Get("/text", h.pageText)
				r.Put("/text", h.updatePageText)
			})
		})

		r.Route("/{league}", func(r chi.Router) {
			r.Use(withLeague)

			r.Get("/scoreboard", h.scoreboard)
			r.Get("/teams/resolve", h.resolveTeam)
			r.Get("/teams/{team}/games", h.teamGames)
			r.Get("/teams/{team}/stats", h.teamStats)
			r.Get("/teams/{team}/roster", h.roster)
			r.Get("/games/{id}", h.gameSummary)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			slog.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

type leagueKey struct{}

func withLeague(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		league, err := models.ParseLeague(chi.URLParam(r, "league"))
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), leagueKey{}, league)))
	})
}

func leagueFrom(r *http.Request) models.League {
	league, _ := r.Context().Value(leagueKey{}).(models.League)
	return league
}
