package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type handler struct {
	sports  Sports
	backend Backend
}

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scoreboard serves ?week=N, or the current week when week is absent.
func (h *handler) scoreboard(w http.ResponseWriter, r *http.Request) {
	week := 0
	if v := r.URL.Query().Get("week"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "week must be a positive integer")
			return
		}
		week = n
	}
	respondJSON(w, http.StatusOK, h.sports.GetScoreboard(r.Context(), leagueFrom(r), week))
}

func (h *handler) resolveTeam(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	league := leagueFrom(r)
	team, err := h.sports.LookupTeam(r.Context(), name, league)
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error:       "team not found",
			Suggestions: h.sports.SuggestTeams(r.Context(), name, league),
		})
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *handler) teamGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sports.GetTeamGames(r.Context(), chi.URLParam(r, "team"), leagueFrom(r)))
}

func (h *handler) teamStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sports.GetTeamStats(r.Context(), chi.URLParam(r, "team"), leagueFrom(r)))
}

func (h *handler) roster(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sports.GetRoster(r.Context(), chi.URLParam(r, "team"), leagueFrom(r)))
}

func (h *handler) gameSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sports.GetGameSummary(r.Context(), chi.URLParam(r, "id"), leagueFrom(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *handler) ask(w http.ResponseWriter, r *http.Request) {
	if h.backend == nil {
		respondError(w, http.StatusServiceUnavailable, "expert backend not configured")
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	answer, err := h.backend.AskExpert(r.Context(), req.Question)
	if err != nil {
		slog.Error("Expert request failed", "error", err)
		respondError(w, http.StatusBadGateway, "expert backend unavailable")
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
