package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
)

const maxUploadSize = 50 << 20

type updateTextRequest struct {
	TextBlocks []backend.TextBlock `json:"text_blocks"`
}

func (h *handler) requireBackend(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.backend == nil {
			respondError(w, http.StatusServiceUnavailable, "chat backend not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.backend.CreateSession(r.Context())
	if err != nil {
		respondBackendError(w, "creating session", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var req backend.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	resp, err := h.backend.Chat(r.Context(), req)
	if err != nil {
		respondBackendError(w, "sending chat message", err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.backend.ChatHistory(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		respondBackendError(w, "fetching chat history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *handler) clearChat(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.ClearChat(r.Context(), chi.URLParam(r, "session")); err != nil {
		respondBackendError(w, "clearing chat session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadDocument forwards the multipart "file" field.
func (h *handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		respondError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}

	res, err := h.backend.UploadPDF(r.Context(), header.Filename, file)
	if err != nil {
		respondBackendError(w, "uploading document", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) pageImage(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	data, err := h.backend.PDFPage(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		respondBackendError(w, "fetching page image", err)
		return
	}
	writeBytes(w, "image/png", data)
}

func (h *handler) pageText(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	text, err := h.backend.ExtractPDFText(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		respondBackendError(w, "extracting page text", err)
		return
	}
	respondJSON(w, http.StatusOK, text)
}

func (h *handler) updatePageText(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	var req updateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid text blocks")
		return
	}
	res, err := h.backend.UpdatePDFText(r.Context(), chi.URLParam(r, "id"), page, req.TextBlocks)
	if err != nil {
		respondBackendError(w, "updating page text", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) downloadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.backend.DownloadTextPDF(r.Context(), id)
	if err != nil {
		respondBackendError(w, "downloading document", err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.pdf"`)
	writeBytes(w, "application/pdf", data)
}

func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 0 {
		respondError(w, http.StatusBadRequest, "page must be a non-negative integer")
		return 0, false
	}
	return page, true
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// respondBackendError passes client errors through with their status and
// detail; anything else is a bad gateway.
func respondBackendError(w http.ResponseWriter, action string, err error) {
	var se *backend.StatusError
	if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 {
		msg := se.Detail
		if msg == "" {
			msg = http.StatusText(se.StatusCode)
		}
		respondError(w, se.StatusCode, msg)
		return
	}
	slog.Error("Backend request failed", "action", action, "error", err)
	respondError(w, http.StatusBadGateway, "backend unavailable")
}
