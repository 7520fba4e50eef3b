package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wordledger/wordledger/internal/auth"
	"github.com/wordledger/wordledger/internal/handler/dto"
	"github.com/wordledger/wordledger/internal/middleware"
	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/service"
)

// WordHandler handles word and server time requests.
type WordHandler struct {
	svc    *service.WordService
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(svc *service.WordService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, logger: logger}
}

// Time returns the current server time.
// GET /api/time
func (h *WordHandler) Time(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.TimeResponse{Time: h.svc.ServerTime()})
}

// Create stores a new word.
// POST /api/words
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeMessage(w, http.StatusBadRequest, dto.WordMissingText)
		return
	}
	raw, ok := body["text"]
	if !ok {
		writeMessage(w, http.StatusBadRequest, dto.WordMissingText)
		return
	}

	// Present but not a string (null, number, object) cannot be stored.
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		h.logger.Warn("word rejected",
			slog.String("reason", "text_not_string"),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeMessage(w, http.StatusBadRequest, dto.WordNotSaved)
		return
	}

	word, err := h.svc.CreateWord(r.Context(), text)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("word saved",
		slog.Int64("word_id", word.ID),
		slog.String("subject", auth.IdentityFromContext(r.Context())),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	writeJSON(w, http.StatusCreated, dto.CreateWordResponse{
		Message: dto.WordSaved,
		Word:    word.Text,
	})
}

// List returns every word, newest first.
// GET /api/words
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.svc.ListWords(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	entries := make([]model.WordEntry, 0, len(words))
	for _, word := range words {
		entries = append(entries, word.Entry())
	}
	writeJSON(w, http.StatusOK, entries)
}

// Delete removes a word.
// DELETE /api/words/{id}
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, dto.InvalidWordID)
		return
	}

	if err := h.svc.DeleteWord(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("word deleted",
		slog.Int64("word_id", id),
		slog.String("subject", auth.IdentityFromContext(r.Context())),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *WordHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrWordNotFound):
		writeMessage(w, http.StatusNotFound, dto.WordNotFound)
	case errors.Is(err, service.ErrInvalidWord),
		errors.Is(err, service.ErrWordTooLong),
		errors.Is(err, service.ErrWordExists):
		h.logger.Warn("word rejected",
			slog.String("reason", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeMessage(w, http.StatusBadRequest, dto.WordNotSaved)
	default:
		h.logger.Error("word request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		if r.Method == http.MethodPost {
			// A failed insert reports the same outcome as a rejected one.
			writeMessage(w, http.StatusBadRequest, dto.WordNotSaved)
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
