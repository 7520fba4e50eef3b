// Package webui serves the words page over HTTP.
package webui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wordledger/wordledger/internal/app"
	"github.com/wordledger/wordledger/internal/ledger"
	"github.com/wordledger/wordledger/internal/middleware"
	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/view"
)

// Page is the page state the handlers drive. *app.Controller implements it.
type Page interface {
	Snapshot() app.State
	Submit(ctx context.Context, text string) error
	Delete(ctx context.Context, id int64, confirm ledger.Confirmer) error
	Refresh(ctx context.Context) error
}

// Handler handles browser requests for the words page.
type Handler struct {
	page     Page
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(page Page, renderer *view.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		page:     page,
		renderer: renderer,
		logger:   logger,
	}
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.Index(&buf, h.page.Snapshot()); err != nil {
		h.renderError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Submit handles POST /words.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// The form field is required; an empty submission changes nothing.
	text := r.PostFormValue("text")
	if text != "" {
		if err := h.page.Submit(detach(r), text); err != nil {
			h.logger.Warn("save word failed",
				slog.String("error", err.Error()),
				slog.String("request_id", middleware.GetRequestID(r.Context())),
			)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmDelete handles GET /words/{id}/delete by rendering the yes/no prompt.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var word *model.WordEntry
	for _, entry := range h.page.Snapshot().Words {
		if entry.ID == id {
			entry := entry
			word = &entry
			break
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.Confirm(&buf, id, word); err != nil {
		h.renderError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Delete handles POST /words/{id}/delete. The confirm form value carries
// the answer to the prompt; anything but "yes" declines.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	confirm := ledger.Decline
	if r.PostFormValue("confirm") == "yes" {
		confirm = ledger.Accept
	}

	err := h.page.Delete(detach(r), id, confirm)
	switch {
	case errors.Is(err, ledger.ErrDeclined):
		h.logger.Debug("delete declined", slog.Int64("word_id", id))
	case err != nil:
		h.logger.Warn("delete word failed",
			slog.Int64("word_id", id),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Refresh handles POST /refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.page.Refresh(detach(r)); err != nil {
		h.logger.Warn("refresh failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("render failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// detach keeps request values but not its cancellation: a browser that
// navigates away must not drop the result of an action it started. The
// page lifetime still cancels the call.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid word id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
