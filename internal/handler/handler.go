// Package handler provides HTTP request handlers for the words API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wordledger/wordledger/internal/handler/dto"
)

// Handler serves the routes that are not part of a resource.
type Handler struct {
	homeRedirect string
}

// New creates a new Handler. homeRedirect is where GET / sends browsers;
// empty serves a small JSON greeting instead.
func New(homeRedirect string) *Handler {
	return &Handler{homeRedirect: homeRedirect}
}

// Home redirects to the frontend.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if h.homeRedirect != "" {
		http.Redirect(w, r, h.homeRedirect, http.StatusFound)
		return
	}
	writeMessage(w, http.StatusOK, "wordledger API")
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.MessageResponse{Message: message})
}
