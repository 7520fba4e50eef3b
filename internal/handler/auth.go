package handler

import (
	"log/slog"
	"net/http"

	"github.com/wordledger/wordledger/internal/handler/dto"
	"github.com/wordledger/wordledger/internal/middleware"
	"github.com/wordledger/wordledger/internal/service"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login issues an access token. No credentials are required.
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	token, err := h.svc.Login(r.Context())
	if err != nil {
		h.logger.Error("token issuance failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{AccessToken: token})
}
