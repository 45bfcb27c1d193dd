package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/api"
)

// Handler exposes the login endpoint.
type Handler struct {
	svc    *AuthService
	logger *zap.SugaredLogger
}

func NewHandler(svc *AuthService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// LoginRequest login payload. Presence is checked by the service so that a
// missing field yields the fixed "email and password required" message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.Bind(w, r, &req); err != nil {
		api.WriteError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			api.WriteError(w, r, h.logger, api.ValidationError("Email and password required", nil))
		case errors.Is(err, ErrBadCredentials):
			h.logger.Infow("login failed", "remote", r.RemoteAddr)
			api.WriteError(w, r, h.logger, api.AuthenticationError("Invalid credentials"))
		default:
			api.WriteError(w, r, h.logger, api.ServerError(err))
		}
		return
	}
	h.logger.Infow("login succeeded", "role", res.Role)
	api.WriteJSON(w, http.StatusOK, res)
}
