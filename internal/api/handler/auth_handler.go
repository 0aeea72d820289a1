package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/auth"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
)

type LoginAuthenticator interface {
	Login(ctx context.Context, req auth.AuthenticationRequest) (auth.AuthenticationResponse, error)
}

type AuthHandler struct {
	authenticator LoginAuthenticator
	logger        *slog.Logger
}

func NewAuthHandler(a LoginAuthenticator, l *slog.Logger) *AuthHandler {
	if a == nil {
		panic("authenticator cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{
		authenticator: a,
		logger:        l.With("component", "AuthHandler"),
	}
}

// Login handles POST /api/v1/auth/login
// @Summary Log in with email and password
// @Description Returns the customer and a signed token. The token is also set in the Authorization header.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.AuthenticationRequest true "Credentials"
// @Success 200 {object} auth.AuthenticationResponse "Authenticated"
// @Header 200 {string} Authorization "Signed token without the Bearer prefix"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Bad credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthenticationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	resp, err := h.authenticator.Login(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			monitoring.RecordLogin(monitoring.LoginOutcomeFailure)
		}
		h.logger.Log(r.Context(), levelFor(err), "Login failed", slog.Any("error", err))
		respondError(w, r, err)
		return
	}
	monitoring.RecordLogin(monitoring.LoginOutcomeSuccess)

	w.Header().Set(headerAuthorization, resp.Token)
	respondJSON(w, http.StatusOK, resp)
}
