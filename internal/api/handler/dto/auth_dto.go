package dto

import (
	"strings"

	"customer-service/internal/domain/auth"
	"customer-service/internal/pkg/apperrors"
)

type AuthenticationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *AuthenticationRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return apperrors.NewValidationError("username", "must not be empty")
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password", "must not be empty")
	}
	return nil
}

func (r *AuthenticationRequest) ToDomain() auth.AuthenticationRequest {
	return auth.AuthenticationRequest{Username: r.Username, Password: r.Password}
}
