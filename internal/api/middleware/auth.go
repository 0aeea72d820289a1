package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/auth"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/redact"
)

const bearerPrefix = "Bearer "

// UserLookup loads the customer a token subject names.
type UserLookup interface {
	SelectUserByEmail(ctx context.Context, email string) (*customer.Customer, error)
}

// Authorization binds the caller's identity to the request context when the
// request carries a valid bearer token for an existing customer. It never
// rejects a request; RequireAuthenticated does that.
func Authorization(tokens auth.TokenService, users UserLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	if tokens == nil {
		panic("token service cannot be nil")
	}
	if users == nil {
		panic("user lookup cannot be nil")
	}
	logger = logger.With("component", "AuthorizationFilter")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, ok := resolvePrincipal(r, tokens, users, logger); ok {
				r = r.WithContext(auth.WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolvePrincipal(r *http.Request, tokens auth.TokenService, users UserLookup, logger *slog.Logger) (auth.Principal, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return auth.Principal{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return auth.Principal{}, false
	}

	subject, err := tokens.Subject(token)
	if err != nil {
		logger.DebugContext(r.Context(), "Rejected bearer token", slog.Any("error", err))
		return auth.Principal{}, false
	}
	if !tokens.IsTokenValid(token, subject) {
		logger.DebugContext(r.Context(), "Bearer token failed validation", slog.String("subject", redact.Email(subject)))
		return auth.Principal{}, false
	}

	c, err := users.SelectUserByEmail(r.Context(), subject)
	if err != nil {
		logger.WarnContext(r.Context(), "Token subject could not be loaded",
			slog.String("subject", redact.Email(subject)), slog.Any("error", err))
		return auth.Principal{}, false
	}

	return auth.Principal{Customer: customer.NewCustomerDTO(c), Roles: c.Roles()}, true
}

// RequireAuthenticated rejects requests without a bound identity with 403.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFrom(r.Context()); !ok {
			body := dto.NewErrorResponse(r, http.StatusForbidden, dto.ErrorDetail{Code: "FORBIDDEN", Message: "Access denied"})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(body)
			return
		}
		next.ServeHTTP(w, r)
	})
}
