package auth

import (
	"context"

	"customer-service/internal/domain/customer"
)

// ClaimScopes is the token claim that carries the granted roles.
const ClaimScopes = "scopes"

// TokenService issues and checks bearer tokens. Subject extracts the subject
// without checking expiry; IsTokenValid checks signature, subject and expiry.
type TokenService interface {
	Issue(subject string, claims map[string]any) (string, error)
	IssueWithScopes(subject string, scopes ...string) (string, error)
	Subject(token string) (string, error)
	IsTokenValid(token, expectedSubject string) bool
}

type AuthenticationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthenticationResponse struct {
	Token       string               `json:"token"`
	CustomerDTO customer.CustomerDTO `json:"customerDTO"`
}

// Principal is the identity bound to an authenticated request.
type Principal struct {
	Customer customer.CustomerDTO
	Roles    []string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
