package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"customer-service/internal/pkg/redact"
)

const msgBadCredentials = "bad credentials"

const (
	dummyPassword = "unknown-user-placeholder"
	// fallbackDummyDigest is used only when the hasher cannot produce a digest
	// at startup.
	fallbackDummyDigest = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z6Gq3B0bJQz9J6ttJ8p4bB9e"
)

type Authenticator struct {
	dao    customer.CustomerDao
	hasher customer.PasswordHasher
	tokens TokenService
	logger *slog.Logger
	// dummyDigest is compared against when the user does not exist.
	dummyDigest string
}

func NewAuthenticator(dao customer.CustomerDao, hasher customer.PasswordHasher, tokens TokenService, logger *slog.Logger) *Authenticator {
	if dao == nil {
		panic("customer dao cannot be nil")
	}
	if hasher == nil {
		panic("password hasher cannot be nil")
	}
	if tokens == nil {
		panic("token service cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	logger = logger.With(slog.String("component", "authenticator"))

	dummyDigest, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Warn("Failed to hash placeholder password, using fixed digest", slog.Any("error", err))
		dummyDigest = fallbackDummyDigest
	}

	return &Authenticator{
		dao:         dao,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyDigest: dummyDigest,
	}
}

// Login checks the credentials and issues a token for the customer. Unknown
// users and wrong passwords fail with the same Unauthorized error.
func (a *Authenticator) Login(ctx context.Context, req AuthenticationRequest) (AuthenticationResponse, error) {
	logger := a.logger.With(slog.String("username", redact.Email(req.Username)))

	c, err := a.dao.SelectUserByEmail(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, customer.ErrCustomerNotFound) {
			logger.ErrorContext(ctx, "Dao error looking up user", slog.Any("error", err))
			return AuthenticationResponse{}, fmt.Errorf("failed to look up user: %w", err)
		}
		a.hasher.Matches(req.Password, a.dummyDigest)
		logger.WarnContext(ctx, "Login failed")
		return AuthenticationResponse{}, apperrors.NewUnauthorizedError(msgBadCredentials)
	}

	if !a.hasher.Matches(req.Password, c.Password) {
		logger.WarnContext(ctx, "Login failed")
		return AuthenticationResponse{}, apperrors.NewUnauthorizedError(msgBadCredentials)
	}

	dto := customer.NewCustomerDTO(c)
	token, err := a.tokens.IssueWithScopes(c.Email, c.Roles()...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return AuthenticationResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.InfoContext(ctx, "Login succeeded", slog.Int64("customerID", c.ID))
	return AuthenticationResponse{Token: token, CustomerDTO: dto}, nil
}
