package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/auth"
	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(subject string, claims map[string]any) (string, error) {
	args := m.Called(subject, claims)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueWithScopes(subject string, scopes ...string) (string, error) {
	args := m.Called(subject, scopes)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Subject(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IsTokenValid(token, expectedSubject string) bool {
	return m.Called(token, expectedSubject).Bool(0)
}

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) SelectUserByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	var c *customer.Customer
	if v := args.Get(0); v != nil {
		c = v.(*customer.Customer)
	}
	return c, args.Error(1)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// captureHandler records the principal the filter bound, if any.
func captureHandler(got *auth.Principal, bound *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *bound = auth.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthorization(t *testing.T) {
	stored := &customer.Customer{ID: 7, Name: "Maria", Email: "maria@example.test", Password: "digest", Age: 30, Gender: customer.GenderFemale}

	t.Run("Binds principal for valid token", func(t *testing.T) {
		tokens := new(mockTokenService)
		users := new(mockUserLookup)
		tokens.On("Subject", "good").Return("maria@example.test", nil).Once()
		tokens.On("IsTokenValid", "good", "maria@example.test").Return(true).Once()
		users.On("SelectUserByEmail", mock.Anything, "maria@example.test").Return(stored, nil).Once()

		var got auth.Principal
		var bound bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		Authorization(tokens, users, discardLogger)(captureHandler(&got, &bound)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, bound)
		assert.Equal(t, customer.NewCustomerDTO(stored), got.Customer)
		assert.Equal(t, []string{customer.RoleUser}, got.Roles)
		tokens.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		header string
		setup  func(tokens *mockTokenService, users *mockUserLookup)
	}{
		{name: "Missing header", header: ""},
		{name: "Wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "Lowercase scheme", header: "bearer good"},
		{name: "Empty token", header: "Bearer "},
		{
			name:   "Unparseable token",
			header: "Bearer garbage",
			setup: func(tokens *mockTokenService, _ *mockUserLookup) {
				tokens.On("Subject", "garbage").Return("", errors.New("malformed")).Once()
			},
		},
		{
			name:   "Expired token",
			header: "Bearer expired",
			setup: func(tokens *mockTokenService, _ *mockUserLookup) {
				tokens.On("Subject", "expired").Return("maria@example.test", nil).Once()
				tokens.On("IsTokenValid", "expired", "maria@example.test").Return(false).Once()
			},
		},
		{
			name:   "Subject no longer exists",
			header: "Bearer orphan",
			setup: func(tokens *mockTokenService, users *mockUserLookup) {
				tokens.On("Subject", "orphan").Return("gone@example.test", nil).Once()
				tokens.On("IsTokenValid", "orphan", "gone@example.test").Return(true).Once()
				users.On("SelectUserByEmail", mock.Anything, "gone@example.test").Return(nil, customer.ErrCustomerNotFound).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" leaves request unbound", func(t *testing.T) {
			tokens := new(mockTokenService)
			users := new(mockUserLookup)
			if tt.setup != nil {
				tt.setup(tokens, users)
			}

			var got auth.Principal
			var bound bool
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Authorization(tokens, users, discardLogger)(captureHandler(&got, &bound)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, bound)
			tokens.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestAuthorizationPanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { Authorization(nil, new(mockUserLookup), discardLogger) })
	assert.Panics(t, func() { Authorization(new(mockTokenService), nil, discardLogger) })
}

func TestRequireAuthenticated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Rejects unbound request with 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()

		RequireAuthenticated(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusForbidden, body.StatusCode)
		assert.Equal(t, "/api/v1/customers", body.Path)
	})

	t.Run("Passes bound request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Roles: []string{customer.RoleUser}}))
		rec := httptest.NewRecorder()

		RequireAuthenticated(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
