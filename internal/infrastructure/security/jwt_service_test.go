package security

import (
	"testing"
	"time"

	"customer-service/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-long-test-secret-for-hmac-signing"

func newTestJWTService(t *testing.T, now time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret, "customer-service", 15*24*time.Hour)
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issuedAt)

	token, err := svc.IssueWithScopes("u1@x.test", "ROLE_USER")
	require.NoError(t, err)

	assert.True(t, svc.IsTokenValid(token, "u1@x.test"))
	assert.False(t, svc.IsTokenValid(token, "other@x.test"))
	assert.False(t, svc.IsTokenValid(token, ""))

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.test", subject)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil },
		jwt.WithTimeFunc(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	assert.Equal(t, "customer-service", claims["iss"])
	assert.Equal(t, []any{"ROLE_USER"}, claims[auth.ClaimScopes])
	assert.Equal(t, float64(issuedAt.Unix()), claims["iat"])
	assert.Equal(t, float64(issuedAt.Add(15*24*time.Hour).Unix()), claims["exp"])
	assert.NotEmpty(t, claims["jti"])
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issuedAt)

	token, err := svc.IssueWithScopes("u1@x.test", "ROLE_USER")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(15*24*time.Hour - time.Second) }
	assert.True(t, svc.IsTokenValid(token, "u1@x.test"))

	svc.now = func() time.Time { return issuedAt.Add(15 * 24 * time.Hour) }
	assert.False(t, svc.IsTokenValid(token, "u1@x.test"))

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.test", subject)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	svc := newTestJWTService(t, now)

	other, err := NewJWTService("another-secret-entirely", "customer-service", time.Hour)
	require.NoError(t, err)
	foreign, err := other.IssueWithScopes("u1@x.test", "ROLE_USER")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenValid(foreign, "u1@x.test"))
	_, err = svc.Subject(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherIssuer, err := NewJWTService(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)
	wrongIss, err := otherIssuer.IssueWithScopes("u1@x.test", "ROLE_USER")
	require.NoError(t, err)
	assert.False(t, svc.IsTokenValid(wrongIss, "u1@x.test"))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1@x.test",
		"iss": "customer-service",
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenValid(none, "u1@x.test"))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "u1@x.test",
		"iss": "customer-service",
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.False(t, svc.IsTokenValid(hs512, "u1@x.test"))

	assert.False(t, svc.IsTokenValid("not-a-token", "u1@x.test"))
	_, err = svc.Subject("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RegisteredClaimsWin(t *testing.T) {
	svc := newTestJWTService(t, time.Now())

	token, err := svc.Issue("u1@x.test", map[string]any{"sub": "admin@x.test", "tenant": "blue"})
	require.NoError(t, err)

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.test", subject)
}

func TestNewJWTService_Validation(t *testing.T) {
	_, err := NewJWTService("", "customer-service", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTService(testSecret, "customer-service", 0)
	assert.Error(t, err)
}
