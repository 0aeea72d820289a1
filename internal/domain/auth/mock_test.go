package auth

import (
	"context"

	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/mock"
)

// MockUserLookup only answers SelectUserByEmail; any other dao call panics.
type MockUserLookup struct {
	customer.CustomerDao
	mock.Mock
}

func (_m *MockUserLookup) SelectUserByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (_m *MockPasswordHasher) Hash(plain string) (string, error) {
	ret := _m.Called(plain)
	return ret.String(0), ret.Error(1)
}

func (_m *MockPasswordHasher) Matches(plain, digest string) bool {
	return _m.Called(plain, digest).Bool(0)
}

type MockTokenService struct {
	mock.Mock
}

func (_m *MockTokenService) Issue(subject string, claims map[string]any) (string, error) {
	ret := _m.Called(subject, claims)
	return ret.String(0), ret.Error(1)
}

func (_m *MockTokenService) IssueWithScopes(subject string, scopes ...string) (string, error) {
	ret := _m.Called(subject, scopes)
	return ret.String(0), ret.Error(1)
}

func (_m *MockTokenService) Subject(token string) (string, error) {
	ret := _m.Called(token)
	return ret.String(0), ret.Error(1)
}

func (_m *MockTokenService) IsTokenValid(token, expectedSubject string) bool {
	return _m.Called(token, expectedSubject).Bool(0)
}
