package handler_test

import (
	"context"

	"customer-service/internal/domain/auth"
	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetAllCustomers(ctx context.Context) ([]customer.CustomerDTO, error) {
	args := m.Called(ctx)
	var r0 []customer.CustomerDTO
	if v := args.Get(0); v != nil {
		r0 = v.([]customer.CustomerDTO)
	}
	return r0, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, id int64) (customer.CustomerDTO, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(customer.CustomerDTO), args.Error(1)
}

func (m *MockCustomerService) AddCustomer(ctx context.Context, req customer.RegistrationRequest) (customer.CustomerDTO, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(customer.CustomerDTO), args.Error(1)
}

func (m *MockCustomerService) DeleteCustomerByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, id int64, req customer.UpdateRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(subject string, claims map[string]any) (string, error) {
	args := m.Called(subject, claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueWithScopes(subject string, scopes ...string) (string, error) {
	args := m.Called(subject, scopes)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Subject(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IsTokenValid(token, expectedSubject string) bool {
	return m.Called(token, expectedSubject).Bool(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, req auth.AuthenticationRequest) (auth.AuthenticationResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auth.AuthenticationResponse), args.Error(1)
}
