package customer

import (
	"context"

	"customer-service/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerDao struct {
	mock.Mock
}

func (_m *MockCustomerDao) SelectAllCustomers(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDao) SelectCustomerByID(ctx context.Context, id int64) (*Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDao) SelectUserByEmail(ctx context.Context, email string) (*Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDao) InsertCustomer(ctx context.Context, c *Customer) error {
	ret := _m.Called(ctx, c)

	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		return rf(ctx, c)
	}
	return ret.Error(0)
}

func (_m *MockCustomerDao) UpdateCustomer(ctx context.Context, u CustomerUpdate) error {
	ret := _m.Called(ctx, u)
	return ret.Error(0)
}

func (_m *MockCustomerDao) DeleteCustomerByID(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockCustomerDao) ExistsCustomerWithEmail(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockCustomerDao) ExistsCustomerWithID(ctx context.Context, id int64) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (_m *MockPasswordHasher) Hash(plain string) (string, error) {
	ret := _m.Called(plain)
	return ret.String(0), ret.Error(1)
}

func (_m *MockPasswordHasher) Matches(plain, digest string) bool {
	ret := _m.Called(plain, digest)
	return ret.Bool(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerRegistered(ctx context.Context, ev event.CustomerRegisteredEvent) error {
	return _m.Called(ctx, ev).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, ev event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, ev).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, ev event.CustomerDeletedEvent) error {
	return _m.Called(ctx, ev).Error(0)
}
