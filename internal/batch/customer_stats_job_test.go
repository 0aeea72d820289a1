package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"customer-service/internal/batch"
	"customer-service/internal/infrastructure/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerCounter struct {
	mock.Mock
}

func (m *MockCustomerCounter) CountCustomers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCustomerStatsJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets gauge from store count", func(t *testing.T) {
		counter := new(MockCustomerCounter)
		counter.On("CountCustomers", ctx).Return(17, nil).Once()
		job := batch.NewCustomerStatsJob(counter, newTestLogger())

		err := job.Run(ctx)

		assert.NoError(t, err)
		assert.Equal(t, float64(17), testutil.ToFloat64(monitoring.Business.CustomersRegistered))
		counter.AssertExpectations(t)
	})

	t.Run("Count failure leaves gauge unchanged", func(t *testing.T) {
		monitoring.SetCustomersRegistered(5)
		counter := new(MockCustomerCounter)
		counter.On("CountCustomers", ctx).Return(0, errors.New("db down")).Once()
		job := batch.NewCustomerStatsJob(counter, newTestLogger())

		err := job.Run(ctx)

		assert.ErrorContains(t, err, "failed to count customers")
		assert.Equal(t, float64(5), testutil.ToFloat64(monitoring.Business.CustomersRegistered))
	})
}

func TestNewCustomerStatsJob_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { batch.NewCustomerStatsJob(nil, newTestLogger()) })
	assert.Panics(t, func() { batch.NewCustomerStatsJob(new(MockCustomerCounter), nil) })
}
