package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"customer-service/internal/infrastructure/monitoring"
)

type CustomerCounter interface {
	CountCustomers(ctx context.Context) (int, error)
}

// CustomerStatsJob refreshes the registered-customers gauge from the store.
type CustomerStatsJob struct {
	counter CustomerCounter
	logger  *slog.Logger
}

func NewCustomerStatsJob(counter CustomerCounter, logger *slog.Logger) *CustomerStatsJob {
	if counter == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		counter: counter,
		logger:  logger.With("job", "CustomerStats"),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats job.")

	count, err := j.counter.CountCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers, gauge left unchanged.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to count customers: %w", err)
	}

	monitoring.SetCustomersRegistered(count)
	j.logger.InfoContext(ctx, "Customer stats job finished.",
		slog.Int("customers", count),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
