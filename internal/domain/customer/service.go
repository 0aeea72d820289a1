package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"
	"customer-service/internal/pkg/redact"
)

const (
	msgNoDataChanges    = "no data changes found"
	msgCustomerNotFound = "customer with id [%d] not found"
)

type CustomerService interface {
	GetAllCustomers(ctx context.Context) ([]CustomerDTO, error)
	GetCustomer(ctx context.Context, id int64) (CustomerDTO, error)
	AddCustomer(ctx context.Context, req RegistrationRequest) (CustomerDTO, error)
	DeleteCustomerByID(ctx context.Context, id int64) error
	UpdateCustomer(ctx context.Context, id int64, req UpdateRequest) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	dao    CustomerDao
	hasher PasswordHasher
	pub    event.CustomerEventPublisher
	logger *slog.Logger
}

func NewCustomerService(dao CustomerDao, hasher PasswordHasher, pub event.CustomerEventPublisher, logger *slog.Logger) CustomerService {
	if dao == nil {
		panic("customer dao cannot be nil")
	}
	if hasher == nil {
		panic("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}

	return &customerService{
		dao:    dao,
		hasher: hasher,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]CustomerDTO, error) {
	s.logger.DebugContext(ctx, "Listing all customers")

	customers, err := s.dao.SelectAllCustomers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Dao error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, NewCustomerDTO(c))
	}

	s.logger.DebugContext(ctx, "Listed customers", slog.Int("count", len(dtos)))
	return dtos, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (CustomerDTO, error) {
	logger := s.logger.With(slog.Int64("customerID", id))

	c, err := s.loadCustomer(ctx, logger, id)
	if err != nil {
		return CustomerDTO{}, err
	}

	return NewCustomerDTO(c), nil
}

func (s *customerService) AddCustomer(ctx context.Context, req RegistrationRequest) (CustomerDTO, error) {
	logger := s.logger.With(slog.String("email", redact.Email(req.Email)))
	logger.InfoContext(ctx, "Attempting to register customer")

	exists, err := s.dao.ExistsCustomerWithEmail(ctx, req.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Dao error checking email", slog.Any("error", err))
		return CustomerDTO{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		logger.WarnContext(ctx, "Registration rejected, email already taken")
		return CustomerDTO{}, NewEmailTakenError(nil)
	}

	if err := ctx.Err(); err != nil {
		return CustomerDTO{}, err
	}
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return CustomerDTO{}, fmt.Errorf("failed to hash password: %w", err)
	}

	c := &Customer{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Age:      req.Age,
		Gender:   req.Gender,
	}
	if err := s.dao.InsertCustomer(ctx, c); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateResource) {
			logger.WarnContext(ctx, "Registration lost race for email")
			return CustomerDTO{}, err
		}
		logger.ErrorContext(ctx, "Dao failed to insert customer", slog.Any("error", err))
		return CustomerDTO{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	logger = logger.With(slog.Int64("customerID", c.ID))
	logger.InfoContext(ctx, "Successfully registered customer")

	registered := event.CustomerRegisteredEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(c),
	}
	if pubErr := s.pub.PublishCustomerRegistered(ctx, registered); pubErr != nil {
		logger.ErrorContext(ctx, "Customer registered, but FAILED to publish registration event", slog.Any("error", pubErr))
	}

	return NewCustomerDTO(c), nil
}

func (s *customerService) DeleteCustomerByID(ctx context.Context, id int64) error {
	logger := s.logger.With(slog.Int64("customerID", id))
	logger.InfoContext(ctx, "Attempting to delete customer")

	exists, err := s.dao.ExistsCustomerWithID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Dao error checking customer id", slog.Any("error", err))
		return fmt.Errorf("failed to check customer %d: %w", id, err)
	}
	if !exists {
		logger.WarnContext(ctx, "Customer not found for delete")
		return apperrors.NewNotFoundError(msgCustomerNotFound, id)
	}

	if err := s.dao.DeleteCustomerByID(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Dao failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}

	logger.InfoContext(ctx, "Successfully deleted customer")
	deleted := event.CustomerDeletedEvent{Timestamp: time.Now(), CustomerID: id}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deleted); pubErr != nil {
		logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}
	return nil
}

// UpdateCustomer stages only the fields that are present in req and differ
// from the stored value. An update that changes nothing is rejected.
func (s *customerService) UpdateCustomer(ctx context.Context, id int64, req UpdateRequest) error {
	logger := s.logger.With(slog.Int64("customerID", id))
	logger.InfoContext(ctx, "Attempting to update customer")

	c, err := s.loadCustomer(ctx, logger, id)
	if err != nil {
		return err
	}

	update := CustomerUpdate{ID: c.ID}
	changed := false

	if req.Name != nil && *req.Name != c.Name {
		update.Name = ptr(*req.Name)
		changed = true
	}

	if req.Email != nil && *req.Email != c.Email {
		taken, err := s.dao.ExistsCustomerWithEmail(ctx, *req.Email)
		if err != nil {
			logger.ErrorContext(ctx, "Dao error checking email", slog.Any("error", err))
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			logger.WarnContext(ctx, "Update rejected, email already taken", slog.String("email", redact.Email(*req.Email)))
			return NewEmailTakenError(nil)
		}
		update.Email = ptr(*req.Email)
		changed = true
	}

	if req.Age != nil && *req.Age != c.Age {
		update.Age = ptr(*req.Age)
		changed = true
	}

	if req.Gender != nil && *req.Gender != c.Gender {
		update.Gender = ptr(*req.Gender)
		changed = true
	}

	if !changed {
		logger.InfoContext(ctx, "Update rejected, no data changes found")
		return apperrors.NewRequestValidationError(msgNoDataChanges)
	}

	if err := s.dao.UpdateCustomer(ctx, update); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			logger.WarnContext(ctx, "Customer disappeared before update completed")
			return apperrors.NewNotFoundError(msgCustomerNotFound, id)
		}
		if errors.Is(err, apperrors.ErrDuplicateResource) {
			logger.WarnContext(ctx, "Update lost race for email")
			return err
		}
		logger.ErrorContext(ctx, "Dao failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	update.ApplyTo(c)

	logger.InfoContext(ctx, "Successfully updated customer")
	updated := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(c),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updated); pubErr != nil {
		logger.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}
	return nil
}

func (s *customerService) loadCustomer(ctx context.Context, logger *slog.Logger, id int64) (*Customer, error) {
	c, err := s.dao.SelectCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			logger.WarnContext(ctx, "Customer not found by dao")
			return nil, apperrors.NewNotFoundError(msgCustomerNotFound, id)
		}
		logger.ErrorContext(ctx, "Dao error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return c, nil
}

func newCustomerEventPayload(c *Customer) event.CustomerEventPayload {
	return event.CustomerEventPayload{
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Age:        c.Age,
		Gender:     string(c.Gender),
	}
}

func ptr[T any](v T) *T {
	return &v
}
