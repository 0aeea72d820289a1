package customer

import (
	"context"
	"errors"

	"customer-service/internal/pkg/apperrors"
)

var ErrCustomerNotFound = errors.New("customer not found")

// MsgEmailTaken is the client-facing message of every email uniqueness failure.
const MsgEmailTaken = "email already taken"

// NewEmailTakenError is returned by the service and by every store when an
// email is already held by another customer.
func NewEmailTakenError(cause error) error {
	return &apperrors.AppError{
		Code:    "DUPLICATE_RESOURCE",
		Message: MsgEmailTaken,
		Kind:    apperrors.ErrDuplicateResource,
		Cause:   cause,
	}
}

// CustomerDao is the data-access contract of the customer store.
//
// SelectCustomerByID and SelectUserByEmail return ErrCustomerNotFound when no
// row matches. InsertCustomer ignores c.ID on input and sets it to the id
// assigned by the store. UpdateCustomer fails with ErrCustomerNotFound for an
// unknown id. InsertCustomer and UpdateCustomer fail with NewEmailTakenError
// when the email is held by another customer. DeleteCustomerByID is a no-op
// for an absent id.
type CustomerDao interface {
	SelectAllCustomers(ctx context.Context) ([]*Customer, error)
	SelectCustomerByID(ctx context.Context, id int64) (*Customer, error)
	SelectUserByEmail(ctx context.Context, email string) (*Customer, error)
	InsertCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, u CustomerUpdate) error
	DeleteCustomerByID(ctx context.Context, id int64) error
	ExistsCustomerWithEmail(ctx context.Context, email string) (bool, error)
	ExistsCustomerWithID(ctx context.Context, id int64) (bool, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, digest string) bool
}
