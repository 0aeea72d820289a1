// Package memory holds a process-local CustomerDao used when no database is
// configured and in tests.
package memory

import (
	"context"
	"sync"

	"customer-service/internal/domain/customer"
)

// CustomerDao keeps customers in insertion order behind a single RWMutex.
// Emails are unique across stored customers.
// Ids come from a counter and are never reused. Callers always receive
// copies, so mutating a returned customer never changes the store.
type CustomerDao struct {
	mu        sync.RWMutex
	customers []*customer.Customer
	nextID    int64
}

var _ customer.CustomerDao = (*CustomerDao)(nil)

func NewCustomerDao() *CustomerDao {
	return &CustomerDao{nextID: 1}
}

func (d *CustomerDao) SelectAllCustomers(ctx context.Context) ([]*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*customer.Customer, 0, len(d.customers))
	for _, c := range d.customers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (d *CustomerDao) SelectCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexByID(id); i >= 0 {
		return d.customers[i].Clone(), nil
	}
	return nil, customer.ErrCustomerNotFound
}

func (d *CustomerDao) SelectUserByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexByEmail(email); i >= 0 {
		return d.customers[i].Clone(), nil
	}
	return nil, customer.ErrCustomerNotFound
}

func (d *CustomerDao) InsertCustomer(ctx context.Context, c *customer.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexByEmail(c.Email) >= 0 {
		return customer.NewEmailTakenError(nil)
	}

	stored := c.Clone()
	stored.ID = d.nextID
	d.nextID++
	d.customers = append(d.customers, stored)

	c.ID = stored.ID
	return nil
}

// UpdateCustomer replaces the stored customer in place. Email uniqueness is
// checked under the same lock as the write.
func (d *CustomerDao) UpdateCustomer(ctx context.Context, u customer.CustomerUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexByID(u.ID)
	if i < 0 {
		return customer.ErrCustomerNotFound
	}
	if u.Email != nil {
		if j := d.indexByEmail(*u.Email); j >= 0 && j != i {
			return customer.NewEmailTakenError(nil)
		}
	}

	updated := d.customers[i].Clone()
	u.ApplyTo(updated)
	d.customers[i] = updated
	return nil
}

func (d *CustomerDao) DeleteCustomerByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexByID(id); i >= 0 {
		d.customers = append(d.customers[:i], d.customers[i+1:]...)
	}
	return nil
}

func (d *CustomerDao) ExistsCustomerWithEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.indexByEmail(email) >= 0, nil
}

func (d *CustomerDao) ExistsCustomerWithID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.indexByID(id) >= 0, nil
}

func (d *CustomerDao) CountCustomers(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.customers), nil
}

func (d *CustomerDao) indexByID(id int64) int {
	for i, c := range d.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (d *CustomerDao) indexByEmail(email string) int {
	for i, c := range d.customers {
		if c.Email == email {
			return i
		}
	}
	return -1
}
