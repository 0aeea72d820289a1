package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	querySelectAllCustomers = `SELECT id, name, email, password, age, gender FROM customer ORDER BY id`

	querySelectCustomerByID = `SELECT id, name, email, password, age, gender FROM customer WHERE id = $1`

	querySelectUserByEmail = `SELECT id, name, email, password, age, gender FROM customer WHERE email = $1`

	queryInsertCustomer = `INSERT INTO customer (name, email, password, age, gender)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	queryUpdateCustomer = `UPDATE customer
        SET name = COALESCE($2, name),
            email = COALESCE($3, email),
            age = COALESCE($4, age),
            gender = COALESCE($5, gender)
        WHERE id = $1`

	queryDeleteCustomerByID = `DELETE FROM customer WHERE id = $1`

	queryExistsCustomerWithEmail = `SELECT EXISTS (SELECT 1 FROM customer WHERE email = $1)`

	queryExistsCustomerWithID = `SELECT EXISTS (SELECT 1 FROM customer WHERE id = $1)`

	queryCountCustomers = `SELECT COUNT(*) FROM customer`
)

const (
	queryStatusSuccess  = "success"
	queryStatusNotFound = "not_found"
	queryStatusError    = "error"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CustomerDao maps every operation to a single SQL statement on the customer
// table.
type CustomerDao struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerDao = (*CustomerDao)(nil)

func NewCustomerDao(db DBPool, logger *slog.Logger) *CustomerDao {
	if db == nil {
		panic("DBPool cannot be nil for CustomerDao")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerDao, using default stderr handler")
	}
	return &CustomerDao{
		db:     db,
		logger: logger.With("component", "CustomerDao"),
	}
}

func (d *CustomerDao) SelectAllCustomers(ctx context.Context) (_ []*customer.Customer, err error) {
	defer observeQuery("SelectAllCustomers", time.Now(), &err)

	rows, err := d.db.Query(ctx, querySelectAllCustomers)
	if err != nil {
		return nil, d.translateDBError(ctx, err, "failed to query customers")
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		c, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, d.translateDBError(ctx, scanErr, "failed to scan customer row")
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, d.translateDBError(ctx, err, "failed to iterate customer rows")
	}

	d.logger.DebugContext(ctx, "Selected customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (d *CustomerDao) SelectCustomerByID(ctx context.Context, id int64) (_ *customer.Customer, err error) {
	defer observeQuery("SelectCustomerByID", time.Now(), &err)

	c, err := scanCustomer(d.db.QueryRow(ctx, querySelectCustomerByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, d.translateDBError(ctx, err, "failed to select customer by id")
	}
	return c, nil
}

func (d *CustomerDao) SelectUserByEmail(ctx context.Context, email string) (_ *customer.Customer, err error) {
	defer observeQuery("SelectUserByEmail", time.Now(), &err)

	c, err := scanCustomer(d.db.QueryRow(ctx, querySelectUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, d.translateDBError(ctx, err, "failed to select customer by email")
	}
	return c, nil
}

func (d *CustomerDao) InsertCustomer(ctx context.Context, c *customer.Customer) (err error) {
	defer observeQuery("InsertCustomer", time.Now(), &err)

	var id int64
	err = d.db.QueryRow(ctx, queryInsertCustomer,
		c.Name,
		c.Email,
		c.Password,
		c.Age,
		string(c.Gender),
	).Scan(&id)
	if err != nil {
		return d.translateDBError(ctx, err, "failed to insert customer")
	}

	c.ID = id
	d.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", id))
	return nil
}

// UpdateCustomer writes only the non-nil fields of u.
func (d *CustomerDao) UpdateCustomer(ctx context.Context, u customer.CustomerUpdate) (err error) {
	defer observeQuery("UpdateCustomer", time.Now(), &err)

	var gender *string
	if u.Gender != nil {
		g := string(*u.Gender)
		gender = &g
	}

	cmdTag, err := d.db.Exec(ctx, queryUpdateCustomer, u.ID, u.Name, u.Email, u.Age, gender)
	if err != nil {
		return d.translateDBError(ctx, err, "failed to update customer")
	}
	if cmdTag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	d.logger.InfoContext(ctx, "Customer updated successfully", slog.Int64("customerID", u.ID))
	return nil
}

func (d *CustomerDao) DeleteCustomerByID(ctx context.Context, id int64) (err error) {
	defer observeQuery("DeleteCustomerByID", time.Now(), &err)

	cmdTag, err := d.db.Exec(ctx, queryDeleteCustomerByID, id)
	if err != nil {
		return d.translateDBError(ctx, err, "failed to delete customer")
	}

	d.logger.InfoContext(ctx, "Customer delete executed", slog.Int64("customerID", id), slog.Int64("rowsAffected", cmdTag.RowsAffected()))
	return nil
}

func (d *CustomerDao) ExistsCustomerWithEmail(ctx context.Context, email string) (exists bool, err error) {
	defer observeQuery("ExistsCustomerWithEmail", time.Now(), &err)

	if err = d.db.QueryRow(ctx, queryExistsCustomerWithEmail, email).Scan(&exists); err != nil {
		return false, d.translateDBError(ctx, err, "failed to check customer email")
	}
	return exists, nil
}

func (d *CustomerDao) ExistsCustomerWithID(ctx context.Context, id int64) (exists bool, err error) {
	defer observeQuery("ExistsCustomerWithID", time.Now(), &err)

	if err = d.db.QueryRow(ctx, queryExistsCustomerWithID, id).Scan(&exists); err != nil {
		return false, d.translateDBError(ctx, err, "failed to check customer id")
	}
	return exists, nil
}

func (d *CustomerDao) CountCustomers(ctx context.Context) (count int, err error) {
	defer observeQuery("CountCustomers", time.Now(), &err)

	var n int64
	if err = d.db.QueryRow(ctx, queryCountCustomers).Scan(&n); err != nil {
		return 0, d.translateDBError(ctx, err, "failed to count customers")
	}
	return int(n), nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var (
		c      customer.Customer
		age    int32
		gender string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &age, &gender); err != nil {
		return nil, err
	}
	c.Age = int(age)
	c.Gender = customer.Gender(gender)
	return &c, nil
}

// translateDBError turns a driver error into an application error. A unique
// violation on insert or update only happens when two writers race past the
// service's email check.
func (d *CustomerDao) translateDBError(ctx context.Context, err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			d.logger.WarnContext(ctx, "Database unique constraint violation", "constraint", pgErr.ConstraintName)
			return customer.NewEmailTakenError(err)
		}
		d.logger.ErrorContext(ctx, "PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message)
		return apperrors.WrapDatabaseError(err, fmt.Sprintf("%s: db error code %s", msg, pgErr.Code))
	}

	d.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	return apperrors.WrapDatabaseError(err, msg)
}

func observeQuery(name string, start time.Time, err *error) {
	status := queryStatusSuccess
	switch {
	case *err == nil:
	case errors.Is(*err, customer.ErrCustomerNotFound):
		status = queryStatusNotFound
	default:
		status = queryStatusError
	}
	monitoring.RecordDBQuery(name, status, time.Since(start))
}
