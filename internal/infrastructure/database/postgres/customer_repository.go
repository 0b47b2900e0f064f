package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmacy-customers/internal/domain/customer"
	"pharmacy-customers/internal/infrastructure/monitoring"
	"pharmacy-customers/internal/pkg/apperrors"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

const customerColumns = `customer_id, customer_first_name, customer_last_name, customer_dob,
               customer_email_id, customer_mobile_no, is_email_id_verified, is_phone_no_verified,
               customer_address, created_on, created_by, updated_on, updated_by, customer_password`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Insert(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("customerID", cust.CustomerID.String()))
	startTime := time.Now()

	addresses, err := json.Marshal(cust.Addresses)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal address collection: %w", apperrors.ErrInternalServer, err)
	}

	query := `
        INSERT INTO customer (customer_id, customer_first_name, customer_last_name, customer_dob,
               customer_email_id, customer_mobile_no, is_email_id_verified, is_phone_no_verified,
               customer_address, created_on, created_by, updated_on, updated_by, customer_password)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10, NOW(), $11, $12)
        RETURNING created_on, updated_on`

	err = r.db.QueryRow(ctx, query,
		cust.CustomerID,
		cust.FirstName,
		cust.LastName,
		cust.DOB,
		cust.Email,
		cust.MobileNo,
		cust.EmailVerified,
		cust.PhoneVerified,
		addresses,
		cust.CreatedBy,
		cust.UpdatedBy,
		cust.Password,
	).Scan(
		&cust.CreatedOn,
		&cust.UpdatedOn,
	)

	if err != nil {
		monitoring.RecordDBQuery("InsertCustomer", "error", time.Since(startTime))
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, customer.ErrDuplicateEmail) || errors.Is(translatedErr, customer.ErrDuplicateMobile) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("InsertCustomer", "success", time.Since(startTime))
	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.String("customerID", cust.CustomerID.String()))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by ID")

	query := `
        SELECT ` + customerColumns + `
        FROM customer
        WHERE customer_id = $1`

	return r.queryOne(ctx, query, customerID)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by email")

	query := `
        SELECT ` + customerColumns + `
        FROM customer
        WHERE customer_email_id = $1`

	return r.queryOne(ctx, query, email)
}

func (r *CustomerRepository) FindByMobile(ctx context.Context, mobileNo string) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by mobile number")

	query := `
        SELECT ` + customerColumns + `
        FROM customer
        WHERE customer_mobile_no = $1`

	return r.queryOne(ctx, query, mobileNo)
}

func (r *CustomerRepository) queryOne(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var (
		cust      customer.Customer
		addresses []byte
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.DOB,
		&cust.Email,
		&cust.MobileNo,
		&cust.EmailVerified,
		&cust.PhoneVerified,
		&addresses,
		&cust.CreatedOn,
		&cust.CreatedBy,
		&cust.UpdatedOn,
		&cust.UpdatedBy,
		&cust.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found")
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer: %w", apperrors.ErrDatabase, err)
	}

	if err := unmarshalAddresses(addresses, &cust); err != nil {
		r.logger.ErrorContext(ctx, "Failed to unmarshal stored address collection", slog.Any("error", err))
		return nil, err
	}

	return &cust, nil
}

// unmarshalAddresses treats an absent or null stored value as an empty
// collection.
func unmarshalAddresses(raw []byte, cust *customer.Customer) error {
	if len(raw) == 0 || string(raw) == "null" {
		cust.Addresses = []customer.Address{}
		return nil
	}
	if err := json.Unmarshal(raw, &cust.Addresses); err != nil {
		return fmt.Errorf("%w: corrupt address collection: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find all customers")

	query := `
        SELECT ` + customerColumns + `
        FROM customer
        ORDER BY created_on ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var (
			cust      customer.Customer
			addresses []byte
		)
		err := rows.Scan(
			&cust.CustomerID,
			&cust.FirstName,
			&cust.LastName,
			&cust.DOB,
			&cust.Email,
			&cust.MobileNo,
			&cust.EmailVerified,
			&cust.PhoneVerified,
			&addresses,
			&cust.CreatedOn,
			&cust.CreatedBy,
			&cust.UpdatedOn,
			&cust.UpdatedBy,
			&cust.Password,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		if err := unmarshalAddresses(addresses, &cust); err != nil {
			r.logger.ErrorContext(ctx, "Failed to unmarshal stored address collection", slog.Any("error", err))
			return nil, err
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) UpdateProfile(ctx context.Context, customerID uuid.UUID, update customer.ProfileUpdate) error {
	r.logger.InfoContext(ctx, "Attempting to update customer profile")

	set := []string{}
	args := []any{}
	idx := 1
	if update.FirstName != nil {
		set = append(set, "customer_first_name = $"+strconv.Itoa(idx))
		args = append(args, *update.FirstName)
		idx++
	}
	if update.LastName != nil {
		set = append(set, "customer_last_name = $"+strconv.Itoa(idx))
		args = append(args, *update.LastName)
		idx++
	}
	if update.Password != nil {
		set = append(set, "customer_password = $"+strconv.Itoa(idx))
		args = append(args, *update.Password)
		idx++
	}
	if len(set) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrInvalidArgument)
	}

	set = append(set, "updated_on = NOW()", "updated_by = $"+strconv.Itoa(idx))
	args = append(args, update.UpdatedBy, customerID)

	query := "UPDATE customer SET " + strings.Join(set, ", ") +
		" WHERE customer_id = $" + strconv.Itoa(idx+1)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer profile", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer profile: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer profile updated successfully")
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customer WHERE customer_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

// SaveAddresses replaces the stored address collection in one write.
func (r *CustomerRepository) SaveAddresses(ctx context.Context, customerID uuid.UUID, addresses []customer.Address, updatedBy string) error {
	r.logger.InfoContext(ctx, "Attempting to save address collection", slog.Int("count", len(addresses)))
	startTime := time.Now()

	payload, err := json.Marshal(addresses)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal address collection: %w", apperrors.ErrInternalServer, err)
	}

	query := `UPDATE customer SET customer_address = $1, updated_on = NOW(), updated_by = $2 WHERE customer_id = $3`

	cmdTag, err := r.db.Exec(ctx, query, payload, updatedBy, customerID)
	if err != nil {
		monitoring.RecordDBQuery("SaveAddresses", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to save address collection", slog.Any("error", err))
		return fmt.Errorf("%w: failed to save address collection: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		monitoring.RecordDBQuery("SaveAddresses", "not_found", time.Since(startTime))
		r.logger.WarnContext(ctx, "Save addresses affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	monitoring.RecordDBQuery("SaveAddresses", "success", time.Since(startTime))
	r.logger.InfoContext(ctx, "Address collection saved successfully")
	return nil
}

func (r *CustomerRepository) SetEmailVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	return r.setVerified(ctx, "is_email_id_verified", customerID, updatedBy)
}

func (r *CustomerRepository) SetPhoneVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	return r.setVerified(ctx, "is_phone_no_verified", customerID, updatedBy)
}

func (r *CustomerRepository) setVerified(ctx context.Context, column string, customerID uuid.UUID, updatedBy string) error {
	r.logger.InfoContext(ctx, "Attempting to set verification flag", slog.String("column", column))

	query := `UPDATE customer SET ` + column + ` = 'Y', updated_on = NOW(), updated_by = $1 WHERE customer_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, updatedBy, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to set verification flag", slog.Any("error", err))
		return fmt.Errorf("%w: failed to set verification flag: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Verification update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Verification flag set successfully")
	return nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return customer.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return customer.ErrDuplicateEmail
			case strings.Contains(pgErr.ConstraintName, "mobile"):
				return customer.ErrDuplicateMobile
			}
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return apperrors.WrapDatabaseError(err, fmt.Sprintf("db error code %s", pgErr.Code))
	}

	contextLogger.Error("Generic database error", "error", err)
	return apperrors.WrapDatabaseError(err, "unexpected database error")
}
