package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateEmail = errors.New("email already registered to another customer")

	ErrDuplicateMobile = errors.New("mobile number already registered to another customer")
)

// ProfileUpdate carries the invariant-free fields the plain update endpoint
// may change. Email, mobile, verification flags and addresses never travel
// through this path.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
	UpdatedBy string
}

type Repository interface {
	Insert(ctx context.Context, cust *Customer) error

	FindByID(ctx context.Context, customerID uuid.UUID) (*Customer, error)

	FindByEmail(ctx context.Context, email string) (*Customer, error)

	FindByMobile(ctx context.Context, mobileNo string) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	UpdateProfile(ctx context.Context, customerID uuid.UUID, update ProfileUpdate) error

	Delete(ctx context.Context, customerID uuid.UUID) error

	// SaveAddresses persists the full address collection of one customer as a
	// single write and stamps the audit fields.
	SaveAddresses(ctx context.Context, customerID uuid.UUID, addresses []Address, updatedBy string) error

	SetEmailVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error

	SetPhoneVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error
}
