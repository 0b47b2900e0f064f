package customer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/infrastructure/monitoring"
	"pharmacy-customers/internal/pkg/apperrors"
)

const dobLayout = "2006-01-02"

var (
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

const (
	msgAddressRequired = "address required"
	msgPincodeRequired = "pincode required"
	msgDOBFormat       = "customer_dob must be in YYYY-MM-DD format"
	msgEmailFormat     = "Invalid email format"
	msgEmailExists     = "Email_Id already exists"
	msgMobileFormat    = "Mobile number must be 10 digits long"
	msgMobileExists    = "Phone_No already exists"
	msgInvalidPincode  = "Invalid Pincode"
)

// CreateInput is the validated-at-the-edge payload for customer creation. DOB
// stays a wire string until the pipeline parses it.
type CreateInput struct {
	FirstName     string
	LastName      string
	DOB           string
	Email         string
	MobileNo      string
	EmailVerified string
	PhoneVerified string
	Addresses     []AddressInput
	CreatedBy     string
	Password      *string
}

// createValidation is the outcome of a fully passed pipeline: the parsed
// scalars and the enrichment row for the first address.
type createValidation struct {
	dob time.Time
	pin *pincode.Pincode
}

// runCreatePipeline executes the creation checks in their fixed order and
// stops at the first failure. Uniqueness checks are read-then-act and are
// backstopped by the store's unique constraints.
func (s *customerService) runCreatePipeline(ctx context.Context, in CreateInput) (*createValidation, error) {
	if len(in.Addresses) == 0 {
		return nil, s.rejectCreate(ctx, "address_shape", "customer_address", msgAddressRequired)
	}

	code := in.Addresses[0].Pincode
	if code == "" {
		return nil, s.rejectCreate(ctx, "pincode_presence", "pincode", msgPincodeRequired)
	}

	dob, err := time.Parse(dobLayout, in.DOB)
	if err != nil {
		return nil, s.rejectCreate(ctx, "dob_format", "customer_dob", msgDOBFormat)
	}

	if age := (&Customer{DOB: dob}).Age(time.Now()); age < s.minimumAge {
		msg := fmt.Sprintf("Customer must be at least %d years old", s.minimumAge)
		return nil, s.rejectCreate(ctx, "age_floor", "customer_dob", msg)
	}

	if !emailPattern.MatchString(in.Email) {
		return nil, s.rejectCreate(ctx, "email_format", "customer_email_id", msgEmailFormat)
	}

	if err := s.checkEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	if !mobilePattern.MatchString(in.MobileNo) {
		return nil, s.rejectCreate(ctx, "mobile_format", "customer_mobile_no", msgMobileFormat)
	}

	if err := s.checkMobileFree(ctx, in.MobileNo); err != nil {
		return nil, err
	}

	pin, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, pincode.ErrNotFound) {
			return nil, s.rejectCreate(ctx, "pincode_lookup", "pincode", msgInvalidPincode)
		}
		return nil, fmt.Errorf("failed to resolve pincode %s: %w", code, err)
	}

	return &createValidation{dob: dob, pin: pin}, nil
}

func (s *customerService) rejectCreate(ctx context.Context, check, field, message string) error {
	monitoring.Business.ValidationFailuresVec.WithLabelValues(check).Inc()
	s.logger.WarnContext(ctx, "Customer creation rejected", "check", check, "reason", message)
	return apperrors.NewValidationError(field, message)
}

func (s *customerService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return s.rejectCreate(ctx, "email_uniqueness", "customer_email_id", msgEmailExists)
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return nil
}

func (s *customerService) checkMobileFree(ctx context.Context, mobileNo string) error {
	_, err := s.repo.FindByMobile(ctx, mobileNo)
	if err == nil {
		return s.rejectCreate(ctx, "mobile_uniqueness", "customer_mobile_no", msgMobileExists)
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check mobile uniqueness: %w", err)
	}
	return nil
}
