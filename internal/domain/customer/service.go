package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"pharmacy-customers/internal/config"
	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/event"
	"pharmacy-customers/internal/infrastructure/monitoring"
)

// ErrPhoneMismatch is returned by VerifyPhone when the supplied number does
// not equal the stored one.
var ErrPhoneMismatch = errors.New("phone number does not match the stored mobile number")

type CustomerService interface {
	CreateCustomer(ctx context.Context, in CreateInput) (*Customer, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, update ProfileUpdate) error
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
	VerifyEmail(ctx context.Context, email, updatedBy string) error
	VerifyPhone(ctx context.Context, email, phone, updatedBy string) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo         Repository
	resolver     pincode.Resolver
	pub          event.EventPublisher
	minimumAge   int
	defaultActor string
	logger       *slog.Logger
}

func NewCustomerService(repo Repository, resolver pincode.Resolver, pub event.EventPublisher, cfg config.CustomerConfig, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if resolver == nil {
		panic("pincode resolver cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}

	minimumAge := cfg.MinimumAge
	if minimumAge <= 0 {
		minimumAge = 18
	}
	defaultActor := cfg.DefaultActor
	if defaultActor == "" {
		defaultActor = DefaultActor
	}

	return &customerService{
		repo:         repo,
		resolver:     resolver,
		pub:          pub,
		minimumAge:   minimumAge,
		defaultActor: defaultActor,
		logger:       logger.With(slog.String("component", "customerService")),
	}
}

// CreateCustomer runs the ordered validation pipeline, enriches the first
// address and persists the new row as one write. The pipeline short-circuits
// on the first failing check; nothing is written on any failure.
func (s *customerService) CreateCustomer(ctx context.Context, in CreateInput) (*Customer, error) {
	logCtx := s.logger.With(slog.String("email", in.Email))
	logCtx.InfoContext(ctx, "Attempting to create new customer")

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	result, err := s.runCreatePipeline(ctx, in)
	if err != nil {
		return nil, err
	}
	logCtx.InfoContext(ctx, "Creation pipeline passed")

	first := NewEnrichedAddress(in.Addresses[0], result.pin)

	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = s.defaultActor
	}

	emailVerified := in.EmailVerified
	if emailVerified == "" {
		emailVerified = Unverified
	}
	phoneVerified := in.PhoneVerified
	if phoneVerified == "" {
		phoneVerified = Unverified
	}

	now := time.Now()
	cust := &Customer{
		CustomerID:    uuid.New(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		DOB:           result.dob,
		Email:         in.Email,
		MobileNo:      in.MobileNo,
		EmailVerified: emailVerified,
		PhoneVerified: phoneVerified,
		Addresses:     []Address{first},
		CreatedOn:     now,
		CreatedBy:     createdBy,
		UpdatedOn:     now,
		UpdatedBy:     createdBy,
		Password:      in.Password,
	}

	logCtx.InfoContext(ctx, "Calling repository Insert", slog.String("customerID", cust.CustomerID.String()))
	if err := s.repo.Insert(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to insert new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert new customer: %w", err)
	}

	monitoring.Business.CustomersCreatedTotal.Inc()

	created := event.CustomerCreatedEvent{
		Timestamp:  now,
		CustomerID: cust.CustomerID.String(),
		Email:      cust.Email,
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully created new customer", slog.String("customerID", cust.CustomerID.String()))
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerID", customerID.String()))
	logCtx.InfoContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository")
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

// UpdateProfile is the plain passthrough update. It only touches fields with
// no invariants attached; email, mobile, verification flags and addresses are
// changed exclusively through their dedicated operations.
func (s *customerService) UpdateProfile(ctx context.Context, customerID uuid.UUID, update ProfileUpdate) error {
	logCtx := s.logger.With(slog.String("customerID", customerID.String()))
	logCtx.InfoContext(ctx, "Attempting to update customer profile")

	if update.FirstName == nil && update.LastName == nil && update.Password == nil {
		logCtx.WarnContext(ctx, "Validation failed: no updatable fields supplied")
		return errors.New("no updatable fields supplied")
	}
	if update.UpdatedBy == "" {
		update.UpdatedBy = s.defaultActor
	}

	if err := s.repo.UpdateProfile(ctx, customerID, update); err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			return ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error updating profile", slog.Any("error", err))
		return fmt.Errorf("failed to update profile for customer %s: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully updated customer profile")
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	logCtx := s.logger.With(slog.String("customerID", customerID.String()))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for delete")
			return ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

// VerifyEmail flips the email verification flag to Y for the customer with
// the given email. Idempotent: a second call is a no-op that still succeeds.
func (s *customerService) VerifyEmail(ctx context.Context, email, updatedBy string) error {
	logCtx := s.logger.With(slog.String("email", email))
	logCtx.InfoContext(ctx, "Attempting to verify customer email")

	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by email for verification")
			return ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return fmt.Errorf("failed to find customer by email: %w", err)
	}

	if updatedBy == "" {
		updatedBy = s.defaultActor
	}
	if err := s.repo.SetEmailVerified(ctx, cust.CustomerID, updatedBy); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to set email verified flag", slog.Any("error", err))
		return fmt.Errorf("failed to verify email for customer %s: %w", cust.CustomerID, err)
	}

	monitoring.Business.VerificationsTotal.WithLabelValues("email").Inc()
	s.publishVerified(ctx, cust.CustomerID, "email")

	logCtx.InfoContext(ctx, "Successfully verified customer email")
	return nil
}

// VerifyPhone additionally requires the supplied number to equal the stored
// mobile number exactly.
func (s *customerService) VerifyPhone(ctx context.Context, email, phone, updatedBy string) error {
	logCtx := s.logger.With(slog.String("email", email))
	logCtx.InfoContext(ctx, "Attempting to verify customer phone")

	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by email for verification")
			return ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return fmt.Errorf("failed to find customer by email: %w", err)
	}

	if cust.MobileNo != phone {
		logCtx.WarnContext(ctx, "Supplied phone does not match stored mobile number")
		return ErrPhoneMismatch
	}

	if updatedBy == "" {
		updatedBy = s.defaultActor
	}
	if err := s.repo.SetPhoneVerified(ctx, cust.CustomerID, updatedBy); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to set phone verified flag", slog.Any("error", err))
		return fmt.Errorf("failed to verify phone for customer %s: %w", cust.CustomerID, err)
	}

	monitoring.Business.VerificationsTotal.WithLabelValues("phone").Inc()
	s.publishVerified(ctx, cust.CustomerID, "phone")

	logCtx.InfoContext(ctx, "Successfully verified customer phone")
	return nil
}

func (s *customerService) publishVerified(ctx context.Context, customerID uuid.UUID, channel string) {
	evt := event.ContactVerifiedEvent{
		Timestamp:  time.Now(),
		CustomerID: customerID.String(),
		Channel:    channel,
	}
	if err := s.pub.PublishContactVerified(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish contact verified event", slog.Any("error", err))
	}
}
