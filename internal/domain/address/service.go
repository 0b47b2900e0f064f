package address

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pharmacy-customers/internal/domain/customer"
	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/event"
	"pharmacy-customers/internal/infrastructure/monitoring"
)

// AddressService owns the invariant-preserving operations on a customer's
// embedded address collection. Operations are keyed by email, not by primary
// key; this asymmetry is part of the public contract.
type AddressService interface {
	AddAddress(ctx context.Context, email string, in customer.AddressInput, updatedBy string) (*customer.Customer, error)
	RemoveAddress(ctx context.Context, email, nickName, updatedBy string) (*customer.Customer, error)
}

var _ AddressService = (*addressService)(nil)

type addressService struct {
	repo     customer.Repository
	resolver pincode.Resolver
	pub      event.EventPublisher
	logger   *slog.Logger
}

func NewAddressService(repo customer.Repository, resolver pincode.Resolver, pub event.EventPublisher, logger *slog.Logger) AddressService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if resolver == nil {
		panic("pincode resolver cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &addressService{
		repo:     repo,
		resolver: resolver,
		pub:      pub,
		logger:   logger.With(slog.String("component", "addressService")),
	}
}

// AddAddress appends one enriched entry to the customer's collection. Checks
// run in order: customer lookup, capacity, nickname uniqueness, pincode
// resolution. The whole updated collection is persisted in a single write;
// any rejection leaves the stored collection untouched.
func (s *addressService) AddAddress(ctx context.Context, email string, in customer.AddressInput, updatedBy string) (*customer.Customer, error) {
	logCtx := s.logger.With(slog.String("email", email), slog.String("nickName", in.NickName))
	logCtx.InfoContext(ctx, "Attempting to add address")

	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by email")
			return nil, customer.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}

	if len(cust.Addresses) >= customer.MaxAddresses {
		logCtx.WarnContext(ctx, "Address capacity reached", slog.Int("count", len(cust.Addresses)))
		return nil, customer.ErrAddressLimitReached
	}
	if cust.HasNickname(in.NickName) {
		logCtx.WarnContext(ctx, "Address nickname already in use")
		return nil, customer.ErrNicknameTaken
	}

	pin, err := s.resolver.Resolve(ctx, in.Pincode)
	if err != nil {
		if errors.Is(err, pincode.ErrNotFound) {
			logCtx.WarnContext(ctx, "Pincode has no entry in the reference table", slog.String("pincode", in.Pincode))
			return nil, pincode.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Failed to resolve pincode", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve pincode %s: %w", in.Pincode, err)
	}

	entry := customer.NewEnrichedAddress(in, pin)
	if err := cust.AppendAddress(entry); err != nil {
		return nil, err
	}
	cust.Touch(updatedBy, time.Now())

	logCtx.InfoContext(ctx, "Calling repository SaveAddresses", slog.Int("count", len(cust.Addresses)))
	if err := s.repo.SaveAddresses(ctx, cust.CustomerID, cust.Addresses, cust.UpdatedBy); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save address collection", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save addresses for customer %s: %w", cust.CustomerID, err)
	}

	monitoring.Business.AddressesAddedTotal.Inc()
	s.publishChange(ctx, cust, in.NickName, true)

	logCtx.InfoContext(ctx, "Successfully added address")
	return cust, nil
}

// RemoveAddress drops every entry matching the nickname. When nothing
// matches, no write is performed and ErrNicknameNotFound is returned.
func (s *addressService) RemoveAddress(ctx context.Context, email, nickName, updatedBy string) (*customer.Customer, error) {
	logCtx := s.logger.With(slog.String("email", email), slog.String("nickName", nickName))
	logCtx.InfoContext(ctx, "Attempting to remove address")

	cust, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by email")
			return nil, customer.ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}

	removed := cust.RemoveAddresses(nickName)
	if removed == 0 {
		logCtx.WarnContext(ctx, "No address matched the given nickname")
		return nil, customer.ErrNicknameNotFound
	}
	cust.Touch(updatedBy, time.Now())

	logCtx.InfoContext(ctx, "Calling repository SaveAddresses", slog.Int("removed", removed), slog.Int("remaining", len(cust.Addresses)))
	if err := s.repo.SaveAddresses(ctx, cust.CustomerID, cust.Addresses, cust.UpdatedBy); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save address collection", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save addresses for customer %s: %w", cust.CustomerID, err)
	}

	monitoring.Business.AddressesRemovedTotal.Inc()
	s.publishChange(ctx, cust, nickName, false)

	logCtx.InfoContext(ctx, "Successfully removed address", slog.Int("removed", removed))
	return cust, nil
}

func (s *addressService) publishChange(ctx context.Context, cust *customer.Customer, nickName string, added bool) {
	evt := event.AddressChangedEvent{
		Timestamp:    time.Now(),
		CustomerID:   cust.CustomerID.String(),
		NickName:     nickName,
		AddressCount: len(cust.Addresses),
	}
	var err error
	if added {
		err = s.pub.PublishAddressAdded(ctx, evt)
	} else {
		err = s.pub.PublishAddressRemoved(ctx, evt)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish address change event", slog.Any("error", err))
	}
}
