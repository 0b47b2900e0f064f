package address_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmacy-customers/internal/domain/address"
	"pharmacy-customers/internal/domain/customer"
	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/event"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Insert(ctx context.Context, cust *customer.Customer) error {
	return m.Called(ctx, cust).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	ret := m.Called(ctx, customerID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*customer.Customer), ret.Error(1)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	ret := m.Called(ctx, email)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*customer.Customer), ret.Error(1)
}

func (m *mockRepository) FindByMobile(ctx context.Context, mobileNo string) (*customer.Customer, error) {
	ret := m.Called(ctx, mobileNo)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*customer.Customer), ret.Error(1)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]*customer.Customer), ret.Error(1)
}

func (m *mockRepository) UpdateProfile(ctx context.Context, customerID uuid.UUID, update customer.ProfileUpdate) error {
	return m.Called(ctx, customerID, update).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *mockRepository) SaveAddresses(ctx context.Context, customerID uuid.UUID, addresses []customer.Address, updatedBy string) error {
	return m.Called(ctx, customerID, addresses, updatedBy).Error(0)
}

func (m *mockRepository) SetEmailVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	return m.Called(ctx, customerID, updatedBy).Error(0)
}

func (m *mockRepository) SetPhoneVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	return m.Called(ctx, customerID, updatedBy).Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, code string) (*pincode.Pincode, error) {
	ret := m.Called(ctx, code)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*pincode.Pincode), ret.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockPublisher) PublishContactVerified(ctx context.Context, evt event.ContactVerifiedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockPublisher) PublishAddressAdded(ctx context.Context, evt event.AddressChangedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockPublisher) PublishAddressRemoved(ctx context.Context, evt event.AddressChangedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func setupTest() (*mockRepository, *mockResolver, *mockPublisher, address.AddressService) {
	repo := new(mockRepository)
	resolver := new(mockResolver)
	pub := new(mockPublisher)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := address.NewAddressService(repo, resolver, pub, logger)
	return repo, resolver, pub, service
}

func storedCustomer(addresses ...customer.Address) *customer.Customer {
	return &customer.Customer{
		CustomerID: uuid.New(),
		Email:      "a@b.com",
		MobileNo:   "9876543210",
		Addresses:  addresses,
	}
}

func validInput(nick string) customer.AddressInput {
	return customer.AddressInput{
		City:         "Bangalore",
		State:        "Karnataka",
		Pincode:      "560001",
		AddressLine1: "1 MG Road",
		NickName:     nick,
	}
}

func bangalorePincode() *pincode.Pincode {
	return &pincode.Pincode{
		Code:     "560001",
		Division: "Bangalore East",
		Region:   "Bangalore HQ",
		Circle:   "Karnataka",
		State:    "Karnataka",
	}
}

func TestAddressService_AddAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, resolver, pub, service := setupTest()
		cust := storedCustomer(customer.Address{NickName: "Home"})

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		resolver.On("Resolve", ctx, "560001").Return(bangalorePincode(), nil).Once()
		repo.On("SaveAddresses", ctx, cust.CustomerID, mock.MatchedBy(func(addrs []customer.Address) bool {
			return len(addrs) == 2 && addrs[0].NickName == "Home" && addrs[1].NickName == "Office"
		}), "admin").Return(nil).Once()
		pub.On("PublishAddressAdded", ctx, mock.AnythingOfType("event.AddressChangedEvent")).Return(nil).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Office"), "admin")

		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Len(t, updated.Addresses, 2)
		assert.Equal(t, "Karnataka", updated.Addresses[1].CircleName)
		assert.Equal(t, "Bangalore", updated.Addresses[1].District)
		assert.Equal(t, "admin", updated.UpdatedBy)
		repo.AssertExpectations(t)
		resolver.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("Error - Unknown email", func(t *testing.T) {
		repo, resolver, _, service := setupTest()

		repo.On("FindByEmail", ctx, "x@y.com").Return(nil, customer.ErrNotFound).Once()

		updated, err := service.AddAddress(ctx, "x@y.com", validInput("Office"), "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrNotFound)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("Error - Collection at capacity", func(t *testing.T) {
		repo, resolver, _, service := setupTest()
		full := make([]customer.Address, 0, customer.MaxAddresses)
		for i := 0; i < customer.MaxAddresses; i++ {
			full = append(full, customer.Address{NickName: string(rune('A' + i))})
		}
		cust := storedCustomer(full...)

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Sixth"), "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrAddressLimitReached)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SaveAddresses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Duplicate nickname", func(t *testing.T) {
		repo, resolver, _, service := setupTest()
		cust := storedCustomer(customer.Address{NickName: "Home"})

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Home"), "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrNicknameTaken)
		assert.Len(t, cust.Addresses, 1, "stored collection must stay untouched")
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("Error - Unknown pincode", func(t *testing.T) {
		repo, resolver, _, service := setupTest()
		cust := storedCustomer()

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		resolver.On("Resolve", ctx, "560001").Return(nil, pincode.ErrNotFound).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Office"), "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, pincode.ErrNotFound)
		repo.AssertNotCalled(t, "SaveAddresses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Repository save failure", func(t *testing.T) {
		repo, resolver, _, service := setupTest()
		cust := storedCustomer()
		dbError := errors.New("database connection failed")

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		resolver.On("Resolve", ctx, "560001").Return(bangalorePincode(), nil).Once()
		repo.On("SaveAddresses", ctx, cust.CustomerID, mock.Anything, "admin").Return(dbError).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Office"), "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, dbError)
	})

	t.Run("Publish failure does not fail the add", func(t *testing.T) {
		repo, resolver, pub, service := setupTest()
		cust := storedCustomer()

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		resolver.On("Resolve", ctx, "560001").Return(bangalorePincode(), nil).Once()
		repo.On("SaveAddresses", ctx, cust.CustomerID, mock.Anything, "admin").Return(nil).Once()
		pub.On("PublishAddressAdded", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		updated, err := service.AddAddress(ctx, "a@b.com", validInput("Office"), "admin")

		assert.NoError(t, err)
		assert.NotNil(t, updated)
	})
}

func TestAddressService_RemoveAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, _, pub, service := setupTest()
		cust := storedCustomer(
			customer.Address{NickName: "Home"},
			customer.Address{NickName: "Office"},
		)

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		repo.On("SaveAddresses", ctx, cust.CustomerID, mock.MatchedBy(func(addrs []customer.Address) bool {
			return len(addrs) == 1 && addrs[0].NickName == "Office"
		}), "admin").Return(nil).Once()
		pub.On("PublishAddressRemoved", ctx, mock.AnythingOfType("event.AddressChangedEvent")).Return(nil).Once()

		updated, err := service.RemoveAddress(ctx, "a@b.com", "Home", "admin")

		require.NoError(t, err)
		require.Len(t, updated.Addresses, 1)
		assert.Equal(t, "Office", updated.Addresses[0].NickName)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("Removes every entry matching the nickname", func(t *testing.T) {
		repo, _, pub, service := setupTest()
		cust := storedCustomer(
			customer.Address{NickName: "Home", City: "Bangalore"},
			customer.Address{NickName: "Office"},
			customer.Address{NickName: "Home", City: "Mysore"},
		)

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()
		repo.On("SaveAddresses", ctx, cust.CustomerID, mock.MatchedBy(func(addrs []customer.Address) bool {
			return len(addrs) == 1 && addrs[0].NickName == "Office"
		}), "admin").Return(nil).Once()
		pub.On("PublishAddressRemoved", ctx, mock.Anything).Return(nil).Once()

		updated, err := service.RemoveAddress(ctx, "a@b.com", "Home", "admin")

		require.NoError(t, err)
		assert.Len(t, updated.Addresses, 1)
	})

	t.Run("Error - Nickname not found performs no write", func(t *testing.T) {
		repo, _, _, service := setupTest()
		cust := storedCustomer(customer.Address{NickName: "Home"})

		repo.On("FindByEmail", ctx, "a@b.com").Return(cust, nil).Once()

		updated, err := service.RemoveAddress(ctx, "a@b.com", "Office", "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrNicknameNotFound)
		repo.AssertNotCalled(t, "SaveAddresses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Unknown email", func(t *testing.T) {
		repo, _, _, service := setupTest()

		repo.On("FindByEmail", ctx, "x@y.com").Return(nil, customer.ErrNotFound).Once()

		updated, err := service.RemoveAddress(ctx, "x@y.com", "Home", "admin")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, customer.ErrNotFound)
	})
}
