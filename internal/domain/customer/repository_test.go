package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/event"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Insert(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, cust)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {

		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, string) *Customer); ok {
		r0 = rf(ctx, email)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindByMobile(ctx context.Context, mobileNo string) (*Customer, error) {
	ret := _m.Called(ctx, mobileNo)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, string) *Customer); ok {
		r0 = rf(ctx, mobileNo)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, mobileNo)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if rf, ok := ret.Get(0).(func(context.Context) []*Customer); ok {
		r0 = rf(ctx)
	} else {

		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) UpdateProfile(ctx context.Context, customerID uuid.UUID, update ProfileUpdate) error {
	ret := _m.Called(ctx, customerID, update)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, ProfileUpdate) error); ok {
		r0 = rf(ctx, customerID, update)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	ret := _m.Called(ctx, customerID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) SaveAddresses(ctx context.Context, customerID uuid.UUID, addresses []Address, updatedBy string) error {
	ret := _m.Called(ctx, customerID, addresses, updatedBy)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []Address, string) error); ok {
		r0 = rf(ctx, customerID, addresses, updatedBy)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) SetEmailVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	ret := _m.Called(ctx, customerID, updatedBy)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, customerID, updatedBy)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) SetPhoneVerified(ctx context.Context, customerID uuid.UUID, updatedBy string) error {
	ret := _m.Called(ctx, customerID, updatedBy)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, customerID, updatedBy)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

type MockPincodeResolver struct {
	mock.Mock
}

func (_m *MockPincodeResolver) Resolve(ctx context.Context, code string) (*pincode.Pincode, error) {
	ret := _m.Called(ctx, code)

	var r0 *pincode.Pincode
	if rf, ok := ret.Get(0).(func(context.Context, string) *pincode.Pincode); ok {
		r0 = rf(ctx, code)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*pincode.Pincode)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, code)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishContactVerified(ctx context.Context, evt event.ContactVerifiedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishAddressAdded(ctx context.Context, evt event.AddressChangedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishAddressRemoved(ctx context.Context, evt event.AddressChangedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}
