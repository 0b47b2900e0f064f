package dto_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy-customers/internal/api/handler/dto"
	"pharmacy-customers/internal/domain/customer"
)

func validRequest() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		DOB:       "2000-01-01",
		Email:     "a@b.com",
		MobileNo:  "9876543210",
		Addresses: []dto.AddressRequest{{
			City:    "Bangalore",
			State:   "Karnataka",
			Pincode: "560001",
		}},
	}
}

func TestCreateCustomerRequest_Validate(t *testing.T) {
	t.Run("Valid request passes", func(t *testing.T) {
		req := validRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("Missing fields are all named", func(t *testing.T) {
		req := dto.CreateCustomerRequest{}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required fields")
		assert.Contains(t, err.Error(), "customer_first_name")
		assert.Contains(t, err.Error(), "customer_dob")
		assert.Contains(t, err.Error(), "customer_email_id")
		assert.Contains(t, err.Error(), "customer_mobile_no")
	})

	t.Run("Whitespace-only name counts as missing", func(t *testing.T) {
		req := validRequest()
		req.FirstName = "   "
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer_first_name")
	})

	t.Run("Verification flags must be Y or N", func(t *testing.T) {
		req := validRequest()
		req.EmailVerified = "true"
		assert.Error(t, req.Validate())

		req = validRequest()
		req.PhoneVerified = "yes"
		assert.Error(t, req.Validate())

		req = validRequest()
		req.EmailVerified = customer.Verified
		req.PhoneVerified = customer.Unverified
		assert.NoError(t, req.Validate())
	})
}

func TestCreateCustomerRequest_ToInput(t *testing.T) {
	req := validRequest()
	req.CreatedBy = "importer"

	in := req.ToInput()

	assert.Equal(t, "Asha", in.FirstName)
	assert.Equal(t, "2000-01-01", in.DOB)
	assert.Equal(t, "importer", in.CreatedBy)
	require.Len(t, in.Addresses, 1)
	assert.Equal(t, "560001", in.Addresses[0].Pincode)
	assert.Equal(t, "Bangalore", in.Addresses[0].City)
}

func TestUpdateCustomerRequest_Validate(t *testing.T) {
	firstName := "Asha"

	req := dto.UpdateCustomerRequest{}
	assert.Error(t, req.Validate())

	req = dto.UpdateCustomerRequest{FirstName: &firstName}
	assert.NoError(t, req.Validate())
}

func TestVerifyRequests_Validate(t *testing.T) {
	assert.Error(t, (&dto.VerifyEmailRequest{}).Validate())
	assert.NoError(t, (&dto.VerifyEmailRequest{Email: "a@b.com"}).Validate())

	assert.Error(t, (&dto.VerifyPhoneRequest{}).Validate())
	assert.Error(t, (&dto.VerifyPhoneRequest{Email: "a@b.com"}).Validate())
	assert.NoError(t, (&dto.VerifyPhoneRequest{Email: "a@b.com", Phone: "9876543210"}).Validate())
}

func TestAddAddressRequest_Validate(t *testing.T) {
	req := dto.AddAddressRequest{}
	assert.Error(t, req.Validate())

	req = dto.AddAddressRequest{Email: "a@b.com"}
	assert.Error(t, req.Validate(), "pincode is required")

	req = dto.AddAddressRequest{Email: "a@b.com", Address: dto.AddressRequest{Pincode: "560001"}}
	assert.NoError(t, req.Validate())
}

func TestDeleteAddressRequest_Validate(t *testing.T) {
	req := dto.DeleteAddressRequest{}
	assert.Error(t, req.Validate())

	req = dto.DeleteAddressRequest{Email: "a@b.com"}
	assert.Error(t, req.Validate())

	req = dto.DeleteAddressRequest{Email: "a@b.com", NickName: "Home"}
	assert.NoError(t, req.Validate())
}

func TestNewCustomerResponse(t *testing.T) {
	cust := &customer.Customer{
		CustomerID:    uuid.New(),
		FirstName:     "Asha",
		DOB:           time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:         "a@b.com",
		EmailVerified: customer.Verified,
		Addresses:     []customer.Address{{NickName: "Home"}},
	}

	resp := dto.NewCustomerResponse(cust)

	assert.Equal(t, cust.CustomerID.String(), resp.CustomerID)
	assert.Equal(t, "2000-01-01", resp.DOB, "date of birth is formatted without a time component")
	assert.Equal(t, customer.Verified, resp.EmailVerified)
	require.Len(t, resp.Addresses, 1)

	assert.Equal(t, dto.CustomerResponse{}, dto.NewCustomerResponse(nil))
}
