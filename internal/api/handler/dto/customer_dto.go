package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pharmacy-customers/internal/domain/customer"
)

const dobLayout = "2006-01-02"

// AddressRequest is the user-supplied address shape. Enrichment fields are
// never accepted from the caller; they are resolved at write time.
type AddressRequest struct {
	City         string           `json:"address_city"`
	State        string           `json:"address_state"`
	Pincode      string           `json:"pincode"`
	AddressLine1 string           `json:"address_line_1"`
	AddressLine2 string           `json:"address_line_2,omitempty"`
	NickName     string           `json:"address_nick_name"`
	IsDefault    bool             `json:"is_default_address"`
	Latitude     *decimal.Decimal `json:"latitude,omitempty"`
	Longitude    *decimal.Decimal `json:"longitude,omitempty"`
}

func (r *AddressRequest) ToInput() customer.AddressInput {
	return customer.AddressInput{
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		NickName:     r.NickName,
		IsDefault:    r.IsDefault,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

type CreateCustomerRequest struct {
	FirstName     string           `json:"customer_first_name"`
	LastName      string           `json:"customer_last_name"`
	DOB           string           `json:"customer_dob"`
	Email         string           `json:"customer_email_id"`
	MobileNo      string           `json:"customer_mobile_no"`
	EmailVerified string           `json:"is_email_id_verified"`
	PhoneVerified string           `json:"is_phone_no_verified"`
	Addresses     []AddressRequest `json:"customer_address"`
	CreatedBy     string           `json:"created_by,omitempty"`
	Password      *string          `json:"customer_password,omitempty"`
}

// Validate performs the shape-level checks; the ordered business checks run
// in the service pipeline.
func (r *CreateCustomerRequest) Validate() error {
	missing := []string{}
	if strings.TrimSpace(r.FirstName) == "" {
		missing = append(missing, "customer_first_name")
	}
	if strings.TrimSpace(r.LastName) == "" {
		missing = append(missing, "customer_last_name")
	}
	if r.DOB == "" {
		missing = append(missing, "customer_dob")
	}
	if r.Email == "" {
		missing = append(missing, "customer_email_id")
	}
	if r.MobileNo == "" {
		missing = append(missing, "customer_mobile_no")
	}
	if len(missing) > 0 {
		return fmt.Errorf("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if r.EmailVerified != "" && r.EmailVerified != customer.Verified && r.EmailVerified != customer.Unverified {
		return fmt.Errorf(`is_email_id_verified must be either "Y" or "N"`)
	}
	if r.PhoneVerified != "" && r.PhoneVerified != customer.Verified && r.PhoneVerified != customer.Unverified {
		return fmt.Errorf(`is_phone_no_verified must be either "Y" or "N"`)
	}
	return nil
}

func (r *CreateCustomerRequest) ToInput() customer.CreateInput {
	addresses := make([]customer.AddressInput, len(r.Addresses))
	for i := range r.Addresses {
		addresses[i] = r.Addresses[i].ToInput()
	}
	return customer.CreateInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		DOB:           r.DOB,
		Email:         r.Email,
		MobileNo:      r.MobileNo,
		EmailVerified: r.EmailVerified,
		PhoneVerified: r.PhoneVerified,
		Addresses:     addresses,
		CreatedBy:     r.CreatedBy,
		Password:      r.Password,
	}
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"customer_first_name,omitempty"`
	LastName  *string `json:"customer_last_name,omitempty"`
	Password  *string `json:"customer_password,omitempty"`
	UpdatedBy string  `json:"updated_by,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.FirstName == nil && r.LastName == nil && r.Password == nil {
		return fmt.Errorf("at least one updatable field is required")
	}
	return nil
}

type VerifyEmailRequest struct {
	Email     string `json:"customer_email_id"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

func (r *VerifyEmailRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("customer_email_id is required")
	}
	return nil
}

type VerifyPhoneRequest struct {
	Email     string `json:"customer_email_id"`
	Phone     string `json:"customer_mobile_no"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

func (r *VerifyPhoneRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("customer_email_id is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("customer_mobile_no is required")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID    string             `json:"customer_id"`
	FirstName     string             `json:"customer_first_name"`
	LastName      string             `json:"customer_last_name"`
	DOB           string             `json:"customer_dob"`
	Email         string             `json:"customer_email_id"`
	MobileNo      string             `json:"customer_mobile_no"`
	EmailVerified string             `json:"is_email_id_verified"`
	PhoneVerified string             `json:"is_phone_no_verified"`
	Addresses     []customer.Address `json:"customer_address"`
	CreatedOn     time.Time          `json:"created_on"`
	CreatedBy     string             `json:"created_by"`
	UpdatedOn     time.Time          `json:"updated_on"`
	UpdatedBy     string             `json:"updated_by"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID:    cust.CustomerID.String(),
		FirstName:     cust.FirstName,
		LastName:      cust.LastName,
		DOB:           cust.DOB.Format(dobLayout),
		Email:         cust.Email,
		MobileNo:      cust.MobileNo,
		EmailVerified: cust.EmailVerified,
		PhoneVerified: cust.PhoneVerified,
		Addresses:     cust.Addresses,
		CreatedOn:     cust.CreatedOn,
		CreatedBy:     cust.CreatedBy,
		UpdatedOn:     cust.UpdatedOn,
		UpdatedBy:     cust.UpdatedBy,
	}
}

type CreateCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Message    string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
