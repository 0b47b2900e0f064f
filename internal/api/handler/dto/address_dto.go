package dto

import "fmt"

type AddAddressRequest struct {
	Email     string         `json:"customer_email_id"`
	Address   AddressRequest `json:"address"`
	UpdatedBy string         `json:"updated_by,omitempty"`
}

func (r *AddAddressRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("customer_email_id is required")
	}
	if r.Address.Pincode == "" {
		return fmt.Errorf("pincode is required")
	}
	return nil
}

type DeleteAddressRequest struct {
	Email     string `json:"customer_email_id"`
	NickName  string `json:"address_nick_name"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

func (r *DeleteAddressRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("customer_email_id is required")
	}
	if r.NickName == "" {
		return fmt.Errorf("address_nick_name is required")
	}
	return nil
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
