package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmacy-customers/internal/domain/pincode"
)

const (
	Verified   = "Y"
	Unverified = "N"

	// DefaultActor stamps audit fields when the caller supplies no actor.
	DefaultActor = "System"

	// MaxAddresses bounds the embedded address collection per customer.
	MaxAddresses = 5
)

var (
	ErrAddressLimitReached = errors.New("maximum of 5 addresses allowed")

	ErrNicknameTaken = errors.New("address nickname already in use")

	ErrNicknameNotFound = errors.New("address nickname not found")
)

// Address is one entry of a customer's embedded address collection. The JSON
// keys are the persisted document shape and must not change. The enrichment
// fields (CircleName, RegionName, StateName) are copied from the pincode
// reference table at write time; District is aliased from the supplied city.
type Address struct {
	CircleName   string           `json:"Circle_Name"`
	RegionName   string           `json:"Region_Name"`
	Pincode      string           `json:"Pincode"`
	District     string           `json:"District"`
	StateName    string           `json:"StateName"`
	AddressLine1 string           `json:"Address_Line_1"`
	AddressLine2 string           `json:"Address_Line_2,omitempty"`
	City         string           `json:"Address_City"`
	State        string           `json:"Address_State"`
	NickName     string           `json:"Address_Nick_Name"`
	IsDefault    bool             `json:"Is_Default_address"`
	Latitude     *decimal.Decimal `json:"Latitude,omitempty"`
	Longitude    *decimal.Decimal `json:"Longitude,omitempty"`
}

// AddressInput is the user-supplied part of an address, before enrichment.
type AddressInput struct {
	City         string
	State        string
	Pincode      string
	AddressLine1 string
	AddressLine2 string
	NickName     string
	IsDefault    bool
	Latitude     *decimal.Decimal
	Longitude    *decimal.Decimal
}

// NewEnrichedAddress builds the stored address entry from the user-supplied
// fields plus the enrichment row resolved for its pincode.
func NewEnrichedAddress(in AddressInput, pin *pincode.Pincode) Address {
	return Address{
		CircleName:   pin.Circle,
		RegionName:   pin.Region,
		Pincode:      in.Pincode,
		District:     in.City,
		StateName:    pin.State,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		NickName:     in.NickName,
		IsDefault:    in.IsDefault,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}
}

type Customer struct {
	CustomerID    uuid.UUID `json:"customer_id"`
	FirstName     string    `json:"customer_first_name"`
	LastName      string    `json:"customer_last_name"`
	DOB           time.Time `json:"customer_dob"`
	Email         string    `json:"customer_email_id"`
	MobileNo      string    `json:"customer_mobile_no"`
	EmailVerified string    `json:"is_email_id_verified"`
	PhoneVerified string    `json:"is_phone_no_verified"`
	Addresses     []Address `json:"customer_address"`
	CreatedOn     time.Time `json:"created_on"`
	CreatedBy     string    `json:"created_by"`
	UpdatedOn     time.Time `json:"updated_on"`
	UpdatedBy     string    `json:"updated_by"`
	Password      *string   `json:"customer_password,omitempty"`
}

// Age computes the full calendar years between the customer's date of birth
// and the given instant. The birthday itself counts as completed.
func (c *Customer) Age(at time.Time) int {
	age := at.Year() - c.DOB.Year()
	if at.Month() < c.DOB.Month() || (at.Month() == c.DOB.Month() && at.Day() < c.DOB.Day()) {
		age--
	}
	return age
}

// HasNickname reports whether any stored address carries the given nickname.
// Empty nicknames never collide with each other.
func (c *Customer) HasNickname(nick string) bool {
	if nick == "" {
		return false
	}
	for _, a := range c.Addresses {
		if a.NickName == nick {
			return true
		}
	}
	return false
}

// AppendAddress adds an enriched entry at the end of the collection,
// preserving existing order. It rejects the append when the collection is at
// capacity or the nickname is already taken, leaving the collection untouched.
func (c *Customer) AppendAddress(a Address) error {
	if len(c.Addresses) >= MaxAddresses {
		return ErrAddressLimitReached
	}
	if c.HasNickname(a.NickName) {
		return ErrNicknameTaken
	}
	c.Addresses = append(c.Addresses, a)
	return nil
}

// RemoveAddresses drops every entry whose nickname matches exactly and
// returns the number removed. More than one entry can match when the stored
// collection predates the append-time uniqueness check.
func (c *Customer) RemoveAddresses(nick string) int {
	kept := c.Addresses[:0]
	removed := 0
	for _, a := range c.Addresses {
		if a.NickName == nick {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	c.Addresses = kept
	return removed
}

// Touch stamps the audit fields for a mutation performed by the given actor.
func (c *Customer) Touch(actor string, now time.Time) {
	if actor == "" {
		actor = DefaultActor
	}
	c.UpdatedBy = actor
	c.UpdatedOn = now
}

// MarkEmailVerified flips the email verification flag to Y. Idempotent; there
// is no transition back to N.
func (c *Customer) MarkEmailVerified() {
	c.EmailVerified = Verified
}

// MarkPhoneVerified flips the phone verification flag to Y. Idempotent.
func (c *Customer) MarkPhoneVerified() {
	c.PhoneVerified = Verified
}
