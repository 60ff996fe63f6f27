package order

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an improperly initialized Address.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// MissingShippingInfoError indicates that a required shipping field was not provided.
type MissingShippingInfoError struct {
	Field string
}

func (e *MissingShippingInfoError) Error() string {
	return fmt.Sprintf("shipping information is incomplete: %s is required", e.Field)
}

// Address is a value object holding the shipping and contact details captured
// verbatim at checkout. Full name, street address, country and state are
// required; the remaining fields are optional and stored as given.
type Address struct {
	fullName      string
	streetAddress string
	country       string
	state         string
	city          string
	phone         string
	email         string

	guard guard.ConstructorGuard
}

// NewAddress creates a shipping address, rejecting missing required fields with
// MissingShippingInfoError naming the first absent field.
func NewAddress(fullName, streetAddress, country, state, city, phone, email string) (Address, error) {
	required := []struct {
		field string
		value string
	}{
		{"fullName", fullName},
		{"streetAddress", streetAddress},
		{"country", country},
		{"state", state},
	}
	for _, r := range required {
		if r.value == "" {
			return Address{}, &MissingShippingInfoError{Field: r.field}
		}
	}

	return Address{
		fullName:      fullName,
		streetAddress: streetAddress,
		country:       country,
		state:         state,
		city:          city,
		phone:         phone,
		email:         email,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through its constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns the recipient's full name.
func (a Address) FullName() string { return a.fullName }

// StreetAddress returns the street address line.
func (a Address) StreetAddress() string { return a.streetAddress }

// Country returns the destination country.
func (a Address) Country() string { return a.country }

// State returns the destination state or region.
func (a Address) State() string { return a.state }

// City returns the destination city, possibly empty.
func (a Address) City() string { return a.city }

// Phone returns the contact phone number, possibly empty.
func (a Address) Phone() string { return a.phone }

// Email returns the contact email, possibly empty.
func (a Address) Email() string { return a.email }
