package customer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ecommerce/backend/internal/domain/shared"
)

const (
	MaxNameLength    = 100
	MaxSurnameLength = 100
	MaxEmailLength   = 255
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a shop customer. Orders reference it by ID; the customer
// itself holds no order collection.
type Customer struct {
	shared.BaseEntity
	Name    string
	Surname string
	Email   string
}

// NewCustomer creates a new customer with validated fields
func NewCustomer(name, surname, email string) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(name, surname, email); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces all mutable fields of the customer
func (c *Customer) Update(name, surname, email string) error {
	if err := c.apply(name, surname, email); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Customer) apply(name, surname, email string) error {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	email = NormalizeEmail(email)

	if err := validateName("name", name, MaxNameLength); err != nil {
		return err
	}
	if err := validateName("surname", surname, MaxSurnameLength); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = name
	c.Surname = surname
	c.Email = email
	return nil
}

// FullName returns "Name Surname"
func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}

// NormalizeEmail trims and lowercases an address so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(field, value string, maxLen int) error {
	if value == "" {
		return shared.Newf("INVALID_"+strings.ToUpper(field), "Customer %s cannot be empty", field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return shared.Newf("INVALID_"+strings.ToUpper(field), "Customer %s cannot exceed %d characters", field, maxLen)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return shared.Newf("INVALID_EMAIL", "Customer email cannot exceed %d characters", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
