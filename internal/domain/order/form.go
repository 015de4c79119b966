package order

import (
	"regexp"
	"strings"
)

// Checkout form field names used for per-field validation flags
const (
	FieldFullName = "full_name"
	FieldPhone    = "phone"
)

// phonePattern is the fixed national format: +7 and exactly ten digits,
// no separators.
var phonePattern = regexp.MustCompile(`^\+7\d{10}$`)

// CheckoutForm holds the customer-supplied order fields
type CheckoutForm struct {
	FullName string
	Phone    string
	Address  string
	Comment  string
	Telegram string
}

// Trimmed returns a copy of the form with all fields whitespace-trimmed
func (f CheckoutForm) Trimmed() CheckoutForm {
	return CheckoutForm{
		FullName: strings.TrimSpace(f.FullName),
		Phone:    strings.TrimSpace(f.Phone),
		Address:  strings.TrimSpace(f.Address),
		Comment:  strings.TrimSpace(f.Comment),
		Telegram: strings.TrimSpace(f.Telegram),
	}
}

// FieldErrors maps a failing field name to its error code.
// An empty map means the form is valid.
type FieldErrors map[string]string

// Valid reports whether no field failed
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Has reports whether the given field failed
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Validate checks the form and flags every failing field individually.
// Already-entered values are never discarded; the caller keeps the form
// and re-presents it with the flags.
func (f CheckoutForm) Validate() FieldErrors {
	errs := FieldErrors{}
	t := f.Trimmed()
	if t.FullName == "" {
		errs[FieldFullName] = "REQUIRED"
	}
	if !phonePattern.MatchString(t.Phone) {
		errs[FieldPhone] = "INVALID_FORMAT"
	}
	return errs
}
