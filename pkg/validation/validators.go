package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Exactly ten digits, no separators, matching how recruiters key in
	// Indian mobile numbers.
	contactNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)

	// Letters, numbers, spaces, and common professional punctuation.
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_number", ContactNumber)
	_ = v.RegisterValidation("valid_name", ValidName)
}

// ContactNumber validates a candidate contact number: exactly 10 digits.
func ContactNumber(fl validator.FieldLevel) bool {
	return contactNumberRegex.MatchString(fl.Field().String())
}

// ValidName rejects control characters and most special symbols in names.
// Empty values pass; combine with required where the field is mandatory.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}
