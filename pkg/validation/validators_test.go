package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type contactForm struct {
	ContactNumber string `validate:"required,contact_number"`
}

type nameForm struct {
	FullName string `validate:"valid_name"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestContactNumber(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		contact string
		valid   bool
	}{
		{"ten digits", "9876543210", true},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"with country code", "+919876543210", false},
		{"with separators", "98765-43210", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(contactForm{ContactNumber: tt.contact})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain name", "Asha Verma", true},
		{"apostrophe and hyphen", "Mary O'Neil-Smith", true},
		{"company suffix", "Acme Corp (India) Pvt. Ltd.", true},
		{"accented letters", "José García", true},
		{"empty passes, required handles blanks", "", true},
		{"angle brackets", "<script>alert(1)</script>", false},
		{"semicolon", "Robert'); DROP TABLE candidates;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(nameForm{FullName: tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
