package middleware

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardFields struct {
	ExpiryDate string `validate:"required,expiry"`
	CardType   string `validate:"required,cardtype"`
}

func TestCustomValidations(t *testing.T) {
	now = func() time.Time { return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	v := validator.New()
	require.NoError(t, registerCustomValidations(v))

	tests := []struct {
		name   string
		expiry string
		kind   string
		valid  bool
	}{
		{"current month", "06/25", "visa", true},
		{"later this year", "12/25", "mastercard", true},
		{"future year", "01/27", "amex", true},
		{"last month", "05/25", "visa", false},
		{"past year", "12/24", "visa", false},
		{"month thirteen", "13/26", "visa", false},
		{"long year", "06/2026", "visa", false},
		{"unknown card type", "06/26", "diners", false},
		{"card type is case sensitive", "06/26", "Visa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(cardFields{ExpiryDate: tt.expiry, CardType: tt.kind})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			details := ValidationDetails(err)
			assert.NotEmpty(t, details)
		})
	}
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
