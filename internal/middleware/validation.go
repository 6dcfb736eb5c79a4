package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

var cardTypes = map[string]bool{
	"visa":       true,
	"mastercard": true,
	"amex":       true,
	"discover":   true,
}

// now is swapped in tests.
var now = time.Now

// RegisterValidators adds the custom binding tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return registerCustomValidations(v)
}

func registerCustomValidations(v *validator.Validate) error {
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("expiry", validateExpiry); err != nil {
		return fmt.Errorf("register expiry validation: %w", err)
	}
	if err := v.RegisterValidation("cardtype", validateCardType); err != nil {
		return fmt.Errorf("register cardtype validation: %w", err)
	}
	return nil
}

// validateExpiry accepts MM/YY that is not in the past.
func validateExpiry(fl validator.FieldLevel) bool {
	m := expiryPattern.FindStringSubmatch(fl.Field().String())
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	current := now()
	if year != current.Year() {
		return year > current.Year()
	}
	return month >= int(current.Month())
}

func validateCardType(fl validator.FieldLevel) bool {
	return cardTypes[fl.Field().String()]
}

// ValidationDetails turns a binding error into per-field details.
// It returns nil when err is not a validator error (e.g. malformed JSON).
func ValidationDetails(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "numeric":
		return "Value must contain only digits"
	case "expiry":
		return "Expiry must be a future MM/YY date"
	case "cardtype":
		return "Card type must be one of visa, mastercard, amex, discover"
	default:
		return "Invalid value"
	}
}
