package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// BusinessValidator handles struct-tag and business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// rollNumberPattern matches university roll numbers such as 21CSE042 or
// 22LCS007 (year digits, branch code, serial).
var rollNumberPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{2,4}[0-9]{3}$`)

var personNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,99}$`)

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct against registered rules
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: bv.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	// These registrations only fail for nil funcs or empty tags.
	_ = bv.validate.RegisterValidation("roll_number", func(fl validator.FieldLevel) bool {
		return rollNumberPattern.MatchString(fl.Field().String())
	})

	_ = bv.validate.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})

	_ = bv.validate.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
}

// isStrongPassword requires at least 8 characters with a letter and a digit.
func isStrongPassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "roll_number":
		return "must be a valid roll number (e.g. 21CSE042)"
	case "person_name":
		return "must be a valid name"
	case "strong_password":
		return "must be 8-72 characters with at least one letter and one digit"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
