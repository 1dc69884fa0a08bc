package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.Message) == "" {
		errors = append(errors, ValidationError{"message", "is required"})
	}

	return errors
}

// ValidateUpdateLeadInput checks only the fields present in the patch, so
// a partial update can never blank out a required field.
func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.FullName != nil && strings.TrimSpace(*input.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "must not be empty"})
	}

	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			errors = append(errors, ValidationError{"email", "must not be empty"})
		} else if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != nil && strings.TrimSpace(*input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "must not be empty"})
	}

	if input.Message != nil && strings.TrimSpace(*input.Message) == "" {
		errors = append(errors, ValidationError{"message", "must not be empty"})
	}

	return errors
}
