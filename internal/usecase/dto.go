package usecase

import "time"

type CreateLeadInput struct {
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Message  string     `json:"message"`
	Date     *time.Time `json:"date,omitempty"`
}

// UpdateLeadInput is a partial patch: only non-nil fields are applied
// over the stored record.
type UpdateLeadInput struct {
	FullName *string    `json:"fullName,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Message  *string    `json:"message,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}
