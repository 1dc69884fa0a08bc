package entity

import (
	"context"
	"errors"
	"time"
)

// ErrLeadNotFound is returned by repositories when no lead matches the given id.
var ErrLeadNotFound = errors.New("lead not found")

// Lead is a contact-form submission captured from the public site.
type Lead struct {
	ID       string    `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindAll(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
}
