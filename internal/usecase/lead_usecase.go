package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/danguerrag/go-leads-api/internal/entity"
)

type LeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Notifier LeadNotifier
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, notifier LeadNotifier) *LeadUseCase {
	return &LeadUseCase{
		Repo:     repo,
		Notifier: notifier,
	}
}

// Create validates and persists a new lead, then hands the operator
// notification to the notifier without waiting on it. The returned lead
// reflects only the persistence outcome.
func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: errMsg,
		}
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	lead := &entity.Lead{
		ID:       uuid.New().String(),
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Message:  input.Message,
		Date:     date,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	go uc.Notifier.NotifyNewLead(lead)

	return lead, nil
}

func (uc *LeadUseCase) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	return uc.Repo.FindAll(ctx)
}

func (uc *LeadUseCase) FindOne(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return lead, nil
}

// Update applies only the fields present in the patch and writes the
// record back. It never triggers a notification.
func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateUpdateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: errMsg,
		}
	}

	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}

	if input.FullName != nil {
		lead.FullName = *input.FullName
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Message != nil {
		lead.Message = *input.Message
	}
	if input.Date != nil {
		lead.Date = *input.Date
	}

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, mapNotFound(err, id)
	}

	return lead, nil
}

func (uc *LeadUseCase) Remove(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, id)
	}
	return nil
}

func mapNotFound(err error, id string) error {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &DomainError{
			Code:    CodeLeadNotFound,
			Message: "Lead #" + id + " not found",
		}
	}
	return err
}
