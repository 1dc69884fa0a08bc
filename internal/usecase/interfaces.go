package usecase

import (
	"github.com/danguerrag/go-leads-api/internal/entity"
)

// LeadNotifier is the outbound side effect of a created lead. It has no
// error return: delivery failures are contained (and logged) inside the
// implementation and never reach the intake flow.
type LeadNotifier interface {
	NotifyNewLead(lead *entity.Lead)
}
