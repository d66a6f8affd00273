package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type UpdateLeadInput struct {
	LeadID string        `json:"lead_id"`
	Status entity.Status `json:"status"`
	Notes  string        `json:"notes"`
}

// UpdateLeadUseCase é a válvula de escape manual: o operador pode
// colocar o lead em qualquer status conhecido, fora da tabela de
// transições do engine. Fica tudo registrado nas notes.
type UpdateLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface

	Now func() time.Time
}

func NewUpdateLeadUseCase(leadRepo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{LeadRepo: leadRepo, Now: time.Now}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	if errs := ValidateUpdateInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	now := uc.Now()

	for attempt := 1; ; attempt++ {
		lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + input.LeadID}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}

		if lead.Status != input.Status {
			lead.AppendNote(now, "manual override: "+string(lead.Status)+" -> "+string(input.Status))
			lead.Status = input.Status
		}
		lead.AppendNote(now, input.Notes)
		lead.UpdatedAt = now

		if err := uc.LeadRepo.Save(ctx, lead); err != nil {
			if errors.Is(err, entity.ErrVersionConflict) && attempt < maxApplyAttempts {
				continue
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
		}

		return lead, nil
	}
}
