package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type SearchLeadsInput struct {
	Country  entity.Country `json:"country"`
	Industry string         `json:"industry"`
	Revenue  string         `json:"revenue"` // 0-1M, 1M-10M, 10M-50M, 50M+
}

type SearchLeadsUseCase struct {
	Gateway  LeadSearchGateway
	LeadRepo entity.LeadRepositoryInterface
}

func NewSearchLeadsUseCase(gateway LeadSearchGateway, leadRepo entity.LeadRepositoryInterface) *SearchLeadsUseCase {
	return &SearchLeadsUseCase{Gateway: gateway, LeadRepo: leadRepo}
}

// Execute busca no provedor e grava os leads novos (status New).
// Lead já conhecido é upsert por email: não volta pra New.
func (uc *SearchLeadsUseCase) Execute(ctx context.Context, input SearchLeadsInput) ([]*entity.Lead, error) {
	if errs := ValidateSearchInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	leads, err := uc.Gateway.Search(ctx, input.Country, input.Industry, input.Revenue)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "LEAD_PROVIDER_ERROR",
			Message: "lead provider search failed: " + err.Error(),
		}
	}

	stored := make([]*entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if err := lead.Validate(); err != nil {
			log.Printf("[search] skipping invalid lead from provider: %v", err)
			continue
		}
		if err := uc.LeadRepo.Upsert(ctx, lead); err != nil {
			return stored, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to store lead: " + err.Error(),
			}
		}
		stored = append(stored, lead)
	}

	return stored, nil
}
