package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadrunner/internal/entity"
)

// ============ TESTES ============

// TestUpdateLeadManualOverride - operador pode forçar qualquer status
// conhecido, com registro em notes
func TestUpdateLeadManualOverride(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	lead := &entity.Lead{
		ID:      "lead-1",
		Name:    "Ana Lima",
		Email:   "ana@clinic.com",
		Country: entity.CountryUS,
		Status:  entity.StatusNoResponse,
		Version: 5,
	}
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.StatusReplied
	})).Return(nil)

	uc := NewUpdateLeadUseCase(mockRepo)
	uc.Now = func() time.Time { return time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC) }

	updated, err := uc.Execute(ctx, UpdateLeadInput{
		LeadID: "lead-1",
		Status: entity.StatusReplied,
		Notes:  "answered from personal inbox",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusReplied, updated.Status)
	assert.Contains(t, updated.Notes, "manual override: No Response -> Replied")
	assert.Contains(t, updated.Notes, "answered from personal inbox")
}

func TestUpdateLeadUnknownStatus(t *testing.T) {
	uc := NewUpdateLeadUseCase(new(MockLeadRepository))

	_, err := uc.Execute(context.Background(), UpdateLeadInput{LeadID: "lead-1", Status: "Ghosted"})

	assert.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*DomainError).Code)
}

func TestUpdateLeadNotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := NewUpdateLeadUseCase(mockRepo)

	_, err := uc.Execute(ctx, UpdateLeadInput{LeadID: "ghost", Status: entity.StatusReplied})

	assert.Error(t, err)
	assert.Equal(t, "LEAD_NOT_FOUND", err.(*DomainError).Code)
}
