package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadrunner/internal/entity"
)

func outreachLead(id string, status entity.Status) *entity.Lead {
	return &entity.Lead{
		ID:      id,
		Name:    "Maria Souza",
		Company: "Bright Smiles",
		Email:   "maria@brightsmiles.com",
		Country: entity.CountryUS,
		Status:  status,
		Version: 1,
	}
}

func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ============ TESTES ============

// TestStartOutreachSendsInitialEmail - lead New recebe o primeiro contato e
// avança pra Initial Contact sem contar follow-up
func TestStartOutreachSendsInitialEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	lead := outreachLead("lead-1", entity.StatusNew)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockMailer.On("SendSequence", mock.Anything, "initial").Return(nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.StatusInitialContact && l.ContactCount == 0
	})).Return(nil)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())
	uc.Now = frozenClock(now)

	result, err := uc.Execute(ctx, []string{"lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "SendFollowUp", result.Leads[0].Decision)
	assert.Equal(t, "initial", result.Leads[0].Template)
	mockMailer.AssertCalled(t, "SendSequence", mock.Anything, "initial")
	mockRepo.AssertCalled(t, "Save", ctx, mock.Anything)
}

// TestStartOutreachSendFailureLeavesLeadUntouched - SMTP recusou: ninguém
// persiste nada e o próximo sweep tenta de novo
func TestStartOutreachSendFailureLeavesLeadUntouched(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	lead := outreachLead("lead-1", entity.StatusNew)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockMailer.On("SendSequence", mock.Anything, "initial").Return(errors.New("smtp: connection refused"))

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())

	result, err := uc.Execute(ctx, []string{"lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Leads[0].Error, "send failed")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestStartOutreachVersionConflictKeepsConcurrentUpdate - um evento inbound
// gravou primeiro; o sweep não sobrescreve
func TestStartOutreachVersionConflictKeepsConcurrentUpdate(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	lead := outreachLead("lead-1", entity.StatusNew)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockMailer.On("SendSequence", mock.Anything, "initial").Return(nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(entity.ErrVersionConflict)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())

	result, err := uc.Execute(ctx, []string{"lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Leads[0].Error, "concurrent update")
}

// TestStartOutreachSkipsQuietLeads - lead dentro do intervalo não gera envio
func TestStartOutreachSkipsQuietLeads(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	lead := outreachLead("lead-1", entity.StatusInitialContact)
	lead.LastContactAt = &yesterday
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())
	uc.Now = frozenClock(now)

	result, err := uc.Execute(ctx, []string{"lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, "NoAction", result.Leads[0].Decision)
	mockMailer.AssertNotCalled(t, "SendSequence", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestStartOutreachClosesExhaustedLead - esgotou os follow-ups: vira No Response
func TestStartOutreachClosesExhaustedLead(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	lastSent := now.AddDate(0, 0, -3)

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	lead := outreachLead("lead-1", entity.StatusFollowUp)
	lead.LastContactAt = &lastSent
	lead.ContactCount = 4
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.StatusNoResponse
	})).Return(nil)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())
	uc.Now = frozenClock(now)

	result, err := uc.Execute(ctx, []string{"lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, "MarkNoResponse", result.Leads[0].Decision)
	assert.Equal(t, entity.StatusNoResponse, result.Leads[0].Status)
	mockMailer.AssertNotCalled(t, "SendSequence", mock.Anything, mock.Anything)
}

// TestStartOutreachLeadNotFound - id desconhecido conta como falha sem
// derrubar o lote
func TestStartOutreachLeadNotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	mockRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)
	good := outreachLead("lead-1", entity.StatusNew)
	mockRepo.On("FindByID", ctx, "lead-1").Return(good, nil)
	mockMailer.On("SendSequence", mock.Anything, "initial").Return(nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(nil)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())

	result, err := uc.Execute(ctx, []string{"ghost", "lead-1"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "lead not found", result.Leads[0].Error)
}

func TestStartOutreachEmptyInput(t *testing.T) {
	uc := NewStartOutreachUseCase(new(MockLeadRepository), new(MockMailer), testSettings())

	_, err := uc.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
}

// TestSweepProcessesAllActiveLeads - o sweep varre os leads ativos e decide
// um por um, independente
func TestSweepProcessesAllActiveLeads(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -5)

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)

	fresh := outreachLead("lead-new", entity.StatusNew)
	due := outreachLead("lead-due", entity.StatusFollowUp)
	due.LastContactAt = &old
	due.ContactCount = 1

	mockRepo.On("ListCadenceActive", ctx).Return([]*entity.Lead{fresh, due}, nil)
	mockMailer.On("SendSequence", mock.Anything, "initial").Return(nil)
	mockMailer.On("SendSequence", mock.Anything, "follow_up_2").Return(nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(nil)

	uc := NewStartOutreachUseCase(mockRepo, mockMailer, testSettings())
	uc.Now = frozenClock(now)

	result, err := uc.Sweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Success)
	mockMailer.AssertCalled(t, "SendSequence", mock.Anything, "initial")
	mockMailer.AssertCalled(t, "SendSequence", mock.Anything, "follow_up_2")
}
