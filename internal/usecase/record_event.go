package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/leadrunner/internal/cadence"
	"github.com/xavierca1/leadrunner/internal/entity"
)

// RecordEventUseCase aplica eventos inbound (resposta, call, pagamento)
// na máquina de estados. Evento tem prioridade sobre o sweep: em caso
// de conflito de versão a gente relê e reaplica.
type RecordEventUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	DealRepo entity.DealRepositoryInterface
	Mailer   OutreachMailer
	Settings SettingsProvider

	Now func() time.Time
}

func NewRecordEventUseCase(
	leadRepo entity.LeadRepositoryInterface,
	dealRepo entity.DealRepositoryInterface,
	mailer OutreachMailer,
	settings SettingsProvider,
) *RecordEventUseCase {
	return &RecordEventUseCase{
		LeadRepo: leadRepo,
		DealRepo: dealRepo,
		Mailer:   mailer,
		Settings: settings,
		Now:      time.Now,
	}
}

const maxApplyAttempts = 3

// Execute aplica o evento e devolve o snapshot novo. Transição
// inválida volta como DomainError INVALID_TRANSITION com o lead
// intacto. Quem chamou decide se loga-e-ignora ou escala.
func (uc *RecordEventUseCase) Execute(ctx context.Context, leadID string, event entity.InboundEvent, occurredAt time.Time) (*entity.Lead, error) {
	if !event.Valid() {
		return nil, &DomainError{Code: "INVALID_EVENT", Message: "unknown inbound event: " + string(event)}
	}
	if occurredAt.IsZero() {
		occurredAt = uc.Now()
	}

	var applied *entity.Lead

	for attempt := 1; ; attempt++ {
		lead, err := uc.LeadRepo.FindByID(ctx, leadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}

		updated, err := cadence.ApplyEvent(*lead, event, occurredAt)
		if err != nil {
			return nil, &DomainError{
				Code:    "INVALID_TRANSITION",
				Message: err.Error(),
			}
		}

		// No-op idempotente: nada pra gravar, nada pra notificar.
		if updated.Status == lead.Status {
			return lead, nil
		}

		updated.AppendNote(occurredAt, "inbound event: "+string(event))

		if err := uc.LeadRepo.Save(ctx, &updated); err != nil {
			if errors.Is(err, entity.ErrVersionConflict) && attempt < maxApplyAttempts {
				continue // relê e reaplica por cima do estado novo
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist event: " + err.Error()}
		}

		applied = &updated
		break
	}

	uc.afterApply(ctx, applied, event)
	return applied, nil
}

// afterApply dispara os efeitos colaterais de cada evento. Falha aqui
// não desfaz a transição, só loga.
func (uc *RecordEventUseCase) afterApply(ctx context.Context, lead *entity.Lead, event entity.InboundEvent) {
	switch event {
	case entity.EventReplied:
		// Resposta positiva ganha o convite de call com o Calendly.
		link := uc.Settings.Settings().CalendlyLink
		go func(l entity.Lead) {
			if err := uc.Mailer.SendReplyFollowUp(&l, link); err != nil {
				log.Printf("[events] reply follow-up email failed for %s: %v", l.ID, err)
			}
		}(*lead)

	case entity.EventPaymentReceived:
		if err := uc.DealRepo.MarkPaid(ctx, lead.ID); err != nil {
			log.Printf("[events] failed to mark deal paid for %s: %v", lead.ID, err)
		}

		// Email de onboarding e avanço pro estado final positivo.
		if err := uc.Mailer.SendOnboarding(lead); err != nil {
			log.Printf("[events] onboarding email failed for %s: %v", lead.ID, err)
			return
		}

		now := uc.Now()
		onboarded, err := cadence.MarkOnboarding(*lead, now)
		if err != nil {
			log.Printf("[events] onboarding transition rejected for %s: %v", lead.ID, err)
			return
		}
		onboarded.AppendNote(now, "sent onboarding email")
		if err := uc.LeadRepo.Save(ctx, &onboarded); err != nil {
			log.Printf("[events] failed to persist onboarding for %s: %v", lead.ID, err)
		}
	}
}
