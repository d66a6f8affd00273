package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/leadrunner/internal/cadence"
	"github.com/xavierca1/leadrunner/internal/entity"
)

type LeadOutcome struct {
	LeadID   string         `json:"lead_id"`
	Status   entity.Status  `json:"status"`
	Decision string         `json:"decision"`
	Template string         `json:"template,omitempty"`
	Country  entity.Country `json:"country,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type OutreachResult struct {
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Leads   []LeadOutcome `json:"leads"`
}

// StartOutreachUseCase roda a decisão pura do engine e faz o I/O em
// volta: manda o email e persiste o snapshot com lock otimista.
// Falha de envio não derruba o lote: o lead fica como está e o
// próximo sweep tenta de novo.
type StartOutreachUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Mailer   OutreachMailer
	Settings SettingsProvider

	// Relógio injetável pra teste determinístico.
	Now func() time.Time
}

func NewStartOutreachUseCase(
	leadRepo entity.LeadRepositoryInterface,
	mailer OutreachMailer,
	settings SettingsProvider,
) *StartOutreachUseCase {
	return &StartOutreachUseCase{
		LeadRepo: leadRepo,
		Mailer:   mailer,
		Settings: settings,
		Now:      time.Now,
	}
}

// Execute processa os leads selecionados no dashboard.
func (uc *StartOutreachUseCase) Execute(ctx context.Context, leadIDs []string) (*OutreachResult, error) {
	if len(leadIDs) == 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "lead_ids is required"}
	}

	now := uc.Now()
	cfg := uc.Settings.Settings().Cadence()
	result := &OutreachResult{}

	for _, id := range leadIDs {
		outcome := uc.processLead(ctx, id, now, cfg)
		if outcome.Error != "" {
			result.Failed++
		} else {
			result.Success++
		}
		result.Leads = append(result.Leads, outcome)
	}

	return result, nil
}

// Sweep é o tick periódico: varre todo lead com cadência ativa.
func (uc *StartOutreachUseCase) Sweep(ctx context.Context) (*OutreachResult, error) {
	leads, err := uc.LeadRepo.ListCadenceActive(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list leads: " + err.Error()}
	}

	now := uc.Now()
	cfg := uc.Settings.Settings().Cadence()
	result := &OutreachResult{}

	for _, lead := range leads {
		outcome := uc.applyDecision(ctx, lead, now, cfg)
		if outcome.Error != "" {
			result.Failed++
		} else {
			result.Success++
		}
		result.Leads = append(result.Leads, outcome)
	}

	return result, nil
}

func (uc *StartOutreachUseCase) processLead(ctx context.Context, id string, now time.Time, cfg cadence.Config) LeadOutcome {
	lead, err := uc.LeadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return LeadOutcome{LeadID: id, Error: "lead not found"}
		}
		return LeadOutcome{LeadID: id, Error: "failed to load lead: " + err.Error()}
	}
	return uc.applyDecision(ctx, lead, now, cfg)
}

func (uc *StartOutreachUseCase) applyDecision(ctx context.Context, lead *entity.Lead, now time.Time, cfg cadence.Config) LeadOutcome {
	decision := cadence.Tick(*lead, now, cfg)
	outcome := LeadOutcome{
		LeadID:   lead.ID,
		Status:   lead.Status,
		Decision: decision.Kind.String(),
		Template: decision.TemplateID,
		Country:  lead.Country,
	}

	switch decision.Kind {
	case cadence.NoAction:
		return outcome

	case cadence.SendFollowUp:
		// Envia primeiro; só persiste o avanço se o gateway aceitou.
		// Se o envio falhar, o snapshot não muda e o tick é idempotente.
		if err := uc.Mailer.SendSequence(lead, decision.TemplateID); err != nil {
			log.Printf("[outreach] send failed for lead %s (%s): %v", lead.ID, decision.TemplateID, err)
			outcome.Error = "send failed: " + err.Error()
			return outcome
		}

		updated := cadence.ApplyFollowUp(*lead, now)
		updated.AppendNote(now, "sent "+decision.TemplateID+" email")
		if err := uc.save(ctx, &updated); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		outcome.Status = updated.Status
		return outcome

	case cadence.MarkNoResponse:
		updated := cadence.ApplyNoResponse(*lead, now)
		updated.AppendNote(now, "closed after max follow-ups with no response")
		if err := uc.save(ctx, &updated); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		outcome.Status = updated.Status
		return outcome
	}

	return outcome
}

func (uc *StartOutreachUseCase) save(ctx context.Context, lead *entity.Lead) error {
	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrVersionConflict) {
			// Outro sweep ou um evento inbound passou na frente. O email já
			// foi, mas o estado novo (Replied etc) tem prioridade, não
			// sobrescreve.
			log.Printf("[outreach] version conflict on lead %s, keeping concurrent update", lead.ID)
			return errors.New("concurrent update, skipped")
		}
		return errors.New("failed to persist lead: " + err.Error())
	}
	return nil
}
