// Package cadence é o motor de follow-up: decide quando um lead recebe
// o próximo email e aplica os eventos inbound na máquina de estados.
// Tudo aqui é função pura; quem fala com banco, SMTP e fila são as
// camadas de usecase e infra.
package cadence

import (
	"fmt"
	"time"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type Config struct {
	FollowUpInterval time.Duration
	MaxFollowUps     int
}

type DecisionKind int

const (
	NoAction DecisionKind = iota
	SendFollowUp
	MarkNoResponse
)

func (k DecisionKind) String() string {
	switch k {
	case SendFollowUp:
		return "SendFollowUp"
	case MarkNoResponse:
		return "MarkNoResponse"
	}
	return "NoAction"
}

type Decision struct {
	Kind       DecisionKind
	TemplateID string // preenchido só em SendFollowUp
}

// TemplateInitial é o primeiro contato; follow-ups seguem a numeração
// da sequência original (follow_up_1, follow_up_2, ...).
const TemplateInitial = "initial"

func followUpTemplate(n int) string {
	return fmt.Sprintf("follow_up_%d", n)
}

// Tick decide o que fazer com um lead agora. Determinístico: mesmo
// snapshot + mesmo relógio = mesma decisão. Não toca em nada.
func Tick(lead entity.Lead, now time.Time, cfg Config) Decision {
	switch lead.Status {
	case entity.StatusNew:
		// Primeiro contato é sempre elegível.
		return Decision{Kind: SendFollowUp, TemplateID: TemplateInitial}

	case entity.StatusInitialContact, entity.StatusFollowUp:
		// Se chegou resposta depois do último envio, a cadência para.
		// Normalmente o status já virou Replied; isso é a rede de proteção
		// pra corrida entre webhook e sweep.
		if lead.LastInboundAt != nil &&
			(lead.LastContactAt == nil || lead.LastInboundAt.After(*lead.LastContactAt)) {
			return Decision{Kind: NoAction}
		}

		if lead.LastContactAt != nil && now.Sub(*lead.LastContactAt) < cfg.FollowUpInterval {
			return Decision{Kind: NoAction}
		}

		if lead.ContactCount < cfg.MaxFollowUps {
			return Decision{Kind: SendFollowUp, TemplateID: followUpTemplate(lead.ContactCount + 1)}
		}

		// Esgotou os follow-ups e passou mais um intervalo sem resposta.
		return Decision{Kind: MarkNoResponse}
	}

	// Replied em diante (e os terminais): cadência desligada.
	return Decision{Kind: NoAction}
}

// ApplyFollowUp materializa uma decisão SendFollowUp no snapshot.
// New vira Initial Contact sem contar follow-up; daí em diante cada
// envio incrementa contact_count.
func ApplyFollowUp(lead entity.Lead, now time.Time) entity.Lead {
	if lead.Status == entity.StatusNew {
		lead.Status = entity.StatusInitialContact
	} else {
		lead.Status = entity.StatusFollowUp
		lead.ContactCount++
	}
	t := now
	lead.LastContactAt = &t
	lead.UpdatedAt = now
	return lead
}

// ApplyNoResponse fecha o lead no estado absorvente.
func ApplyNoResponse(lead entity.Lead, now time.Time) entity.Lead {
	lead.Status = entity.StatusNoResponse
	lead.UpdatedAt = now
	return lead
}

// eventTransitions: para cada evento, de quais estados ele é aceito e
// pra qual estado leva. Evento cujo destino já é o estado atual é no-op
// (webhook entregue duas vezes não avança nada).
var eventTransitions = map[entity.InboundEvent]struct {
	from []entity.Status
	to   entity.Status
}{
	entity.EventReplied: {
		from: []entity.Status{entity.StatusNew, entity.StatusInitialContact, entity.StatusFollowUp},
		to:   entity.StatusReplied,
	},
	entity.EventCallRequested: {
		from: []entity.Status{entity.StatusReplied},
		to:   entity.StatusCallRequested,
	},
	entity.EventCallScheduled: {
		from: []entity.Status{entity.StatusCallRequested},
		to:   entity.StatusCallScheduled,
	},
	entity.EventCallCompleted: {
		from: []entity.Status{entity.StatusCallScheduled},
		to:   entity.StatusCallCompleted,
	},
	entity.EventPaymentLinkClicked: {
		from: []entity.Status{entity.StatusPaymentLinkSent},
		to:   entity.StatusPaymentLinkClicked,
	},
	// Gateways costumam mandar o webhook de pagamento sem a gente ter
	// visto o clique, então aceita das duas pontas.
	entity.EventPaymentReceived: {
		from: []entity.Status{entity.StatusPaymentLinkSent, entity.StatusPaymentLinkClicked},
		to:   entity.StatusPaymentReceived,
	},
}

// ApplyEvent aplica um evento inbound e devolve o snapshot novo.
// Evento que não se aplica ao estado atual: entity.ErrInvalidTransition,
// lead devolvido intacto. Quem chamou decide se loga ou escala.
func ApplyEvent(lead entity.Lead, event entity.InboundEvent, at time.Time) (entity.Lead, error) {
	rule, ok := eventTransitions[event]
	if !ok {
		return lead, fmt.Errorf("%w: unknown event %q", entity.ErrInvalidTransition, event)
	}

	// Idempotência: reentrega do mesmo evento não avança estado.
	if lead.Status == rule.to {
		return lead, nil
	}

	for _, from := range rule.from {
		if lead.Status == from {
			lead.Status = rule.to
			t := at
			lead.LastInboundAt = &t
			lead.UpdatedAt = at
			return lead, nil
		}
	}

	return lead, fmt.Errorf("%w: %s while %q", entity.ErrInvalidTransition, event, lead.Status)
}

// MarkPaymentLinkSent é ação nossa (não evento inbound): o operador ou
// o fluxo de pagamento envia o link depois da conversa.
func MarkPaymentLinkSent(lead entity.Lead, at time.Time) (entity.Lead, error) {
	switch lead.Status {
	case entity.StatusPaymentLinkSent:
		return lead, nil
	case entity.StatusReplied, entity.StatusCallCompleted:
		lead.Status = entity.StatusPaymentLinkSent
		lead.UpdatedAt = at
		return lead, nil
	}
	return lead, fmt.Errorf("%w: payment link while %q", entity.ErrInvalidTransition, lead.Status)
}

// MarkOnboarding avança o lead pago depois do email de onboarding.
func MarkOnboarding(lead entity.Lead, at time.Time) (entity.Lead, error) {
	switch lead.Status {
	case entity.StatusOnboarding:
		return lead, nil
	case entity.StatusPaymentReceived:
		lead.Status = entity.StatusOnboarding
		lead.UpdatedAt = at
		return lead, nil
	}
	return lead, fmt.Errorf("%w: onboarding while %q", entity.ErrInvalidTransition, lead.Status)
}
