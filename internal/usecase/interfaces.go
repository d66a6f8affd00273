package usecase

import (
	"context"

	"github.com/xavierca1/leadrunner/internal/config"
	"github.com/xavierca1/leadrunner/internal/entity"
)

// LeadSearchGateway é o provedor de leads (Apollo.io na prática).
type LeadSearchGateway interface {
	Search(ctx context.Context, country entity.Country, industry, revenue string) ([]*entity.Lead, error)
}

// OutreachMailer é o messaging gateway. Cada método já resolve o SMTP
// certo pelo país do lead.
type OutreachMailer interface {
	SendSequence(lead *entity.Lead, templateID string) error
	SendReplyFollowUp(lead *entity.Lead, calendlyLink string) error
	SendPaymentLink(lead *entity.Lead, paymentURL string, amount int, currency string) error
	SendOnboarding(lead *entity.Lead) error
}

// PaymentLink é o que o gateway devolve; o resto do protocolo é opaco.
type PaymentLink struct {
	URL string
	Ref string
}

type PaymentLinkInput struct {
	LeadID   string
	Name     string
	Email    string
	Company  string
	Amount   int // unidades inteiras da moeda
	Currency string
}

type PaymentLinkGateway interface {
	CreatePaymentLink(ctx context.Context, input PaymentLinkInput) (PaymentLink, error)
}

// SettingsProvider entrega a configuração editável vigente.
type SettingsProvider interface {
	Settings() config.Settings
}
