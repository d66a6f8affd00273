package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/leadrunner/internal/cadence"
	"github.com/xavierca1/leadrunner/internal/entity"
)

type CreatePaymentInput struct {
	LeadID string `json:"lead_id"`
	Amount int    `json:"amount"`
}

type CreatePaymentOutput struct {
	DealID     string `json:"deal_id"`
	PaymentURL string `json:"payment_url"`
	Currency   string `json:"currency"`
	Provider   string `json:"provider"`
}

// CreatePaymentUseCase gera o link de pagamento no gateway do mercado
// (Stripe pra US, Razorpay pra IN), registra o deal e avança o lead
// pra Payment Link Sent.
type CreatePaymentUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	DealRepo   entity.DealRepositoryInterface
	USGateway  PaymentLinkGateway
	INGateway  PaymentLinkGateway
	Mailer     OutreachMailer
	Settings   SettingsProvider

	Now func() time.Time
}

func NewCreatePaymentUseCase(
	leadRepo entity.LeadRepositoryInterface,
	dealRepo entity.DealRepositoryInterface,
	usGateway, inGateway PaymentLinkGateway,
	mailer OutreachMailer,
	settings SettingsProvider,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		LeadRepo:  leadRepo,
		DealRepo:  dealRepo,
		USGateway: usGateway,
		INGateway: inGateway,
		Mailer:    mailer,
		Settings:  settings,
		Now:       time.Now,
	}
}

func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	if errs := ValidatePaymentInput(input); len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + input.LeadID}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	// Reenvio idempotente: o dashboard repete o create à vontade; um
	// deal ainda pendente devolve o mesmo link sem nova chamada de
	// gateway nem deal duplicado.
	deals, err := uc.DealRepo.FindByLeadID(ctx, lead.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load deals: " + err.Error()}
	}
	for _, d := range deals {
		if d.Status == entity.DealStatusPending {
			return &CreatePaymentOutput{
				DealID:     d.ID,
				PaymentURL: d.PaymentURL,
				Currency:   d.Currency,
				Provider:   d.Provider,
			}, nil
		}
	}

	now := uc.Now()

	// Valida a transição antes de gastar chamada de gateway.
	updated, err := cadence.MarkPaymentLinkSent(*lead, now)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_TRANSITION", Message: err.Error()}
	}

	gateway := uc.USGateway
	provider := "STRIPE"
	if lead.Country == entity.CountryIN {
		gateway = uc.INGateway
		provider = "RAZORPAY"
	}

	link, err := gateway.CreatePaymentLink(ctx, PaymentLinkInput{
		LeadID:   lead.ID,
		Name:     lead.Name,
		Email:    lead.Email,
		Company:  lead.Company,
		Amount:   input.Amount,
		Currency: lead.Country.Currency(),
	})
	if err != nil {
		return nil, &TechnicalError{
			Code:    "PAYMENT_GATEWAY_ERROR",
			Message: provider + " refused the payment link: " + err.Error(),
		}
	}

	deal := entity.NewDeal(lead.ID, input.Amount, lead.Country.Currency(), provider, link.Ref, link.URL)
	if err := uc.DealRepo.Create(ctx, deal); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record deal: " + err.Error()}
	}

	updated.AppendNote(now, "payment link sent: "+link.URL)
	if err := uc.LeadRepo.Save(ctx, &updated); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}

	// O email com o link sai em background; a resposta não espera SMTP.
	go func(l entity.Lead) {
		if err := uc.Mailer.SendPaymentLink(&l, link.URL, input.Amount, l.Country.Currency()); err != nil {
			log.Printf("[payment] payment link email failed for %s: %v", l.ID, err)
		}
	}(updated)

	return &CreatePaymentOutput{
		DealID:     deal.ID,
		PaymentURL: link.URL,
		Currency:   deal.Currency,
		Provider:   provider,
	}, nil
}

// Suggest devolve os três tiers pro lead, direto das settings.
func (uc *CreatePaymentUseCase) Suggest(ctx context.Context, leadID string) (cadence.Price, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return cadence.Price{}, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
		}
		return cadence.Price{}, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return cadence.SuggestPrice(lead.Country, lead.CompanySize, uc.Settings.Settings().Pricing), nil
}
