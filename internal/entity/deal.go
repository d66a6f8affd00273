package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	DealStatusPending = "PENDING"
	DealStatusPaid    = "PAID"
)

type Deal struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	Amount      int       `json:"amount"` // Na menor unidade que o lead enxerga (dólares/rúpias inteiros)
	Currency    string    `json:"currency"`
	Provider    string    `json:"provider"` // STRIPE, RAZORPAY
	ProviderRef string    `json:"provider_ref"`
	PaymentURL  string    `json:"payment_url"`
	Status      string    `json:"status"` // PENDING, PAID
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeal cria o registro do link de pagamento enviado pro lead.
func NewDeal(leadID string, amount int, currency, provider, providerRef, paymentURL string) *Deal {
	return &Deal{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		Amount:      amount,
		Currency:    currency,
		Provider:    provider,
		ProviderRef: providerRef,
		PaymentURL:  paymentURL,
		Status:      DealStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type RevenueByCurrency struct {
	Currency string `json:"currency"`
	Total    int    `json:"total"`
}

type DealRepositoryInterface interface {
	Create(ctx context.Context, deal *Deal) error
	FindByLeadID(ctx context.Context, leadID string) ([]*Deal, error)
	MarkPaid(ctx context.Context, leadID string) error
	Revenue(ctx context.Context) ([]RevenueByCurrency, error)
}
