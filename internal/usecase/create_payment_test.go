package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadrunner/internal/cadence"
	"github.com/xavierca1/leadrunner/internal/entity"
)

func paymentLead(country entity.Country, status entity.Status) *entity.Lead {
	lead := &entity.Lead{
		ID:          "lead-1",
		Name:        "Carlos Mota",
		Company:     "Mota Clinics",
		Email:       "carlos@motaclinics.com",
		CompanySize: 150,
		Country:     country,
		Status:      status,
		Version:     2,
	}
	return lead
}

// ============ TESTES ============

// TestCreatePaymentUSLeadUsesStripe - lead US sai pelo Stripe em dólar
func TestCreatePaymentUSLeadUsesStripe(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockDeals := new(MockDealRepository)
	mockStripe := new(MockPaymentGateway)
	mockRazorpay := new(MockPaymentGateway)
	mockMailer := new(MockMailer)

	lead := paymentLead(entity.CountryUS, entity.StatusCallCompleted)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockDeals.On("FindByLeadID", ctx, "lead-1").Return([]*entity.Deal{}, nil)
	mockStripe.On("CreatePaymentLink", ctx, mock.MatchedBy(func(in PaymentLinkInput) bool {
		return in.Currency == "USD" && in.Amount == 3000
	})).Return(PaymentLink{URL: "https://buy.stripe.com/abc", Ref: "plink_123"}, nil)
	mockDeals.On("Create", ctx, mock.MatchedBy(func(d *entity.Deal) bool {
		return d.Provider == "STRIPE" && d.Status == entity.DealStatusPending
	})).Return(nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.StatusPaymentLinkSent
	})).Return(nil)

	sent := make(chan struct{})
	mockMailer.On("SendPaymentLink", mock.Anything, "https://buy.stripe.com/abc", 3000, "USD").
		Run(func(args mock.Arguments) { close(sent) }).
		Return(nil)

	uc := NewCreatePaymentUseCase(mockRepo, mockDeals, mockStripe, mockRazorpay, mockMailer, testSettings())

	out, err := uc.Execute(ctx, CreatePaymentInput{LeadID: "lead-1", Amount: 3000})

	assert.NoError(t, err)
	assert.Equal(t, "STRIPE", out.Provider)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "https://buy.stripe.com/abc", out.PaymentURL)
	mockRazorpay.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("payment link email was never sent")
	}
}

// TestCreatePaymentIndiaLeadUsesRazorpay - lead IN sai pelo Razorpay em rúpia
func TestCreatePaymentIndiaLeadUsesRazorpay(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockDeals := new(MockDealRepository)
	mockStripe := new(MockPaymentGateway)
	mockRazorpay := new(MockPaymentGateway)
	mockMailer := new(MockMailer)

	lead := paymentLead(entity.CountryIN, entity.StatusReplied)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockDeals.On("FindByLeadID", ctx, "lead-1").Return(nil, nil)
	mockRazorpay.On("CreatePaymentLink", ctx, mock.MatchedBy(func(in PaymentLinkInput) bool {
		return in.Currency == "INR"
	})).Return(PaymentLink{URL: "https://rzp.io/l/xyz", Ref: "plink_987"}, nil)
	mockDeals.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(nil)
	mockMailer.On("SendPaymentLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewCreatePaymentUseCase(mockRepo, mockDeals, mockStripe, mockRazorpay, mockMailer, testSettings())

	out, err := uc.Execute(ctx, CreatePaymentInput{LeadID: "lead-1", Amount: 102000})

	assert.NoError(t, err)
	assert.Equal(t, "RAZORPAY", out.Provider)
	assert.Equal(t, "INR", out.Currency)
	mockStripe.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
}

// TestCreatePaymentReplaysPendingDeal - create repetido com deal ainda
// pendente devolve o mesmo link, sem novo deal nem chamada de gateway
func TestCreatePaymentReplaysPendingDeal(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockDeals := new(MockDealRepository)
	mockStripe := new(MockPaymentGateway)

	lead := paymentLead(entity.CountryUS, entity.StatusCallCompleted)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockDeals.On("FindByLeadID", ctx, "lead-1").Return([]*entity.Deal{
		{
			ID:         "deal-77",
			LeadID:     "lead-1",
			Amount:     3000,
			Currency:   "USD",
			Provider:   "STRIPE",
			PaymentURL: "https://buy.stripe.com/abc",
			Status:     entity.DealStatusPending,
		},
	}, nil)

	uc := NewCreatePaymentUseCase(mockRepo, mockDeals, mockStripe, new(MockPaymentGateway), new(MockMailer), testSettings())

	out, err := uc.Execute(ctx, CreatePaymentInput{LeadID: "lead-1", Amount: 3000})

	assert.NoError(t, err)
	assert.Equal(t, "deal-77", out.DealID)
	assert.Equal(t, "https://buy.stripe.com/abc", out.PaymentURL)
	mockStripe.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
	mockDeals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreatePaymentRejectsWrongStage - link só sai depois de conversa
// (Replied ou Call Completed)
func TestCreatePaymentRejectsWrongStage(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockDeals := new(MockDealRepository)
	mockStripe := new(MockPaymentGateway)

	lead := paymentLead(entity.CountryUS, entity.StatusFollowUp)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockDeals.On("FindByLeadID", ctx, "lead-1").Return(nil, nil)

	uc := NewCreatePaymentUseCase(mockRepo, mockDeals, mockStripe, new(MockPaymentGateway), new(MockMailer), testSettings())

	_, err := uc.Execute(ctx, CreatePaymentInput{LeadID: "lead-1", Amount: 3000})

	assert.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", err.(*DomainError).Code)
	mockStripe.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
}

// TestCreatePaymentGatewayFailure - gateway recusou: nada persiste
func TestCreatePaymentGatewayFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockDeals := new(MockDealRepository)
	mockStripe := new(MockPaymentGateway)

	lead := paymentLead(entity.CountryUS, entity.StatusReplied)
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)
	mockDeals.On("FindByLeadID", ctx, "lead-1").Return(nil, nil)
	mockStripe.On("CreatePaymentLink", ctx, mock.Anything).
		Return(PaymentLink{}, errors.New("stripe: rate limited"))

	uc := NewCreatePaymentUseCase(mockRepo, mockDeals, mockStripe, new(MockPaymentGateway), new(MockMailer), testSettings())

	_, err := uc.Execute(ctx, CreatePaymentInput{LeadID: "lead-1", Amount: 3000})

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	mockDeals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreatePaymentValidation(t *testing.T) {
	uc := NewCreatePaymentUseCase(new(MockLeadRepository), new(MockDealRepository), new(MockPaymentGateway), new(MockPaymentGateway), new(MockMailer), testSettings())

	_, err := uc.Execute(context.Background(), CreatePaymentInput{LeadID: "", Amount: -5})

	assert.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*DomainError).Code)
}

// TestSuggestPriceForLead - sugestão usa país e porte direto das settings
func TestSuggestPriceForLead(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	lead := paymentLead(entity.CountryUS, entity.StatusReplied)
	lead.CompanySize = 150
	mockRepo.On("FindByID", ctx, "lead-1").Return(lead, nil)

	uc := NewCreatePaymentUseCase(mockRepo, new(MockDealRepository), new(MockPaymentGateway), new(MockPaymentGateway), new(MockMailer), testSettings())

	price, err := uc.Suggest(ctx, "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, cadence.Price{Standard: 3000, Premium: 4200, Enterprise: 6000}, price)
}
