package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadrunner/internal/cadence"
	"github.com/xavierca1/leadrunner/internal/config"
	"github.com/xavierca1/leadrunner/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListCadenceActive(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) StatusCounts(ctx context.Context) ([]entity.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StatusCount), args.Error(1)
}

// MockDealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.Deal, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) MarkPaid(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockDealRepository) Revenue(ctx context.Context) ([]entity.RevenueByCurrency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RevenueByCurrency), args.Error(1)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendSequence(lead *entity.Lead, templateID string) error {
	args := m.Called(lead, templateID)
	return args.Error(0)
}

func (m *MockMailer) SendReplyFollowUp(lead *entity.Lead, calendlyLink string) error {
	args := m.Called(lead, calendlyLink)
	return args.Error(0)
}

func (m *MockMailer) SendPaymentLink(lead *entity.Lead, paymentURL string, amount int, currency string) error {
	args := m.Called(lead, paymentURL, amount, currency)
	return args.Error(0)
}

func (m *MockMailer) SendOnboarding(lead *entity.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

// MockSearchGateway
type MockSearchGateway struct {
	mock.Mock
}

func (m *MockSearchGateway) Search(ctx context.Context, country entity.Country, industry, revenue string) ([]*entity.Lead, error) {
	args := m.Called(ctx, country, industry, revenue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentLink(ctx context.Context, input PaymentLinkInput) (PaymentLink, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(PaymentLink), args.Error(1)
}

// staticSettings devolve sempre a mesma configuração nos testes.
type staticSettings struct {
	s config.Settings
}

func (st staticSettings) Settings() config.Settings { return st.s }

func testSettings() staticSettings {
	return staticSettings{s: config.Settings{
		FollowUpIntervalDays: 3,
		MaxFollowUps:         4,
		CalendlyLink:         "https://calendly.com/acme/30min",
		Pricing: cadence.PricingTiers{
			US:              cadence.Price{Standard: 2500, Premium: 3500, Enterprise: 5000},
			IN:              cadence.Price{Standard: 40000, Premium: 85000, Enterprise: 150000},
			SmallCompanyMax: 10,
			LargeCompanyMin: 100,
			SmallMultiplier: 0.9,
			LargeMultiplier: 1.2,
		},
	}}
}
