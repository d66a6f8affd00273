package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Country string

const (
	CountryUS Country = "US"
	CountryIN Country = "IN"
)

func (c Country) Valid() bool {
	return c == CountryUS || c == CountryIN
}

// Currency retorna a moeda de cobrança do mercado.
func (c Country) Currency() string {
	if c == CountryIN {
		return "INR"
	}
	return "USD"
}

// Status é o estado do lead no funil. Tipo fechado: qualquer transição
// fora da tabela do cadence engine é rejeitada.
type Status string

const (
	StatusNew                Status = "New"
	StatusInitialContact     Status = "Initial Contact"
	StatusFollowUp           Status = "Follow-up"
	StatusReplied            Status = "Replied"
	StatusCallRequested      Status = "Call Requested"
	StatusCallScheduled      Status = "Call Scheduled"
	StatusCallCompleted      Status = "Call Completed"
	StatusPaymentLinkSent    Status = "Payment Link Sent"
	StatusPaymentLinkClicked Status = "Payment Link Clicked"
	StatusPaymentReceived    Status = "Payment Received"
	StatusOnboarding         Status = "Onboarding"
	StatusNoResponse         Status = "No Response"
)

var allStatuses = []Status{
	StatusNew, StatusInitialContact, StatusFollowUp, StatusReplied,
	StatusCallRequested, StatusCallScheduled, StatusCallCompleted,
	StatusPaymentLinkSent, StatusPaymentLinkClicked, StatusPaymentReceived,
	StatusOnboarding, StatusNoResponse,
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal: nenhuma ação automática parte daqui.
// Positivo (pagou/onboarding) ou negativo (No Response).
func (s Status) Terminal() bool {
	switch s {
	case StatusPaymentReceived, StatusOnboarding, StatusNoResponse:
		return true
	}
	return false
}

// CadenceActive: o sweep de follow-up ainda olha pra esse lead.
// De Replied em diante a cadência fica congelada.
func (s Status) CadenceActive() bool {
	switch s {
	case StatusNew, StatusInitialContact, StatusFollowUp:
		return true
	}
	return false
}

// InboundEvent é o que o mundo externo nos conta sobre o lead
// (resposta de email, webhook de pagamento, agenda).
type InboundEvent string

const (
	EventReplied            InboundEvent = "Replied"
	EventCallRequested      InboundEvent = "CallRequested"
	EventCallScheduled      InboundEvent = "CallScheduled"
	EventCallCompleted      InboundEvent = "CallCompleted"
	EventPaymentLinkClicked InboundEvent = "PaymentLinkClicked"
	EventPaymentReceived    InboundEvent = "PaymentReceived"
)

func (e InboundEvent) Valid() bool {
	switch e {
	case EventReplied, EventCallRequested, EventCallScheduled,
		EventCallCompleted, EventPaymentLinkClicked, EventPaymentReceived:
		return true
	}
	return false
}

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrLeadNotFound      = errors.New("lead not found")

	// ErrVersionConflict: outro sweep/evento gravou o lead primeiro.
	// Releia e tente de novo, ou deixe pro próximo tick.
	ErrVersionConflict = errors.New("lead version conflict")
)

type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Company       string     `json:"company"`
	Title         string     `json:"title,omitempty"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Industry      string     `json:"industry,omitempty"`
	CompanySize   int        `json:"company_size"`
	Country       Country    `json:"country"`
	Status        Status     `json:"status"`
	ContactCount  int        `json:"contact_count"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	LastInboundAt *time.Time `json:"last_inbound_at,omitempty"`
	Notes         string     `json:"notes"`
	Source        string     `json:"source,omitempty"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Factory
func NewLead(name, company, email string, country Country) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Company:   company,
		Email:     email,
		Country:   country,
		Status:    StatusNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return errors.New("email is required")
	}
	if !l.Country.Valid() {
		return errors.New("country must be US or IN")
	}
	if !l.Status.Valid() {
		return errors.New("unknown status")
	}
	return nil
}

// FirstName é usado na personalização dos templates de email.
func (l *Lead) FirstName() string {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return "there"
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// AppendNote mantém o histórico append-only no campo notes.
func (l *Lead) AppendNote(at time.Time, note string) {
	if note == "" {
		return
	}
	line := fmt.Sprintf("[%s] %s", at.UTC().Format("2006-01-02 15:04"), note)
	if l.Notes == "" {
		l.Notes = line
		return
	}
	l.Notes = l.Notes + "\n" + line
}

type LeadFilter struct {
	Country Country
	Status  Status
	IDs     []string
}

type StatusCount struct {
	Country Country `json:"country"`
	Status  Status  `json:"status"`
	Count   int     `json:"count"`
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)

	// ListCadenceActive retorna só os leads que o sweep ainda considera.
	ListCadenceActive(ctx context.Context) ([]*Lead, error)

	// Save grava com lock otimista: compara Version e incrementa.
	// Retorna ErrVersionConflict se alguém gravou antes.
	Save(ctx context.Context, lead *Lead) error

	StatusCounts(ctx context.Context) ([]StatusCount, error)
}
