package mail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type SMTPAccount struct {
	Host     string
	Port     int
	User     string
	Password string
}

// EmailSender roteia o SMTP pelo mercado do lead: relay Outlook pros
// leads US, Gmail pros IN.
type EmailSender struct {
	US SMTPAccount
	IN SMTPAccount

	retry retryConfig

	// dial é trocável nos testes pra não abrir socket de verdade.
	dial func(account SMTPAccount, m *gomail.Message) error
}

func NewEmailSender(us, in SMTPAccount) *EmailSender {
	return &EmailSender{
		US:    us,
		IN:    in,
		retry: defaultRetry(),
		dial: func(account SMTPAccount, m *gomail.Message) error {
			d := gomail.NewDialer(account.Host, account.Port, account.User, account.Password)
			return d.DialAndSend(m)
		},
	}
}

func (s *EmailSender) SendSequence(lead *entity.Lead, templateID string) error {
	return s.send(lead, templateID, templateData{
		FirstName: lead.FirstName(),
		Company:   lead.Company,
		Country:   string(lead.Country),
		Industry:  lead.Industry,
	})
}

func (s *EmailSender) SendReplyFollowUp(lead *entity.Lead, calendlyLink string) error {
	return s.send(lead, "reply_follow_up", templateData{
		FirstName:    lead.FirstName(),
		Company:      lead.Company,
		CalendlyLink: calendlyLink,
	})
}

func (s *EmailSender) SendPaymentLink(lead *entity.Lead, paymentURL string, amount int, currency string) error {
	return s.send(lead, "payment_link", templateData{
		FirstName:  lead.FirstName(),
		Company:    lead.Company,
		Amount:     amount,
		Currency:   currency,
		PaymentURL: paymentURL,
	})
}

func (s *EmailSender) SendOnboarding(lead *entity.Lead) error {
	return s.send(lead, "onboarding", templateData{
		FirstName: lead.FirstName(),
		Company:   lead.Company,
	})
}

func (s *EmailSender) send(lead *entity.Lead, templateID string, data templateData) error {
	subject, body, err := renderTemplate(templateID, lead.Country, data)
	if err != nil {
		return err
	}

	account := s.account(lead.Country)

	m := gomail.NewMessage()
	m.SetHeader("From", account.User)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	// SMTP cai à toa; tenta de novo com backoff antes de reportar
	// falha pro tick (que vai retentar no próximo sweep de toda forma).
	return withRetry(s.retry, func() error {
		return s.dial(account, m)
	})
}

func (s *EmailSender) account(country entity.Country) SMTPAccount {
	if country == entity.CountryIN {
		return s.IN
	}
	return s.US
}

func renderTemplate(templateID string, country entity.Country, data templateData) (string, string, error) {
	variants, ok := sequenceTemplates[templateID]
	if !ok {
		// max_follow_ups é configurável e pode passar do conjunto de
		// templates; um follow-up além do último reaproveita o final
		// pra sequência nunca travar sem enviar.
		if strings.HasPrefix(templateID, "follow_up_") {
			variants = sequenceTemplates[lastFollowUpTemplate]
		} else {
			return "", "", fmt.Errorf("unknown email template %q", templateID)
		}
	}

	variantKey := "us"
	if country == entity.CountryIN {
		variantKey = "india"
	}
	tmpl, ok := variants[variantKey]
	if !ok {
		tmpl = variants["us"]
	}

	subject, err := render(templateID+"_subject", tmpl.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err := render(templateID+"_body", tmpl.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func render(name, text string, data templateData) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
