package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type FunnelCounts struct {
	Total    int                   `json:"total"`
	ByStatus map[entity.Status]int `json:"by_status"`
}

type AnalyticsData struct {
	USLeads    FunnelCounts                `json:"us_leads"`
	IndiaLeads FunnelCounts                `json:"india_leads"`
	Revenue    []entity.RevenueByCurrency  `json:"revenue"`
}

type CountryMetrics struct {
	ReplyRate      float64 `json:"reply_rate"`
	CallRate       float64 `json:"call_rate"`
	PaymentRate    float64 `json:"payment_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

type AnalyticsMetrics struct {
	Overall   CountryMetrics                    `json:"overall"`
	ByCountry map[entity.Country]CountryMetrics `json:"by_country"`
}

type Suggestion struct {
	Type       string `json:"type"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

type AnalyticsOutput struct {
	Data        AnalyticsData    `json:"data"`
	Metrics     AnalyticsMetrics `json:"metrics"`
	Suggestions []Suggestion     `json:"suggestions"`
	Timestamp   string           `json:"timestamp"`
}

// AnalyticsUseCase monta os números do funil pro dashboard: contagens
// por status e país, taxas derivadas e as dicas de otimização.
type AnalyticsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	DealRepo entity.DealRepositoryInterface

	Now func() time.Time
}

func NewAnalyticsUseCase(leadRepo entity.LeadRepositoryInterface, dealRepo entity.DealRepositoryInterface) *AnalyticsUseCase {
	return &AnalyticsUseCase{LeadRepo: leadRepo, DealRepo: dealRepo, Now: time.Now}
}

func (uc *AnalyticsUseCase) Execute(ctx context.Context) (*AnalyticsOutput, error) {
	counts, err := uc.LeadRepo.StatusCounts(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate leads: " + err.Error()}
	}

	revenue, err := uc.DealRepo.Revenue(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate revenue: " + err.Error()}
	}

	data := AnalyticsData{
		USLeads:    FunnelCounts{ByStatus: map[entity.Status]int{}},
		IndiaLeads: FunnelCounts{ByStatus: map[entity.Status]int{}},
		Revenue:    revenue,
	}

	for _, c := range counts {
		switch c.Country {
		case entity.CountryUS:
			data.USLeads.Total += c.Count
			data.USLeads.ByStatus[c.Status] += c.Count
		case entity.CountryIN:
			data.IndiaLeads.Total += c.Count
			data.IndiaLeads.ByStatus[c.Status] += c.Count
		}
	}

	metrics := AnalyticsMetrics{
		ByCountry: map[entity.Country]CountryMetrics{
			entity.CountryUS: countryMetrics(data.USLeads),
			entity.CountryIN: countryMetrics(data.IndiaLeads),
		},
	}
	metrics.Overall = countryMetrics(merge(data.USLeads, data.IndiaLeads))

	return &AnalyticsOutput{
		Data:        data,
		Metrics:     metrics,
		Suggestions: buildSuggestions(data, metrics),
		Timestamp:   uc.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

func merge(a, b FunnelCounts) FunnelCounts {
	out := FunnelCounts{Total: a.Total + b.Total, ByStatus: map[entity.Status]int{}}
	for s, n := range a.ByStatus {
		out.ByStatus[s] += n
	}
	for s, n := range b.ByStatus {
		out.ByStatus[s] += n
	}
	return out
}

func countryMetrics(c FunnelCounts) CountryMetrics {
	if c.Total == 0 {
		return CountryMetrics{}
	}
	return CountryMetrics{
		ReplyRate: percentage(
			c.ByStatus[entity.StatusReplied]+c.ByStatus[entity.StatusCallRequested],
			c.Total,
		),
		CallRate: percentage(
			c.ByStatus[entity.StatusCallRequested]+c.ByStatus[entity.StatusCallScheduled],
			c.Total,
		),
		PaymentRate: percentage(
			c.ByStatus[entity.StatusPaymentLinkSent]+c.ByStatus[entity.StatusPaymentReceived],
			c.Total,
		),
		ConversionRate: percentage(
			c.ByStatus[entity.StatusPaymentReceived]+c.ByStatus[entity.StatusOnboarding],
			c.Total,
		),
	}
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

// Regras de sugestão herdadas da operação: limiares fixos sobre as
// taxas do funil e o volume por mercado.
func buildSuggestions(data AnalyticsData, metrics AnalyticsMetrics) []Suggestion {
	var out []Suggestion

	if metrics.Overall.ConversionRate > 0 && metrics.Overall.ConversionRate < 5 {
		out = append(out, Suggestion{
			Type:       "funnel",
			Priority:   "high",
			Suggestion: "Your overall conversion rate is below 5%. Consider revising your entire funnel, starting with initial outreach messaging and call process.",
		})
	}

	us := metrics.ByCountry[entity.CountryUS]
	in := metrics.ByCountry[entity.CountryIN]
	if data.USLeads.Total > 0 && data.IndiaLeads.Total > 0 {
		diff := us.ConversionRate - in.ConversionRate
		if math.Abs(diff) > 10 {
			better, worse := "US", "India"
			if diff < 0 {
				better, worse = "India", "US"
			}
			out = append(out, Suggestion{
				Type:     "market",
				Priority: "medium",
				Suggestion: fmt.Sprintf(
					"%s leads are converting %.1f%% better than %s leads. Review messaging and pricing strategy for %s.",
					better, math.Abs(diff), worse, worse,
				),
			})
		}
	}

	total := merge(data.USLeads, data.IndiaLeads)
	paid := total.ByStatus[entity.StatusPaymentReceived] + total.ByStatus[entity.StatusOnboarding]
	linked := paid + total.ByStatus[entity.StatusPaymentLinkSent] + total.ByStatus[entity.StatusPaymentLinkClicked]
	if linked > 0 && percentage(paid, linked) < 30 {
		out = append(out, Suggestion{
			Type:       "payment",
			Priority:   "medium",
			Suggestion: "Less than 30% of payment links convert to payments. Consider revisiting your pricing or offering payment plans.",
		})
	}

	if metrics.Overall.ReplyRate > 0 && metrics.Overall.ReplyRate < 10 {
		out = append(out, Suggestion{
			Type:       "outreach",
			Priority:   "high",
			Suggestion: "Your email reply rate is below 10%. Test new subject lines and email content to increase engagement.",
		})
	}

	if data.USLeads.Total > 0 && data.USLeads.Total < 20 {
		out = append(out, Suggestion{
			Type:       "volume",
			Priority:   "low",
			Suggestion: "You have fewer than 20 US leads. Increase your lead generation efforts for this market.",
		})
	}
	if data.IndiaLeads.Total > 0 && data.IndiaLeads.Total < 20 {
		out = append(out, Suggestion{
			Type:       "volume",
			Priority:   "low",
			Suggestion: "You have fewer than 20 India leads. Increase your lead generation efforts for this market.",
		})
	}

	return out
}
