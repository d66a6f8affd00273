package cadence

import (
	"math"

	"github.com/xavierca1/leadrunner/internal/entity"
)

// Price são os três pacotes oferecidos, em unidades inteiras da moeda
// do mercado (dólares pra US, rúpias pra IN).
type Price struct {
	Standard   int `json:"standard"`
	Premium    int `json:"premium"`
	Enterprise int `json:"enterprise"`
}

// PricingTiers vem das settings: valores e cortes são configuração,
// não constantes escondidas.
type PricingTiers struct {
	US Price `json:"us" mapstructure:"us"`
	IN Price `json:"in" mapstructure:"in"`

	// Bandas de tamanho de empresa e os multiplicadores de cada uma.
	SmallCompanyMax int     `json:"small_company_max" mapstructure:"small_company_max"` // abaixo disso, desconto
	LargeCompanyMin int     `json:"large_company_min" mapstructure:"large_company_min"` // acima disso, premium
	SmallMultiplier float64 `json:"small_multiplier" mapstructure:"small_multiplier"`   // ex: 0.9
	LargeMultiplier float64 `json:"large_multiplier" mapstructure:"large_multiplier"`   // ex: 1.2
}

// SuggestPrice: lookup puro país + banda de tamanho -> três tiers.
// Com os defaults, US/150 funcionários dá {3000,4200,6000} e US/10 fica
// na base {2500,3500,5000}.
func SuggestPrice(country entity.Country, companySize int, tiers PricingTiers) Price {
	base := tiers.US
	if country == entity.CountryIN {
		base = tiers.IN
	}

	multiplier := 1.0
	if companySize > tiers.LargeCompanyMin {
		multiplier = tiers.LargeMultiplier
	} else if companySize < tiers.SmallCompanyMax {
		multiplier = tiers.SmallMultiplier
	}

	return Price{
		Standard:   scale(base.Standard, multiplier),
		Premium:    scale(base.Premium, multiplier),
		Enterprise: scale(base.Enterprise, multiplier),
	}
}

func scale(value int, multiplier float64) int {
	return int(math.Round(float64(value) * multiplier))
}
