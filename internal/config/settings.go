package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/xavierca1/leadrunner/internal/cadence"
)

// Settings são os ajustes que o dono da operação muda pelo dashboard:
// ritmo da cadência, tabela de preços e o link do Calendly.
type Settings struct {
	FollowUpIntervalDays int                  `json:"follow_up_interval_days" mapstructure:"follow_up_interval_days"`
	MaxFollowUps         int                  `json:"max_follow_ups" mapstructure:"max_follow_ups"`
	CalendlyLink         string               `json:"calendly_link" mapstructure:"calendly_link"`
	Pricing              cadence.PricingTiers `json:"pricing" mapstructure:"pricing"`
}

// Cadence converte as settings pro formato do engine.
func (s Settings) Cadence() cadence.Config {
	return cadence.Config{
		FollowUpInterval: time.Duration(s.FollowUpIntervalDays) * 24 * time.Hour,
		MaxFollowUps:     s.MaxFollowUps,
	}
}

func (s Settings) Validate() error {
	if s.FollowUpIntervalDays < 1 {
		return fmt.Errorf("follow_up_interval_days must be >= 1")
	}
	if s.MaxFollowUps < 1 {
		return fmt.Errorf("max_follow_ups must be >= 1")
	}
	return nil
}

// SettingsStore guarda as settings num yaml gerenciado pelo viper.
// Leitura é barata (cópia em memória); escrita regrava o arquivo.
type SettingsStore struct {
	mu      sync.RWMutex
	v       *viper.Viper
	current Settings
}

func OpenSettings(path string) (*SettingsStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults da operação original: 3 dias entre follow-ups, 4 tentativas.
	v.SetDefault("follow_up_interval_days", 3)
	v.SetDefault("max_follow_ups", 4)
	v.SetDefault("calendly_link", "https://calendly.com/yourusername/30min")
	v.SetDefault("pricing.us.standard", 2500)
	v.SetDefault("pricing.us.premium", 3500)
	v.SetDefault("pricing.us.enterprise", 5000)
	v.SetDefault("pricing.in.standard", 40000)
	v.SetDefault("pricing.in.premium", 85000)
	v.SetDefault("pricing.in.enterprise", 150000)
	v.SetDefault("pricing.small_company_max", 10)
	v.SetDefault("pricing.large_company_min", 100)
	v.SetDefault("pricing.small_multiplier", 0.9)
	v.SetDefault("pricing.large_multiplier", 1.2)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			// Primeiro boot: materializa os defaults no arquivo.
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("failed to write default settings: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &SettingsStore{v: v, current: s}, nil
}

func (st *SettingsStore) Settings() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Update valida, troca a cópia em memória e persiste no yaml.
func (st *SettingsStore) Update(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.v.Set("follow_up_interval_days", s.FollowUpIntervalDays)
	st.v.Set("max_follow_ups", s.MaxFollowUps)
	st.v.Set("calendly_link", s.CalendlyLink)
	st.v.Set("pricing.us.standard", s.Pricing.US.Standard)
	st.v.Set("pricing.us.premium", s.Pricing.US.Premium)
	st.v.Set("pricing.us.enterprise", s.Pricing.US.Enterprise)
	st.v.Set("pricing.in.standard", s.Pricing.IN.Standard)
	st.v.Set("pricing.in.premium", s.Pricing.IN.Premium)
	st.v.Set("pricing.in.enterprise", s.Pricing.IN.Enterprise)
	st.v.Set("pricing.small_company_max", s.Pricing.SmallCompanyMax)
	st.v.Set("pricing.large_company_min", s.Pricing.LargeCompanyMin)
	st.v.Set("pricing.small_multiplier", s.Pricing.SmallMultiplier)
	st.v.Set("pricing.large_multiplier", s.Pricing.LargeMultiplier)

	if err := st.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}

	st.current = s
	return nil
}
