package config

import (
	"errors"
	"os"
)

// Config são as credenciais e endpoints fixos do processo, via .env.
// O que o usuário edita em runtime (cadência, preços, Calendly) mora
// nas Settings do viper, não aqui.
type Config struct {
	Port        string
	DatabaseURL string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	ApolloAPIKey  string
	ApolloBaseURL string

	StripeSecretKey   string
	RazorpayKeyID     string
	RazorpayKeySecret string

	// SMTP por mercado: Outlook pros leads US, Gmail pros IN.
	USSMTPHost string
	USSMTPPort int
	USSMTPUser string
	USSMTPPass string
	INSMTPHost string
	INSMTPPort int
	INSMTPUser string
	INSMTPPass string

	DashboardOrigin string
	SettingsFile    string
}

func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),

		ApolloAPIKey:  os.Getenv("APOLLO_API_KEY"),
		ApolloBaseURL: getEnv("APOLLO_URL", "https://api.apollo.io/v1"),

		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		USSMTPHost: getEnv("US_SMTP_HOST", "smtp-mail.outlook.com"),
		USSMTPPort: 587,
		USSMTPUser: os.Getenv("US_SMTP_USER"),
		USSMTPPass: os.Getenv("US_SMTP_PASS"),
		INSMTPHost: getEnv("IN_SMTP_HOST", "smtp.gmail.com"),
		INSMTPPort: 587,
		INSMTPUser: os.Getenv("IN_SMTP_USER"),
		INSMTPPass: os.Getenv("IN_SMTP_PASS"),

		DashboardOrigin: getEnv("DASHBOARD_ORIGIN", "http://localhost:5173"),
		SettingsFile:    getEnv("SETTINGS_FILE", "settings.yaml"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
