package api

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	PaymentBaseURL   string
	PaymentSecretKey string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	AdminEmail   string
}

// LoadConfig reads environment variables and applies defaults. A .env file
// in the working directory is loaded first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),

		PaymentBaseURL:   envDefault("PAYMENT_BASE_URL", "https://api.stripe.com"),
		PaymentSecretKey: strings.TrimSpace(os.Getenv("PAYMENT_SECRET_KEY")),

		LLMBaseURL: envDefault("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:  strings.TrimSpace(os.Getenv("LLM_API_KEY")),
		LLMModel:   envDefault("LLM_MODEL", "gpt-4o-mini"),

		SMTPHost:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:     envDefault("SMTP_PORT", "587"),
		SMTPUsername: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		SMTPPassword: strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
		EmailFrom:    envDefault("EMAIL_FROM", "orders@cabinetworks.example"),
		AdminEmail:   strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
