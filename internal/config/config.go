package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LLM     LLMConfig
	Server  ServerConfig
	Storage StorageConfig
	Email   EmailConfig
}

type LLMConfig struct {
	// API key for the Gemini backend, shared by the genkit flows and the
	// grounded search client.
	APIKey string
	// Model for analysis and synthesis flows, genkit-qualified
	// (e.g. "googleai/gemini-2.5-flash").
	Model string
	// Model for grounded search calls, bare Gemini name.
	SearchModel string
}

type ServerConfig struct {
	ListenAddr string
}

type StorageConfig struct {
	DatabaseURL string
	// DemoMode selects the fixture data source instead of Postgres.
	DemoMode bool
}

type EmailConfig struct {
	APIKey string
	Sender string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// Load reads .env (if present) and the environment. GEMINI_API_KEY is
// required; DATABASE_URL is required unless demo mode is enabled.
func Load() (*Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		LLM: LLMConfig{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       getEnvOrDefault("LLM_MODEL", "googleai/gemini-2.5-flash"),
			SearchModel: getEnvOrDefault("LLM_SEARCH_MODEL", "gemini-2.5-flash"),
		},
		Server: ServerConfig{
			ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":8080"),
		},
		Storage: StorageConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			DemoMode:    getEnvBool("DEMO_MODE"),
		},
		Email: EmailConfig{
			APIKey: os.Getenv("RESEND_API_KEY"),
			Sender: getEnvOrDefault("EMAIL_SENDER", "LeakScope Reports <onboarding@resend.dev>"),
		},
	}

	if cfg.LLM.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required but not set")
	}
	if !cfg.Storage.DemoMode && cfg.Storage.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required unless DEMO_MODE=true")
	}

	return cfg, nil
}
