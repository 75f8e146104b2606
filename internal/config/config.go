package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultSMTPHost      = "smtp.gmail.com"
	defaultSMTPPort      = "587"
	defaultListenAddr    = ":5000"
	defaultFeatureConfig = "./data/booking.toml"
)

// Config holds infrastructure settings and secrets. It is built once at
// startup and shared read-only by every flow.
type Config struct {
	ListenAddr        string
	FeatureConfigPath string

	SessionSecret string

	AdminUsername string
	AdminPassword string

	SMTPHost      string
	SMTPPort      string
	MailUsername  string
	MailPassword  string
	MailFrom      string
	TestEmailOnly string

	// GoogleCredentials is the service-account JSON used for the ledger
	// spreadsheet and the optional calendar.
	GoogleCredentials []byte
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment variables.
func LoadWithFile(envFile string) (*Config, error) {
	// Attempt to load .env file if provided, but don't fail if it doesn't exist.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	mailUsername := os.Getenv("MAIL_USERNAME")
	mailPassword, err := secretFromEnv("MAIL_PASSWORD")
	if err != nil {
		return nil, err
	}
	credentials, err := googleCredentials()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenAddr:        getEnvOrDefault("LISTEN_ADDR", defaultListenAddr),
		FeatureConfigPath: getEnvOrDefault("FEATURE_CONFIG", defaultFeatureConfig),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		SMTPHost:          getEnvOrDefault("SMTP_HOST", defaultSMTPHost),
		SMTPPort:          getEnvOrDefault("SMTP_PORT", defaultSMTPPort),
		MailUsername:      mailUsername,
		MailPassword:      mailPassword,
		MailFrom:          getEnvOrDefault("MAIL_FROM", mailUsername),
		TestEmailOnly:     os.Getenv("TEST_EMAIL_ONLY"),
		GoogleCredentials: credentials,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required fields are set.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	return nil
}

// MailConfigured reports whether both mail credentials are present.
func (c *Config) MailConfigured() bool {
	return c.MailUsername != "" && c.MailPassword != ""
}

// secretFromEnv reads KEY, or the file named by KEY_FILE when set (Docker secrets).
func secretFromEnv(key string) (string, error) {
	if path := os.Getenv(key + "_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s_FILE: %w", key, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return os.Getenv(key), nil
}

func googleCredentials() ([]byte, error) {
	if blob := os.Getenv("GOOGLE_CREDENTIALS_JSON"); blob != "" {
		return []byte(blob), nil
	}
	path := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GOOGLE_CREDENTIALS_FILE: %w", err)
	}
	return data, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
