package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend API
	APIBaseURL            string `mapstructure:"API_BASE_URL"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	RetryCount            int    `mapstructure:"RETRY_COUNT"`
	RetryWaitSeconds      int    `mapstructure:"RETRY_WAIT_SECONDS"`

	// Session
	CredentialsPath string `mapstructure:"CREDENTIALS_PATH"`

	// Local time zone for day/month boundaries
	Timezone string `mapstructure:"TIMEZONE"`

	// Reports
	ReportDir     string `mapstructure:"REPORT_DIR"`
	ReportEmailTo string `mapstructure:"REPORT_EMAIL_TO"`

	// SMTP (turn-close report mail; disabled when host is empty)
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	Env string `mapstructure:"APP_ENV"` // development | production
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("API_BASE_URL", "https://motel1.click/api")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("RETRY_COUNT", 3)
	viper.SetDefault("RETRY_WAIT_SECONDS", 1)
	viper.SetDefault("CREDENTIALS_PATH", defaultCredentialsPath())
	viper.SetDefault("TIMEZONE", "America/Hermosillo")
	viper.SetDefault("REPORT_DIR", filepath.Join(os.TempDir(), "motel1", "reportes"))
	viper.SetDefault("REPORT_EMAIL_TO", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("APP_ENV", "development")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestTimeout returns the blanket per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) RetryWait() time.Duration {
	return time.Duration(c.RetryWaitSeconds) * time.Second
}

// Location resolves the configured time zone, falling back to local time.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "motel1", "credentials.json")
}
