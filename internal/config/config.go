package config

import (
	"encoding/hex"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// csrfKeyLength is the key size gorilla/csrf expects.
const csrfKeyLength = 32

type (
	Config struct {
		HTTP
		Global
		Database
		Mongo
		UI
		Security
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		Environment              string
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver string // "sqlite" or "mongo"
		Path   string
		Debug  bool // Log every SQL statement
	}
	Mongo struct {
		URI      string
		Database string
	}
	UI struct {
		// Empty paths serve the views and assets embedded in the binary.
		TemplatesPath string
		StaticPath    string
	}
	Security struct {
		CSRFSecret      string // 32 bytes, raw or hex encoded. Empty disables CSRF checks
		SecureCookies   bool   // Set to false for local dev without HTTPS
		SessionLifetime time.Duration

		// Per-IP limit on form submissions; zero disables it
		FormRateLimit float64
		FormRateBurst int
	}
)

func NewConfig() *Config {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("environment", "development")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_debug", false)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "locallibrary")
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	// Security defaults
	v.SetDefault("csrf_secret", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("form_rate_limit", 5)
	v.SetDefault("form_rate_burst", 10)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Environment:              v.GetString("ENVIRONMENT"),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
			Debug:  v.GetBool("DATABASE_DEBUG"),
		},
		Mongo: Mongo{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Security: Security{
			CSRFSecret:      v.GetString("CSRF_SECRET"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
			FormRateLimit:   v.GetFloat64("FORM_RATE_LIMIT"),
			FormRateBurst:   v.GetInt("FORM_RATE_BURST"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// CSRFKey decodes CSRFSecret. It returns nil when no secret is configured.
func (s Security) CSRFKey() ([]byte, error) {
	if s.CSRFSecret == "" {
		return nil, nil
	}
	if key, err := hex.DecodeString(s.CSRFSecret); err == nil && len(key) == csrfKeyLength {
		return key, nil
	}
	if len(s.CSRFSecret) == csrfKeyLength {
		return []byte(s.CSRFSecret), nil
	}
	return nil, errors.Errorf("CSRF_SECRET must be %d bytes or %d hex characters", csrfKeyLength, 2*csrfKeyLength)
}

// Validate reports settings that would make the server fail later.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return errors.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver)
	}
	if _, err := c.CSRFKey(); err != nil {
		return err
	}
	if c.FormRateLimit < 0 || c.FormRateBurst < 0 {
		return errors.New("form rate limit settings must not be negative")
	}
	return nil
}
