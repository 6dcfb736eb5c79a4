package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Event buses
const (
	EventBusNone  = "none"
	EventBusRedis = "redis"
	EventBusKafka = "kafka"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	SeedDemoData   bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	BalanceFloorPolicy domain.BalanceFloorPolicy
	OpeningBalance     decimal.Decimal

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "5-M"
	APIRateLimit       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	EventBus     string
	EventStream  string
	KafkaBrokers []string

	PosthogAPIKey   string
	PosthogEndpoint string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	RecaptchaSecretKey string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "payhub")
	v.SetDefault("BALANCE_FLOOR_POLICY", string(domain.BalanceFloorUnchecked))
	v.SetDefault("OPENING_BALANCE", "0.00")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EVENT_BUS", EventBusNone)
	v.SetDefault("EVENT_STREAM", "payhub.transactions")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("RECAPTCHA_SECRET_KEY", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Values are resolved in order: environment, .env, defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		SeedDemoData:       v.GetBool("SEED_DEMO_DATA"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		BalanceFloorPolicy: domain.BalanceFloorPolicy(strings.ToLower(v.GetString("BALANCE_FLOOR_POLICY"))),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		APIRateLimit:       v.GetString("API_RATE_LIMIT"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		EventBus:           strings.ToLower(v.GetString("EVENT_BUS")),
		EventStream:        v.GetString("EVENT_STREAM"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		RecaptchaSecretKey: v.GetString("RECAPTCHA_SECRET_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	openingBalance, err := decimal.NewFromString(v.GetString("OPENING_BALANCE"))
	if err != nil || openingBalance.IsNegative() {
		return nil, fmt.Errorf("OPENING_BALANCE must be a non-negative decimal, got %q", v.GetString("OPENING_BALANCE"))
	}
	cfg.OpeningBalance = openingBalance.Round(2)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}
	if cfg.RecaptchaSecretKey == "" {
		log.Println("Warning: RECAPTCHA_SECRET_KEY not set. reCAPTCHA tokens will not be verified.")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", c.StorageDriver, StoragePostgres, StorageMemory)
	}

	if !c.BalanceFloorPolicy.IsValid() {
		return fmt.Errorf("unknown BALANCE_FLOOR_POLICY %q (want %s or %s)", c.BalanceFloorPolicy, domain.BalanceFloorUnchecked, domain.BalanceFloorNonNegative)
	}

	switch c.EventBus {
	case EventBusNone:
	case EventBusRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when EVENT_BUS=%s", EventBusRedis)
		}
	case EventBusKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENT_BUS=%s", EventBusKafka)
		}
	default:
		return fmt.Errorf("unknown EVENT_BUS %q", c.EventBus)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.JWTSecret == defaultJWTSecret {
		if c.IsProduction {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
