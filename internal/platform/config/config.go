package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	MigrationsPath string

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration
	// RateAdminIDs are the token subjects allowed to create and refresh rates. Empty disables rate administration over HTTP.
	RateAdminIDs []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateCacheKey  string
	RateCacheTTL  time.Duration

	RateRefreshInterval time.Duration
	// LiveRateMaxAge is how long a rate read from the database counts as live.
	LiveRateMaxAge time.Duration
	FallbackRate        domain.ConversionRate
	Precision           *utils.PrecisionTable
	BalanceDisplayOrder []domain.CurrencyCode

	WithdrawalRateLimit string
	CORSAllowedOrigins  []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "merchant-payments")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("RATE_ADMIN_IDS", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_CACHE_KEY", "merchant_payments:conversion_rates")
	v.SetDefault("RATE_CACHE_TTL", "0s")
	v.SetDefault("RATE_REFRESH_INTERVAL", "15m")
	v.SetDefault("LIVE_RATE_MAX_AGE", "30s")
	v.SetDefault("FALLBACK_RATE_FROM", "XOF")
	v.SetDefault("FALLBACK_RATE_TO", "USD")
	v.SetDefault("FALLBACK_RATE", "0.00165")
	v.SetDefault("FALLBACK_INVERSE_RATE", "605")
	v.SetDefault("CURRENCY_PRECISION", utils.DefaultPrecisionSpec)
	v.SetDefault("BALANCE_DISPLAY_ORDER", "XOF,USD")
	v.SetDefault("WITHDRAWAL_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		RateAdminIDs:        splitList(v.GetString("RATE_ADMIN_IDS")),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		RateCacheKey:        v.GetString("RATE_CACHE_KEY"),
		WithdrawalRateLimit: v.GetString("WITHDRAWAL_RATE_LIMIT"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if len(cfg.RateAdminIDs) == 0 {
		log.Println("Warning: RATE_ADMIN_IDS not set. Rate administration endpoints will reject every caller.")
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RateCacheTTL = durationOrDefault(v, "RATE_CACHE_TTL", 0)
	cfg.RateRefreshInterval = durationOrDefault(v, "RATE_REFRESH_INTERVAL", 15*time.Minute)
	cfg.LiveRateMaxAge = durationOrDefault(v, "LIVE_RATE_MAX_AGE", 30*time.Second)

	fallback, err := parseFallbackRate(v)
	if err != nil {
		return nil, err
	}
	cfg.FallbackRate = fallback

	precision, err := utils.ParsePrecisionTable(v.GetString("CURRENCY_PRECISION"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_PRECISION: %w", err)
	}
	cfg.Precision = precision

	for _, code := range splitList(v.GetString("BALANCE_DISPLAY_ORDER")) {
		cc := domain.NormalizeCurrencyCode(code)
		if !cc.IsWellFormed() {
			return nil, fmt.Errorf("invalid BALANCE_DISPLAY_ORDER entry %q", code)
		}
		cfg.BalanceDisplayOrder = append(cfg.BalanceDisplayOrder, cc)
	}

	return cfg, nil
}

func parseFallbackRate(v *viper.Viper) (domain.ConversionRate, error) {
	from := domain.NormalizeCurrencyCode(v.GetString("FALLBACK_RATE_FROM"))
	to := domain.NormalizeCurrencyCode(v.GetString("FALLBACK_RATE_TO"))
	if !from.IsWellFormed() || !to.IsWellFormed() || from == to {
		return domain.ConversionRate{}, fmt.Errorf("invalid fallback pair %q/%q", from, to)
	}
	rate, err := decimal.NewFromString(v.GetString("FALLBACK_RATE"))
	if err != nil || !rate.IsPositive() {
		return domain.ConversionRate{}, fmt.Errorf("FALLBACK_RATE must be a positive decimal")
	}
	inverse, err := decimal.NewFromString(v.GetString("FALLBACK_INVERSE_RATE"))
	if err != nil || !inverse.IsPositive() {
		return domain.ConversionRate{}, fmt.Errorf("FALLBACK_INVERSE_RATE must be a positive decimal")
	}
	return domain.ConversionRate{
		ID:           "fallback-" + strings.ToLower(string(from)) + "-" + strings.ToLower(string(to)),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		InverseRate:  inverse,
	}, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
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
