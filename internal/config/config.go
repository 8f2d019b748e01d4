package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv           string
	InputPath        string
	LogFormat        string
	LogLevel         string
	MetricsAddr      string
	MetricsNamespace string
	AuditEnabled     bool
	AuditLogPath     string

	DiscountBaseRate decimal.Decimal
	BonusCategories  []string
	MaxDiscount      decimal.Decimal
	TaxRate          decimal.Decimal
	ShippingBase     decimal.Decimal
	ShippingPerItem  decimal.Decimal
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		InputPath:        valueOrDefault(k.String("ORDERS_INPUT_PATH"), "data/orders.csv"),
		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "console"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsAddr:      strings.TrimSpace(k.String("OBS_METRICS_ADDR")),
		MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "toyland"),
		AuditEnabled:     parseBool(valueOrDefault(k.String("AUDIT_ENABLED"), "true")),
		AuditLogPath:     valueOrDefault(k.String("AUDIT_LOG_PATH"), "logs/audit.jsonl"),
		BonusCategories:  splitAndTrim(valueOrDefault(k.String("DISCOUNT_BONUS_CATEGORIES"), "RC,ROBOT")),
	}

	var err error
	if cfg.DiscountBaseRate, err = parseDecimal(k.String("DISCOUNT_BASE_RATE"), "0.15"); err != nil {
		return nil, fmt.Errorf("DISCOUNT_BASE_RATE: %w", err)
	}
	if cfg.MaxDiscount, err = parseDecimal(k.String("DISCOUNT_MAX_RATE"), "0.25"); err != nil {
		return nil, fmt.Errorf("DISCOUNT_MAX_RATE: %w", err)
	}
	if cfg.TaxRate, err = parseDecimal(k.String("TAX_RATE"), "0.08"); err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}
	if cfg.ShippingBase, err = parseDecimal(k.String("SHIPPING_BASE_RATE"), "5.99"); err != nil {
		return nil, fmt.Errorf("SHIPPING_BASE_RATE: %w", err)
	}
	if cfg.ShippingPerItem, err = parseDecimal(k.String("SHIPPING_PER_ITEM"), "1.50"); err != nil {
		return nil, fmt.Errorf("SHIPPING_PER_ITEM: %w", err)
	}

	if err := validateRate("DISCOUNT_BASE_RATE", cfg.DiscountBaseRate); err != nil {
		return nil, err
	}
	if err := validateRate("DISCOUNT_MAX_RATE", cfg.MaxDiscount); err != nil {
		return nil, err
	}
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("TAX_RATE must not be negative, got %s", cfg.TaxRate)
	}
	if cfg.ShippingBase.IsNegative() || cfg.ShippingPerItem.IsNegative() {
		return nil, fmt.Errorf("shipping rates must not be negative")
	}

	return cfg, nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be within [0,1], got %s", name, rate)
	}
	return nil
}

func parseDecimal(value, def string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = def
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q", trimmed)
	}
	return parsed, nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func valueOrDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
