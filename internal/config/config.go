package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Checkout  CheckoutConfig
	Printer   PrinterConfig
	Operator  OperatorConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type CheckoutConfig struct {
	TaxRate        decimal.Decimal
	StoreName      string
	IdempotencyTTL time.Duration // how long a replayable response is kept
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// OperatorConfig seeds the single cashier account of the terminal.
type OperatorConfig struct {
	Username string
	PIN      string
}

const (
	defaultJWTSecret   = "change-this-secret-in-production"
	defaultOperatorPIN = "0000"
)

// Load reads .env from the working directory, then the environment.
func Load() *Config {
	return LoadFile(".env")
}

// LoadFile reads configuration from path (if present) overlaid by environment variables.
func LoadFile(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: %s file not found, using environment variables: %v", path, err)
	}

	// Set defaults
	v.SetDefault("APP_NAME", "investify-pos")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,Idempotency-Key")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("CHECKOUT_TAX_RATE", "0.10")
	v.SetDefault("CHECKOUT_STORE_NAME", "Investify POS")
	v.SetDefault("IDEMPOTENCY_TTL_MINUTES", 60)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("OPERATOR_USERNAME", "cashier")
	v.SetDefault("OPERATOR_PIN", defaultOperatorPIN)

	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			Debug:    v.GetBool("APP_DEBUG"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Checkout: CheckoutConfig{
			TaxRate:        parseRate(v.GetString("CHECKOUT_TAX_RATE")),
			StoreName:      v.GetString("CHECKOUT_STORE_NAME"),
			IdempotencyTTL: time.Duration(v.GetInt("IDEMPOTENCY_TTL_MINUTES")) * time.Minute,
		},
		Printer: PrinterConfig{
			Type:    strings.ToLower(v.GetString("PRINTER_TYPE")),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Operator: OperatorConfig{
			Username: v.GetString("OPERATOR_USERNAME"),
			PIN:      v.GetString("OPERATOR_PIN"),
		},
	}
}

// Validate refuses to run production with the development JWT secret or
// operator PIN.
func (c *Config) Validate() error {
	if !c.App.IsProduction() {
		return nil
	}
	var errs []error
	if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.Operator.PIN == "" || c.Operator.PIN == defaultOperatorPIN {
		errs = append(errs, errors.New("OPERATOR_PIN must be changed from the default in production"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether the app runs in production mode.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseRate returns -1 for an unparsable rate so the ledger keeps its default.
func parseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NewFromInt(-1)
	}
	return d
}
