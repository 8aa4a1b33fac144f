package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "investify-pos", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, "0.1", cfg.Checkout.TaxRate.String())
	assert.Equal(t, time.Hour, cfg.Checkout.IdempotencyTTL)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "Idempotency-Key")
}

func TestLoadFile_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_ENV=production\nCHECKOUT_TAX_RATE=0.16\nPRINTER_TYPE=Network\nPRINTER_ADDRESS=10.0.0.9:9100\nCORS_ALLOWED_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_PORT", "9090")
	t.Setenv("OPERATOR_USERNAME", "alice")

	cfg := LoadFile(path)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "0.16", cfg.Checkout.TaxRate.String())
	assert.Equal(t, "network", cfg.Printer.Type)
	assert.Equal(t, "10.0.0.9:9100", cfg.Printer.Address)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "alice", cfg.Operator.Username)
}

func TestLoadFile_BadTaxRate(t *testing.T) {
	t.Setenv("CHECKOUT_TAX_RATE", "ten percent")

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, cfg.Checkout.TaxRate.IsNegative())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     string
		secret  string
		pin     string
		wantErr []string
	}{
		{name: "development keeps defaults", env: "development", secret: defaultJWTSecret, pin: defaultOperatorPIN},
		{name: "production with own values", env: "production", secret: "s3cr3t-from-vault", pin: "4821"},
		{name: "production default secret", env: "production", secret: defaultJWTSecret, pin: "4821", wantErr: []string{"JWT_SECRET"}},
		{name: "production empty secret", env: "Production", secret: "", pin: "4821", wantErr: []string{"JWT_SECRET"}},
		{name: "production default pin", env: "production", secret: "s3cr3t-from-vault", pin: defaultOperatorPIN, wantErr: []string{"OPERATOR_PIN"}},
		{name: "production both defaults", env: "production", secret: defaultJWTSecret, pin: defaultOperatorPIN, wantErr: []string{"JWT_SECRET", "OPERATOR_PIN"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{
				App:      AppConfig{Env: tt.env},
				JWT:      JWTConfig{Secret: tt.secret},
				Operator: OperatorConfig{PIN: tt.pin},
			}

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadFile_ProductionDefaultsFailValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, cfg.Validate())

	t.Setenv("JWT_SECRET", "rotated-secret")
	t.Setenv("OPERATOR_PIN", "7355")
	cfg = LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, cfg.Validate())
}
