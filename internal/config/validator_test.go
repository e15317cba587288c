// internal/config/validator_test.go
//
// Unit-tests for settings validation, in particular the
// production-secret rule table.
//
// Run: go test ./internal/config -v

package config

import (
	"errors"
	"testing"
)

func TestSecretValidation(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		botToken  string
		apiKey    string
		wantErr   bool
		wantField string
	}{
		{name: "development without secrets", env: EnvDevelopment},
		{name: "development with secrets", env: EnvDevelopment, botToken: "t", apiKey: "k"},
		{name: "staging without secrets", env: "staging"},
		{name: "production with secrets", env: EnvProduction, botToken: "t", apiKey: "k"},
		{
			name: "production missing bot token", env: EnvProduction, apiKey: "k",
			wantErr: true, wantField: "telegram_bot_token",
		},
		{
			name: "production missing api key", env: EnvProduction, botToken: "t",
			wantErr: true, wantField: "scraper_api_key",
		},
		{
			name: "production missing both reports first rule", env: EnvProduction,
			wantErr: true, wantField: "telegram_bot_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaults()
			s.Env = tt.env
			s.TelegramBotToken = tt.botToken
			s.ScraperAPIKey = tt.apiKey
			s.deriveAPIURLs()

			err := validateSettings(&s)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("validateSettings: %v", err)
				}
				return
			}

			var mse *MissingSecretError
			if !errors.As(err, &mse) {
				t.Fatalf("error = %v, want MissingSecretError", err)
			}
			if mse.Field != tt.wantField {
				t.Fatalf("missing field = %q, want %q", mse.Field, tt.wantField)
			}
			if !IsMissingSecret(err) {
				t.Fatal("IsMissingSecret must match the returned error")
			}
		})
	}
}

func TestScalarValidation(t *testing.T) {
	s := defaults()
	s.APIPort = 0
	s.deriveAPIURLs()
	if err := validateSettings(&s); err == nil {
		t.Fatal("port 0 must fail validation")
	}

	s = defaults()
	s.DatabaseURL = ""
	s.deriveAPIURLs()
	if err := validateSettings(&s); err == nil {
		t.Fatal("empty database url must fail validation")
	}
}

func TestSecretRuleTableOrder(t *testing.T) {
	// The table drives error reporting, operator hints, and redaction
	// placeholders; its order and contents are part of the contract.
	if len(secretRules) != 2 {
		t.Fatalf("secret rules = %d, want 2", len(secretRules))
	}
	if secretRules[0].field != "telegram_bot_token" || secretRules[1].field != "scraper_api_key" {
		t.Fatalf("unexpected rule order: %q, %q", secretRules[0].field, secretRules[1].field)
	}
	if secretRules[0].placeholder != "***TELEGRAM_BOT_TOKEN***" {
		t.Fatalf("bot token placeholder = %q", secretRules[0].placeholder)
	}
	if secretRules[1].placeholder != "***SCRAPER_API_KEY***" {
		t.Fatalf("api key placeholder = %q", secretRules[1].placeholder)
	}
}
