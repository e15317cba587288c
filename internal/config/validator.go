// internal/config/validator.go
//
// Settings validation: struct tags plus the production-secret rule table.
//
// Context
// -------
// `internal/config/loader.go` calls `validateSettings` immediately after
// the derived URLs are computed.  Scalar shape checks (required fields,
// port range, env tag) ride on go-playground/validator tags; the
// environment-conditional secret checks live in an explicit table,
// evaluated in fixed order after all fields are populated, so the set of
// production-required secrets is visible in one place instead of being
// scattered across tags.
//
// The same table drives the loader's operator-visibility error lines and
// the redaction rule registration, so a secret is declared exactly once.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

//
// MissingSecretError
//

// MissingSecretError reports a secret field that is empty while the
// production environment is active.  Fatal during startup.
type MissingSecretError struct {
	Field string // settings key, e.g. "telegram_bot_token"
}

func (e *MissingSecretError) Error() string {
	return "config: " + e.Field + " must be set in the production environment"
}

// IsMissingSecret reports whether err is (or wraps) a MissingSecretError.
func IsMissingSecret(err error) bool {
	var mse *MissingSecretError
	return errors.As(err, &mse)
}

//
// Secret rule table
//

// secretRule declares one production-required secret: its settings key,
// the variable operators must set, the redaction placeholder, and an
// accessor.  Order here is the evaluation order.
type secretRule struct {
	field       string
	envVar      string
	placeholder string
	value       func(*Settings) string
}

var secretRules = []secretRule{
	{
		field:       "telegram_bot_token",
		envVar:      "TELEGRAM_BOT_TOKEN",
		placeholder: "***TELEGRAM_BOT_TOKEN***",
		value:       func(s *Settings) string { return s.TelegramBotToken },
	},
	{
		field:       "scraper_api_key",
		envVar:      "SCRAPER_API_KEY",
		placeholder: "***SCRAPER_API_KEY***",
		value:       func(s *Settings) string { return s.ScraperAPIKey },
	},
}

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// validation entry point
//

// validateSettings returns the first validation error, or nil on success.
// Secret rules only apply when the production environment is active.
func validateSettings(s *Settings) error {
	if err := v.Struct(s); err != nil {
		return err
	}
	if s.IsProduction() {
		for _, r := range secretRules {
			if r.value(s) == "" {
				return &MissingSecretError{Field: r.field}
			}
		}
	}
	return nil
}
