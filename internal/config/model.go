// internal/config/model.go
//
// Typed settings model for the keyword engine.
//
// Context
// -------
// These fields define the shape of the configuration that
// `internal/config/loader.go` builds from four overlay layers (lowest
// precedence first):
//
//   • hard-coded defaults (this file),
//   • optional `conf/global.yaml`           – static baseline,
//   • `conf/.env.<environment>`            – dotenv file picked by ENV,
//   • process environment variables        – highest precedence.
//
// Any secret whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the model never
// stores Vault URIs—only plain strings.
//
// Validation happens immediately after the derived URLs are computed; the
// app fails fast if a production secret is missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`; derived fields carry `koanf:"-"` so no
//     source can set them directly.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// Environment tags
//

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

//
// Derived URL suffixes
//

const (
	suffixScraper     = "keyword-scraper"
	suffixSuggestions = "keyword-suggestions"
	suffixTrends      = "keyword-trends"
)

//
// Settings aggregate
//

// Settings is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Settings struct {
	// Identity.
	AppName    string `koanf:"app_name"    validate:"required"`
	Version    string `koanf:"version"     validate:"required"`
	DomainName string `koanf:"domain_name" validate:"required"`
	APIDomain  string `koanf:"api_domain"`
	APIPort    int    `koanf:"api_port"    validate:"required,min=1,max=65535"`

	// Connection.  Defaults to a constructed local development DSN.
	DatabaseURL string `koanf:"database_url" validate:"required"`

	// Secrets.  Optional in development; required in production (checked
	// by the secret rule table, not by struct tags).
	TelegramBotToken string `koanf:"telegram_bot_token"`
	ScraperAPIKey    string `koanf:"scraper_api_key"`

	// Mode.
	// Env is free-form; anything other than "production" is treated as a
	// non-production mode.
	Env   string `koanf:"env" validate:"required"`
	Debug bool   `koanf:"debug"`

	// CORS origin lists.  Configuration data only: nothing in this core
	// applies them to request handling; the API server owns that policy.
	AllowedOrigins           []string `koanf:"allowed_origins"`
	AllowedOriginsProduction []string `koanf:"allowed_origins_production"`

	// Derived API endpoints.  Always recomputed from APIDomain, never
	// settable from a source.
	KeywordScraperURL     string `koanf:"-"`
	KeywordSuggestionsURL string `koanf:"-"`
	TrendsURL             string `koanf:"-"`
}

// defaults returns a Settings pre-filled with the hard-coded development
// values.  The koanf overlay only overwrites keys a source actually sets.
func defaults() Settings {
	return Settings{
		AppName:        "Keyword Suggestion System",
		Version:        "1.0.0",
		DomainName:     "seokar.click",
		APIDomain:      "api.seokar.click",
		APIPort:        8000,
		DatabaseURL:    "keywords:keywords@tcp(localhost:3306)/keywords?parseTime=true",
		Env:            EnvDevelopment,
		AllowedOrigins: []string{"*"},
		AllowedOriginsProduction: []string{
			"https://seokar.click",
			"https://api.seokar.click",
		},
	}
}

// deriveAPIURLs recomputes the three endpoint URLs from APIDomain.  An
// empty domain leaves them unset; there is no synthetic fallback.
func (s *Settings) deriveAPIURLs() {
	if s.APIDomain == "" {
		s.KeywordScraperURL = ""
		s.KeywordSuggestionsURL = ""
		s.TrendsURL = ""
		return
	}
	base := "https://" + s.APIDomain + "/"
	s.KeywordScraperURL = base + suffixScraper
	s.KeywordSuggestionsURL = base + suffixSuggestions
	s.TrendsURL = base + suffixTrends
}

// IsProduction reports whether the production environment is active.
func (s *Settings) IsProduction() bool { return s.Env == EnvProduction }
