// internal/config/loader.go
//
// Settings loader: layered construction with a process-wide init-once
// guard.
//
/*
Context
--------
`Load()` builds one immutable `Settings` struct from four layers (highest
precedence last):

  1. Hard-coded defaults (model.go).
  2. Optional `conf/global.yaml`.
  3. The dotenv file picked by ENV — `conf/.env.production` or
     `conf/.env.development` (applied to the process env, non-overriding).
  4. Process environment variables, matched case-insensitively
     (e.g., `DATABASE_URL → database_url`).

After merging, secrets written as `vault:…` are resolved, the derived API
URLs are computed, and the result is validated.  The first construction —
success or failure — is final: `Load()` runs under a sync.Once, caches the
instance in an `atomic.Pointer`, and every later call returns the same
pointer (or the original error).  No caller ever observes a
half-constructed Settings.

Side effects on success
-----------------------
  • Global log level: debug in development, info otherwise.
  • Redaction rules registered for every secret in the rule table, with
    write-time lookups into the live singleton.
  • One INFO line per non-secret field.
  • In production, one ERROR line per missing secret.  This is a second,
    softer check for operator visibility; the hard failure already
    happened during validation, and the same lines are emitted on the
    failure path before the error propagates.

Notes
-----
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/seokar/keyword-engine/internal/logger"
	"github.com/seokar/keyword-engine/internal/metrics"
	"github.com/seokar/keyword-engine/internal/vault"
)

var (
	once    sync.Once
	current atomic.Pointer[Settings]
	loadErr error
)

/*─────────────────────────────── public API ───────────────────────────────*/

// Load constructs the process-wide Settings exactly once.  Subsequent
// calls return the cached instance, or the original construction error —
// never a retry-built one.
func Load() (*Settings, error) {
	once.Do(func() {
		s, err := load(rootDir())
		if err != nil {
			metrics.SettingsLoadErrorsTotal.Inc()
			loadErr = err
			return
		}
		current.Store(s)
		metrics.SettingsLoadTotal.Inc()
		install(s)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return current.Load(), nil
}

// Get returns the cached Settings, or nil before Load has succeeded.
func Get() *Settings { return current.Load() }

/*─────────────────────────────── construction ─────────────────────────────*/

// load builds and validates a Settings from the sources under root.  No
// global state is touched beyond the process env (dotenv layer).
func load(root string) (*Settings, error) {
	mode := environment()
	zap.S().Debugw("config root resolved", "root", root, "env", mode)

	if err := loadSource(sourceFile(root, mode)); err != nil {
		zap.S().Errorw("config env file load failed", "err", err)
		return nil, err
	}

	k := koanf.New(".")

	// Optional static baseline.
	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, yamlPath, err)
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	// Env overrides, matched case-insensitively: DATABASE_URL → database_url.
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("%w: environment: %v", ErrSourceUnavailable, err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := resolveVaultRefs(&cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.deriveAPIURLs()

	if err := validateSettings(&cfg); err != nil {
		zap.S().Errorw("settings validation failed", "err", err)
		if IsMissingSecret(err) {
			logMissingSecrets(&cfg)
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &cfg, nil
}

/*─────────────────────────────── vault layer ──────────────────────────────*/

const vaultPrefix = "vault:"

// resolveVaultRefs replaces `vault:`-prefixed values with the secret they
// point at, so the model only ever stores plain strings.
func resolveVaultRefs(s *Settings) error {
	refs := []*string{&s.DatabaseURL, &s.TelegramBotToken, &s.ScraperAPIKey}

	needed := false
	for _, p := range refs {
		if strings.HasPrefix(*p, vaultPrefix) {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	cli, err := vault.New()
	if err != nil {
		return fmt.Errorf("vault client: %w", err)
	}
	for _, p := range refs {
		if !strings.HasPrefix(*p, vaultPrefix) {
			continue
		}
		val, err := cli.Resolve(context.Background(), strings.TrimPrefix(*p, vaultPrefix))
		if err != nil {
			return fmt.Errorf("resolve secret: %w", err)
		}
		*p = val
	}
	return nil
}

/*─────────────────────────────── installation ─────────────────────────────*/

// install wires the freshly built Settings into the log pipeline and
// emits the startup summary.  Runs once, right after the singleton is
// stored.
func install(s *Settings) {
	if s.Env == EnvDevelopment {
		logger.SetLevel(zap.DebugLevel)
	} else {
		logger.SetLevel(zap.InfoLevel)
	}

	// Redaction lookups read the live singleton on every write, so a
	// reloaded Settings rotates the scrubbed values automatically.
	for _, r := range secretRules {
		rule := r
		logger.RegisterSecret(rule.placeholder, func() string {
			st := Get()
			if st == nil {
				return ""
			}
			return rule.value(st)
		})
	}

	logSummary(s)
	if s.IsProduction() {
		logMissingSecrets(s)
	}
}

// logSummary emits one line per non-secret field.
func logSummary(s *Settings) {
	log := zap.S()
	log.Infow("app name", "value", s.AppName)
	log.Infow("version", "value", s.Version)
	log.Infow("domain name", "value", s.DomainName)
	log.Infow("api domain", "value", s.APIDomain)
	log.Infow("api port", "value", s.APIPort)
	log.Infow("database url", "value", s.DatabaseURL)
	log.Infow("debug mode", "value", s.Debug)
	log.Infow("allowed origins", "value", s.AllowedOrigins)
	log.Infow("environment", "value", s.Env)
	log.Infow("keyword scraper api url", "value", s.KeywordScraperURL)
	log.Infow("keyword suggestions api url", "value", s.KeywordSuggestionsURL)
	log.Infow("trends api url", "value", s.TrendsURL)
}

// logMissingSecrets emits one error line per empty production secret so
// operators see exactly which variable to set.  Observational only; the
// hard failure is validateSettings' job.
func logMissingSecrets(s *Settings) {
	if !s.IsProduction() {
		return
	}
	for _, r := range secretRules {
		if r.value(s) == "" {
			zap.S().Errorw("required secret is missing in production",
				"field", r.field,
				"hint", "set "+r.envVar+" in conf/.env.production",
			)
		}
	}
}
