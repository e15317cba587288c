// internal/logger/redact.go
//
// Redaction stage: scrubs registered secrets from every log record.
//
// Context
// -------
// Secrets are registered once with a role-specific placeholder and a
// lookup closure.  The lookup runs at write time, not registration time,
// so a rotated secret is scrubbed under its current value without
// re-registering.  The stage wraps the sink cores (see logger.go), so the
// record's message and every string-typed field are rewritten before any
// output.  Non-string fields pass through untouched, and an empty secret
// is skipped—never a global empty-string replacement.
//
// The record alone is mutated; the stage never touches the Settings that
// back the lookups.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/seokar/keyword-engine/internal/metrics"
)

//
// Secret registry
//

type secretEntry struct {
	placeholder string
	value       func() string
}

var (
	redactMu sync.RWMutex
	secrets  []secretEntry
)

// RegisterSecret adds a redaction rule.  The value closure is evaluated
// on every write, so callers should hand in a cheap accessor.
func RegisterSecret(placeholder string, value func() string) {
	redactMu.Lock()
	secrets = append(secrets, secretEntry{placeholder: placeholder, value: value})
	redactMu.Unlock()
}

// resetSecrets clears the registry.  Test hook.
func resetSecrets() {
	redactMu.Lock()
	secrets = nil
	redactMu.Unlock()
}

// redactString replaces every occurrence of each non-empty secret with
// its placeholder.
func redactString(in string) string {
	redactMu.RLock()
	defer redactMu.RUnlock()

	out := in
	for _, e := range secrets {
		val := e.value()
		if val == "" {
			continue
		}
		if strings.Contains(out, val) {
			out = strings.ReplaceAll(out, val, e.placeholder)
			metrics.RedactionsTotal.Inc()
		}
	}
	return out
}

//
// Core wrapper
//

// redactCore defers binding: fields handed to With are buffered here
// instead of being pushed into the inner core, so they are scrubbed with
// the secret values current at write time.  Binding them eagerly would
// freeze the redaction decision, leaking a secret registered or rotated
// after a child logger was built.
type redactCore struct {
	zapcore.Core
	bound []zapcore.Field
}

// Redacting wraps core so messages and string fields—call-site and
// With-bound alike—are scrubbed before any sink sees them.
func Redacting(c zapcore.Core) zapcore.Core { return &redactCore{Core: c} }

func (r *redactCore) With(fields []zapcore.Field) zapcore.Core {
	all := make([]zapcore.Field, 0, len(r.bound)+len(fields))
	all = append(all, r.bound...)
	all = append(all, fields...)
	return &redactCore{Core: r.Core, bound: all}
}

func (r *redactCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if r.Enabled(ent.Level) {
		return ce.AddCore(ent, r)
	}
	return ce
}

func (r *redactCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = redactString(ent.Message)
	all := make([]zapcore.Field, 0, len(r.bound)+len(fields))
	all = append(all, r.bound...)
	all = append(all, fields...)
	return r.Core.Write(ent, redactFields(all))
}

// redactFields copies the slice and scrubs string-typed fields only.
func redactFields(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Type == zapcore.StringType {
			out[i].String = redactString(out[i].String)
		}
	}
	return out
}
