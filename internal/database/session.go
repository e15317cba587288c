// internal/database/session.go
//
// Scoped database sessions.
//
// Context
// -------
// Downstream code never touches the pool directly: it borrows a Session
// from the Manager for the duration of one operation and releases it on
// every exit path.  `With` is the preferred form — acquire, defer release,
// run — so the release survives early returns, errors, and panics.  A
// Session owns exactly one pooled connection and is not meant to be
// shared across concurrent operations.
//
// Acquisition failures propagate unchanged; retry policy, if any, belongs
// to the caller.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package database

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/seokar/keyword-engine/internal/metrics"
)

//
// Manager
//

// Manager hands out scoped sessions backed by one *sqlx.DB pool.  Safe
// for concurrent use; every Acquire yields an independent session.
type Manager struct {
	db *sqlx.DB
}

// NewManager wraps an open pool.  The Manager does not own the pool;
// closing it remains the caller's job.
func NewManager(db *sqlx.DB) *Manager {
	return &Manager{db: db}
}

// Acquire checks one connection out of the pool and binds it to a new
// Session.  The caller owns the session until Release.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	conn, err := m.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SessionsAcquiredTotal.Inc()
	return &Session{conn: conn}, nil
}

// With runs fn inside a session scope.  The session is released exactly
// once on every exit path, including panics inside fn.
func (m *Manager) With(ctx context.Context, fn func(*sqlx.Conn) error) error {
	s, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s.Conn())
}

//
// Session
//

// Session owns one pooled connection for the duration of a scope.
type Session struct {
	conn    *sqlx.Conn
	release sync.Once
}

// Conn exposes the underlying connection for queries.
func (s *Session) Conn() *sqlx.Conn { return s.conn }

// Release returns the connection to the pool.  Safe to call more than
// once; only the first call takes effect.
func (s *Session) Release() error {
	var err error
	s.release.Do(func() {
		err = s.conn.Close()
		metrics.SessionsReleasedTotal.Inc()
	})
	return err
}
