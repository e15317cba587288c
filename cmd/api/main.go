// cmd/api/main.go
//
// Keyword Engine – bootstrap entry point.
//
// Boot sequence
// -------------
//
//  1. Parse CLI flags (--env overrides the ENV selector, --listen the
//     health/metrics address).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load the Settings singleton; any validation failure aborts here —
//     the process never continues on partial configuration.
//
//  4. Open the database pool and build the session manager.
//
//  5. Serve /healthz (borrows one scoped session, pings) and the
//     Prometheus /metrics endpoint until SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/seokar/keyword-engine/internal/config"
	"github.com/seokar/keyword-engine/internal/database"
	"github.com/seokar/keyword-engine/internal/logger"
	_ "github.com/seokar/keyword-engine/internal/metrics" // register collectors
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	app := kingpin.New("keyword-engine", "Configuration, logging, and database session core for the keyword suggestion system")
	envFlag := app.Flag("env", `Runtime environment ("development" or "production"); overrides ENV`).String()
	listen := app.Flag("listen", "HTTP listen address for health and metrics").Default(":9090").String()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *envFlag != "" {
		os.Setenv("ENV", *envFlag)
	}

	// One root for everything: logs land next to the conf/ directory the
	// loader reads from, wherever the binary was started.
	rootDir := config.Root()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Settings singleton ──────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalw("load settings", "err", err)
	}

	//
	// ── 2.  Database pool + session manager ─────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	sessions := database.NewManager(db)
	logOut.Infow("database online")

	//
	// ── 3.  Health + metrics endpoints ──────────────────────────────────
	//
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		err := sessions.With(req.Context(), func(conn *sqlx.Conn) error {
			return conn.PingContext(req.Context())
		})
		if err != nil {
			logOut.Errorw("health check failed", "err", err)
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: *listen, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", *listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalw("server", "err", err)
	}
	logOut.Infow("shutdown complete")
}
