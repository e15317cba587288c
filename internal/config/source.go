// internal/config/source.go
//
// Source resolution: repo root discovery and environment file selection.
//
// Context
// -------
// The loader reads one dotenv file per environment: `conf/.env.production`
// when ENV=production, `conf/.env.development` otherwise.  The file sets
// process environment variables without overriding ones already exported,
// so explicit environment always wins over file-sourced values.
//
// A missing file is tolerated (bare process env is a valid source); a
// file that exists but cannot be read aborts startup with
// ErrSourceUnavailable.
//
// Notes
// -----
//   • `rootDir()` climbs the cwd tree until it finds a `conf` directory;
//     this lets `go run ./cmd/api` work from any sub-directory.
//   • Oxford commas, two spaces after periods.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ErrSourceUnavailable marks a configuration source that exists but
// cannot be read.  Fatal during startup.
var ErrSourceUnavailable = errors.New("config source unavailable")

// Root exposes the resolved repo root so collaborators (the logger, file
// sinks) anchor to the same directory the loader reads from.
func Root() string { return rootDir() }

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves KEYWORD_ROOT or climbs directories until a conf/
// directory is found.  Falls back to the executable heuristic for the
// production layout.
func rootDir() string {
	if r := os.Getenv("KEYWORD_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if fi, err := os.Stat(filepath.Join(dir, "conf")); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*──────────────────────────── file selection ───────────────────────────────*/

// environment reads the ENV selector, defaulting to development.
func environment() string {
	if os.Getenv("ENV") == EnvProduction {
		return EnvProduction
	}
	return EnvDevelopment
}

// sourceFile returns the dotenv path for the given environment under root.
func sourceFile(root, env string) string {
	name := ".env.development"
	if env == EnvProduction {
		name = ".env.production"
	}
	return filepath.Join(root, "conf", name)
}

// loadSource applies the dotenv file to the process environment.  Values
// already exported are left untouched.
func loadSource(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil // bare process env is a valid source
		}
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return nil
}
