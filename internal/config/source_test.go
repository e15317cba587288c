// internal/config/source_test.go
//
// Unit-tests for source resolution: environment selection and dotenv
// loading.
//
// Run: go test ./internal/config -v

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvironmentSelector(t *testing.T) {
	t.Setenv("ENV", "")
	if got := environment(); got != EnvDevelopment {
		t.Fatalf("unset ENV → %q, want %q", got, EnvDevelopment)
	}

	t.Setenv("ENV", EnvProduction)
	if got := environment(); got != EnvProduction {
		t.Fatalf("ENV=production → %q", got)
	}

	t.Setenv("ENV", "staging")
	if got := environment(); got != EnvDevelopment {
		t.Fatalf("ENV=staging → %q, want development file selection", got)
	}
}

func TestSourceFileSelection(t *testing.T) {
	root := "/srv/keyword-engine"

	dev := sourceFile(root, EnvDevelopment)
	if dev != filepath.Join(root, "conf", ".env.development") {
		t.Fatalf("development source = %q", dev)
	}

	prod := sourceFile(root, EnvProduction)
	if prod != filepath.Join(root, "conf", ".env.production") {
		t.Fatalf("production source = %q", prod)
	}
}

func TestLoadSourceMissingFileTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ".env.development")
	if err := loadSource(path); err != nil {
		t.Fatalf("missing env file must be tolerated, got %v", err)
	}
}

func TestLoadSourceAppliesFileWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.development")
	content := "SRC_TEST_FILE_ONLY=from-file\nSRC_TEST_BOTH=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("SRC_TEST_BOTH", "from-env")
	t.Setenv("SRC_TEST_FILE_ONLY", "") // registers cleanup
	os.Unsetenv("SRC_TEST_FILE_ONLY")

	if err := loadSource(path); err != nil {
		t.Fatalf("loadSource: %v", err)
	}
	if got := os.Getenv("SRC_TEST_FILE_ONLY"); got != "from-file" {
		t.Fatalf("file-only value = %q, want from-file", got)
	}
	if got := os.Getenv("SRC_TEST_BOTH"); got != "from-env" {
		t.Fatalf("explicit env lost to file: %q", got)
	}
}

func TestLoadSourceUnreadableFileFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are advisory for root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, ".env.production")
	if err := os.WriteFile(path, []byte("X=1\n"), 0o000); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	err := loadSource(path)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestRootDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KEYWORD_ROOT", dir)
	if got := rootDir(); got != dir {
		t.Fatalf("rootDir = %q, want %q", got, dir)
	}

	// Collaborators anchor to the same root the loader uses.
	if got := Root(); got != dir {
		t.Fatalf("Root = %q, want %q", got, dir)
	}
}
