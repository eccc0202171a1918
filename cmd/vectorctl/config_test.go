package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/sansio/internal/testutil/testlog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadRunConfigOverrides(t *testing.T) {
	testlog.Start(t)
	cfg, err := loadRunConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Fixture != "countdown" {
		t.Fatalf("unexpected fixture: %q", cfg.Fixture)
	}
	if cfg.Vectors != "../../internal/conformance/testdata" {
		t.Fatalf("unexpected vectors: %q", cfg.Vectors)
	}
	if !cfg.Epoch.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected epoch: %v", cfg.Epoch)
	}
	if cfg.LogLevel != zerolog.WarnLevel {
		t.Fatalf("unexpected level: %v", cfg.LogLevel)
	}
	if !cfg.FailFast {
		t.Fatalf("expected fail fast")
	}
}

func TestLoadRunConfigDefaultsAndErrors(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := loadRunConfig(empty)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if cfg != defaultRunConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("fixture = \"http2\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadRunConfig(bad); err == nil || !strings.Contains(err.Error(), "unknown fixture") {
		t.Fatalf("expected unknown fixture error, got %v", err)
	}
}

func TestRunReportsEachVector(t *testing.T) {
	testlog.Start(t)
	cfg := defaultRunConfig()
	cfg.Vectors = filepath.Join("..", "..", "internal", "conformance", "testdata")
	var out bytes.Buffer
	failed, err := run(cfg, log.Logger, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if failed != 0 {
		t.Fatalf("unexpected failures:\n%s", out.String())
	}
	if n := strings.Count(out.String(), "ok   "); n != 5 {
		t.Fatalf("expected 5 ok lines, got %d:\n%s", n, out.String())
	}
}

func TestRunCountsFailingVector(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	body := "fixture = \"splitter\"\n[[step]]\nop = \"handle_read\"\narg = \"ab\"\n[[step]]\nop = \"poll_read\"\nwant = \"ab\"\n"
	if err := os.WriteFile(filepath.Join(dir, "wrong.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := defaultRunConfig()
	cfg.Vectors = dir
	var out bytes.Buffer
	failed, err := run(cfg, log.Logger, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if failed != 1 || !strings.HasPrefix(out.String(), "FAIL wrong [splitter]") {
		t.Fatalf("unexpected report (%d):\n%s", failed, out.String())
	}
}
