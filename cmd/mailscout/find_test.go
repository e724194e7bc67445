package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mailscout/mailscout/internal/config"
)

// TestNewFindCmd tests the find command creation.
func TestNewFindCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFindCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "find [url...]" {
			t.Errorf("expected use 'find [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"first-match", "strict", "separator", "timeout", "user-agent",
			"concurrency", "config", "json", "markdown", "output", "no-history",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("timeout default matches config", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.DefValue != config.DefaultTimeout.String() {
			t.Errorf("expected default %q, got %q", config.DefaultTimeout.String(), flag.DefValue)
		}
	})
}

// TestBuildConfig tests flag-to-config conversion.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewFindCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}

		if cfg.Separator != config.DefaultSeparator {
			t.Errorf("Separator = %q, want %q", cfg.Separator, config.DefaultSeparator)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
		}
		if !cfg.SaveHistory {
			t.Error("SaveHistory should default to true")
		}
		if len(cfg.StartURLs) != 1 || cfg.StartURLs[0] != "https://example.com" {
			t.Errorf("StartURLs = %v", cfg.StartURLs)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewFindCmd()
		args := []string{
			"--first-match", "--strict", "--separator", "; ",
			"--timeout", "5s", "--no-history",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}

		if !cfg.FirstMatchOnly {
			t.Error("FirstMatchOnly should be true")
		}
		if !cfg.StrictErrors {
			t.Error("StrictErrors should be true")
		}
		if cfg.Separator != "; " {
			t.Errorf("Separator = %q, want %q", cfg.Separator, "; ")
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
		}
		if cfg.SaveHistory {
			t.Error("SaveHistory should be false with --no-history")
		}
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewFindCmd()
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.com"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("config file values are applied", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "mailscout.yaml")
		content := "separator: \" / \"\ntimeout: 12s\ndeny_emails:\n  - \"@cdn\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewFindCmd()
		if err := cmd.ParseFlags([]string{"--config", configPath}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}

		if cfg.Separator != " / " {
			t.Errorf("Separator = %q, want %q", cfg.Separator, " / ")
		}
		if cfg.Timeout != 12*time.Second {
			t.Errorf("Timeout = %v, want 12s", cfg.Timeout)
		}
		if len(cfg.DenyEmails) != 1 || cfg.DenyEmails[0] != "@cdn" {
			t.Errorf("DenyEmails = %v", cfg.DenyEmails)
		}
	})

	t.Run("explicit flag wins over config file", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "mailscout.yaml")
		if err := os.WriteFile(configPath, []byte("timeout: 12s\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewFindCmd()
		if err := cmd.ParseFlags([]string{"--config", configPath, "--timeout", "3s"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}
		if cfg.Timeout != 3*time.Second {
			t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
		}
	})
}

// TestFindCommandEndToEnd tests the full command against a local server.
func TestFindCommandEndToEnd(t *testing.T) {
	t.Run("finds address and prints result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><a href="mailto:info@example.com">info@example.com</a></body></html>`))
		}))
		defer srv.Close()

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"find", "--no-history", srv.URL})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "info@example.com") {
			t.Errorf("expected address in output:\n%s", buf.String())
		}
	})

	t.Run("writes JSON to output file", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body>mail us: help@example.org</body></html>`))
		}))
		defer srv.Close()

		outPath := filepath.Join(t.TempDir(), "out", "result.json")
		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{"find", "--no-history", "--json", "-o", outPath, srv.URL})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if !strings.Contains(string(content), "help@example.org") {
			t.Errorf("expected address in JSON output:\n%s", content)
		}
	})

	t.Run("unreachable site is not an error by default", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"find", "--no-history", "--timeout", "2s", "http://127.0.0.1:1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("silent mode should swallow fetch errors, got: %v", err)
		}
	})

	t.Run("no URL is a configuration error", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"find", "--no-history"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error when no URL is given")
		}
	})
}
