package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests the default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Separator != DefaultSeparator {
		t.Errorf("expected separator %q, got %q", DefaultSeparator, cfg.Separator)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.StrictErrors {
		t.Error("silent mode must be the default")
	}
	if cfg.FirstMatchOnly {
		t.Error("first-match-only must default to off")
	}
}

// TestValidate tests configuration validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.StartURLs = []string{"http://example.com"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid config", func(*Config) {}, nil},
		{"no start URL", func(c *Config) { c.StartURLs = nil }, ErrNoStartURL},
		{"empty start URL", func(c *Config) { c.StartURLs = []string{""} }, ErrEmptyStartURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, ErrInvalidConcurrency},
		{"conflicting formats", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests YAML loading and merging.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies overrides", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `separator: "; "
timeout: 45s
user_agent: "custom/1.0"
ignore_patterns:
  - /careers
contact_labels:
  - yhteystiedot
deny_emails:
  - '@example\.invalid$'
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		cfg := NewConfig()
		if err := cf.Apply(cfg); err != nil {
			t.Fatalf("failed to apply config: %v", err)
		}

		if cfg.Separator != "; " {
			t.Errorf("expected separator %q, got %q", "; ", cfg.Separator)
		}
		if cfg.Timeout != 45*time.Second {
			t.Errorf("expected timeout 45s, got %v", cfg.Timeout)
		}
		if cfg.UserAgent != "custom/1.0" {
			t.Errorf("expected custom user agent, got %q", cfg.UserAgent)
		}
		if len(cfg.IgnorePatterns) != 1 || cfg.IgnorePatterns[0] != "/careers" {
			t.Errorf("unexpected ignore patterns: %v", cfg.IgnorePatterns)
		}
		if len(cfg.ContactLabels) != 1 || cfg.ContactLabels[0] != "yhteystiedot" {
			t.Errorf("unexpected contact labels: %v", cfg.ContactLabels)
		}
		if len(cfg.DenyEmails) != 1 {
			t.Errorf("unexpected deny patterns: %v", cfg.DenyEmails)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("empty file leaves defaults untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		cfg := NewConfig()
		if err := cf.Apply(cfg); err != nil {
			t.Fatalf("failed to apply config: %v", err)
		}

		if cfg.Separator != DefaultSeparator || cfg.Timeout != DefaultTimeout {
			t.Error("empty file must not change defaults")
		}
	})

	t.Run("malformed timeout is reported", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("timeout: soon"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if err := cf.Apply(NewConfig()); err == nil {
			t.Error("expected error for malformed timeout")
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("separator: x"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
