package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".mailscout"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file contents. Every field is optional;
// zero values leave the corresponding Config default untouched.
type File struct {
	// Separator joins multiple addresses found at one location.
	Separator string `yaml:"separator"`

	// Timeout is the per-request fetch timeout in time.ParseDuration
	// syntax, e.g. "45s".
	Timeout string `yaml:"timeout"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// IgnorePatterns extend the link denylist.
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// ContactLabels extend the multilingual contact-word list.
	ContactLabels []string `yaml:"contact_labels"`

	// DenyEmails extend the email false-positive patterns.
	DenyEmails []string `yaml:"deny_emails"`
}

// LoadConfigFile loads overrides from a YAML file. If the file does not
// exist, it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly given.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply merges the file's overrides into cfg, leaving unset fields alone.
// A malformed timeout is reported rather than silently ignored.
func (f *File) Apply(cfg *Config) error {
	if f.Separator != "" {
		cfg.Separator = f.Separator
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", f.Timeout, err)
		}
		cfg.Timeout = d
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, f.IgnorePatterns...)
	cfg.ContactLabels = append(cfg.ContactLabels, f.ContactLabels...)
	cfg.DenyEmails = append(cfg.DenyEmails, f.DenyEmails...)
	return nil
}

// FindConfigFile searches for the configuration file in order:
//  1. the explicit path, when given
//  2. .mailscout in the current directory
//  3. .mailscout in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
