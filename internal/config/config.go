package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values, chosen to match the behavior most callers
// want out of the box: silent error handling, comma-joined results, and a
// modest per-request timeout.
const (
	// DefaultSeparator joins multiple addresses found at one location.
	DefaultSeparator = ","

	// DefaultTimeout bounds each page fetch. Contact discovery visits a
	// handful of small pages; a slow page is better treated as
	// unreachable than waited on.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of simultaneous extractions when
	// several start URLs are given.
	DefaultConcurrency = 4

	// DefaultUserAgent identifies mailscout in HTTP requests. A
	// descriptive User-Agent lets site operators identify the traffic.
	DefaultUserAgent = "mailscout/1.0 (+https://github.com/mailscout/mailscout)"

	// AppName is the application name used for XDG directory paths.
	AppName = "mailscout"
)

// Config holds all options for one invocation. It is populated from CLI
// flags and the optional config file, then passed by dependency injection
// rather than global state.
//
// Design decision: A single flat struct instead of nested sub-configs.
// The option count is manageable, and nesting would add complexity
// without benefit.
type Config struct {
	// StartURLs are the pages extraction runs begin from. At least one
	// is required and none may be empty.
	StartURLs []string

	// FirstMatchOnly stops each run at the very first recorded email.
	FirstMatchOnly bool

	// StrictErrors turns silent mode off: transient fetch failures
	// surface to the caller instead of degrading to "nothing found".
	StrictErrors bool

	// Verbose enables debug trace output using slog.LevelDebug.
	// Tracing never affects results.
	Verbose bool

	// Separator joins multiple addresses found at one location.
	Separator string

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// Concurrency is the number of simultaneous extractions in batch
	// mode. Runs never share state regardless of this value.
	Concurrency int

	// ConfigFilePath is the path to the configuration file. If empty,
	// .mailscout is searched in the current and home directories.
	ConfigFilePath string

	// IgnorePatterns are extra link-denylist substrings from the
	// config file.
	IgnorePatterns []string

	// ContactLabels are extra contact words from the config file.
	ContactLabels []string

	// DenyEmails are extra false-positive patterns from the config file.
	DenyEmails []string

	// JSONReport outputs a JSON report instead of the plain result.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport outputs a Markdown report instead of the plain
	// result. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	// Directories are created automatically.
	ReportFile string

	// DBDir is the directory holding the history database. Defaults to
	// the XDG data directory.
	DBDir string

	// SaveHistory records completed runs in the history database.
	SaveHistory bool
}

// NewConfig creates a Config with default values.
//
// Design decision: A constructor instead of zero values because several
// defaults are non-zero, and this documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Separator:   DefaultSeparator,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		UserAgent:   DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for mailscout, following the
// XDG Base Directory Specification.
// On Linux: ~/.local/share/mailscout
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration, returning the first problem found as
// a sentinel error. Called once after flag parsing, before any fetching,
// so bad input fails fast with a clear message.
func (c *Config) Validate() error {
	if len(c.StartURLs) == 0 {
		return ErrNoStartURL
	}
	for _, u := range c.StartURLs {
		if u == "" {
			return ErrEmptyStartURL
		}
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
