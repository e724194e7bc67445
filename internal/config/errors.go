package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: Package-level sentinel errors rather than fresh
// instances so callers can use errors.Is while still getting readable
// messages.
var (
	// ErrNoStartURL is returned when no starting URL was given.
	ErrNoStartURL = errors.New("no starting URL specified: provide one or more site URLs")

	// ErrEmptyStartURL is returned when a starting URL is the empty
	// string. An empty URL must never reach the fetcher.
	ErrEmptyStartURL = errors.New("empty starting URL")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the batch concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
