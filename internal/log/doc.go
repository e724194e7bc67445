// Package log provides logging built on the standard slog package, with
// automatic masking of credential-like values.
//
// The crawler logs request URLs, headers, and retry decisions. Headers
// and configuration values may carry credentials (Authorization headers,
// cookies, proxy passwords), so the ScrubHandler masks them before they
// reach the underlying handler. Even in verbose mode, credential values
// stay masked.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("request sent",
//	    "cookie", "session=abc123", // masked
//	    "url", "https://example.com",
//	)
package log
