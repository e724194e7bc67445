package fetcher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyURL is returned by Open when given an empty URL.
// OpenWithRetry degrades it to a nil page in both error modes.
var ErrEmptyURL = errors.New("empty URL")

// Class categorizes fetch failures. The pipeline's recovery policy is
// driven entirely by the class, never by string matching on transport
// errors scattered through the code.
type Class int

const (
	// ClassTransient covers connection refused/reset, DNS and socket
	// failures, TLS handshake errors, timeouts, decoding errors, and
	// HTTP error statuses other than 429. Swallowed in silent mode,
	// propagated in strict mode.
	ClassTransient Class = iota

	// ClassThrottled is an HTTP 429 response. Retried with a fixed
	// delay up to the attempt bound, then treated as unreachable.
	ClassThrottled

	// ClassRedirectLoop is a redirect chain exceeding the hop limit.
	// Swallowed when silent or when the message indicates a loop.
	ClassRedirectLoop

	// ClassMalformed is an empty or unparseable URL. Always degrades to
	// a nil page; a bad href on somebody's site is not the caller's error.
	ClassMalformed
)

// String returns a short name for the class, used in logs.
func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassThrottled:
		return "throttled"
	case ClassRedirectLoop:
		return "redirect-loop"
	case ClassMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is a classified fetch failure. StatusCode is zero unless the
// failure came from an HTTP response.
type FetchError struct {
	// URL is the URL whose fetch failed.
	URL string

	// StatusCode is the HTTP status, when one was received.
	StatusCode int

	// Class is the failure category driving the recovery policy.
	Class Class

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Class, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Class, e.StatusCode)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// errTooManyRedirects is returned by the redirect policy when the hop
// bound is exceeded. The message deliberately names a redirection loop so
// the swallow-on-loop rule can also match errors surfaced as plain text.
var errTooManyRedirects = errors.New("redirection loop detected")

// indicatesRedirectLoop reports whether an error message looks like a
// redirect-loop condition.
func indicatesRedirectLoop(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "redirect") || strings.Contains(msg, "redirection loop")
}

// classify wraps err into a FetchError for the given URL.
func classify(url string, statusCode int, err error) *FetchError {
	class := ClassTransient
	switch {
	case statusCode == 429:
		class = ClassThrottled
	case errors.Is(err, errTooManyRedirects) || indicatesRedirectLoop(err):
		class = ClassRedirectLoop
	case errors.Is(err, ErrEmptyURL):
		class = ClassMalformed
	}
	return &FetchError{URL: url, StatusCode: statusCode, Class: class, Err: err}
}
