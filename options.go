package mailscout

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithFirstMatchOnly stops the search at the first address found.
// The result contains a single address and a single location.
func WithFirstMatchOnly(first bool) Option {
	return func(e *Extractor) {
		e.firstMatchOnly = first
	}
}

// WithStrictErrors surfaces network and parse failures as errors
// instead of degrading them to "not found".
func WithStrictErrors(strict bool) Option {
	return func(e *Extractor) {
		e.strict = strict
	}
}

// WithDebug enables debug logging to stderr. It only takes effect when
// no logger was set with WithLogger.
func WithDebug(debug bool) Option {
	return func(e *Extractor) {
		e.debug = debug
	}
}

// WithSeparator sets the string used to join multiple addresses in the
// result. The default is ",".
func WithSeparator(sep string) Option {
	return func(e *Extractor) {
		e.separator = sep
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) {
		e.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client. Redirect and timeout
// policies are still applied to it.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		e.httpClient = client
	}
}

// WithLogger sets the logger used during extraction.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithIgnoreRules adds substring rules for links that must not be
// followed, on top of the built-in denylist.
func WithIgnoreRules(rules []string) Option {
	return func(e *Extractor) {
		e.ignoreRules = append(e.ignoreRules, rules...)
	}
}

// WithContactLabels adds anchor-text words treated as contact menu
// entries, on top of the built-in multilingual set.
func WithContactLabels(labels []string) Option {
	return func(e *Extractor) {
		e.contactLabels = append(e.contactLabels, labels...)
	}
}

// WithDenyPatterns adds regular expressions for addresses that must be
// dropped from results, on top of the built-in false-positive filters.
func WithDenyPatterns(patterns []string) Option {
	return func(e *Extractor) {
		e.denyPatterns = append(e.denyPatterns, patterns...)
	}
}

// WithThrottleDelay sets the wait between retries after a 429 response.
func WithThrottleDelay(d time.Duration) Option {
	return func(e *Extractor) {
		e.throttleDelay = d
	}
}
