package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
)

// Default fetch policy values.
const (
	// DefaultTimeout bounds each HTTP request. Contact pages are small;
	// anything slower than this is better treated as unreachable.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies mailscout in HTTP requests.
	DefaultUserAgent = "mailscout/1.0 (+https://github.com/mailscout/mailscout)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is generous for HTML pages while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// maxRedirectHops caps redirect following. Exceeding it is treated
	// as a redirection loop.
	maxRedirectHops = 10

	// ThrottleAttempts is the total number of attempts for one URL when
	// the server answers 429, including the first.
	ThrottleAttempts = 3

	// ThrottleDelay is the fixed wait between throttled attempts.
	// No exponential growth: the source policy is a flat two-second wait.
	ThrottleDelay = 2 * time.Second
)

// Page is an opaque handle to one fetched, parsed document. A handle is
// produced per fetched URL and never reused across URLs.
type Page struct {
	// URL is the URL the document was fetched from.
	URL string

	doc *goquery.Document
}

// Document returns the parsed document for selector queries.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Markup serializes the document back to its raw markup form. Serialization
// failures yield an empty string; unscannable content produces no matches
// rather than an error.
func (p *Page) Markup() string {
	markup, err := p.doc.Html()
	if err != nil {
		return ""
	}
	return markup
}

// Fetcher fetches and parses pages with the run's error policy. It keeps
// per-run state (throttle retry counter, fetched-page count) and therefore
// must not be shared across concurrent extraction runs.
type Fetcher struct {
	// client performs the HTTP requests, following redirects up to the
	// hop bound.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// strict disables silent mode: transient failures are returned to
	// the caller instead of degrading to a nil page.
	strict bool

	// maxBodySize bounds how much of a response body is read.
	maxBodySize int64

	// logger receives debug trace lines. Tracing never affects results.
	logger *slog.Logger

	// throttleRetries counts consecutive 429 retries for the URL
	// currently being fetched. Reset to zero on success or on giving up.
	throttleRetries int

	// throttleDelay is the wait between throttled attempts.
	throttleDelay time.Duration

	// timeout, when set, overrides the client's request timeout. Applied
	// in New after all options so it also covers a replacement client.
	timeout time.Duration

	// pagesFetched counts successful fetches for the run report.
	pagesFetched int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client. The client's redirect
// policy is overridden to enforce the hop bound.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithStrictErrors turns silent mode off: transient fetch failures
// propagate to the caller instead of yielding a nil page.
func WithStrictErrors(strict bool) Option {
	return func(f *Fetcher) {
		f.strict = strict
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout. It takes effect whatever the
// option order, including on a client supplied with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithThrottleDelay overrides the wait between throttled attempts.
func WithThrottleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.throttleDelay = d
	}
}

// New creates a Fetcher with the default policy, applying options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:        &http.Client{Timeout: DefaultTimeout},
		userAgent:     DefaultUserAgent,
		maxBodySize:   DefaultMaxBodySize,
		throttleDelay: ThrottleDelay,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.timeout > 0 {
		f.client.Timeout = f.timeout
	}

	f.client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirectHops {
			return errTooManyRedirects
		}
		return nil
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Open fetches and parses a single page. It follows redirects, decodes any
// declared content encoding, and returns a classified *FetchError on
// failure. Open applies no recovery policy; use OpenWithRetry for that.
func (f *Fetcher) Open(ctx context.Context, pageURL string) (*Page, error) {
	if pageURL == "" {
		return nil, &FetchError{URL: pageURL, Class: ClassMalformed, Err: ErrEmptyURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Class: ClassMalformed, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(pageURL, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classify(pageURL, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	// Decode whatever encoding the server declared before parsing.
	body := io.LimitReader(resp.Body, f.maxBodySize)
	decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, classify(pageURL, 0, fmt.Errorf("decode body: %w", err))
	}

	page, err := ParsePage(pageURL, decoded)
	if err != nil {
		return nil, classify(pageURL, 0, err)
	}

	f.pagesFetched++
	f.logger.Debug("fetched page", "url", pageURL, "status", resp.StatusCode)

	return page, nil
}

// ParsePage parses markup from r into a Page handle for pageURL.
// It exists so scanners can be tested against inline documents without a
// network round trip.
func ParsePage(pageURL string, r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Page{URL: pageURL, doc: doc}, nil
}

// OpenWithRetry fetches a page applying the run's recovery policy.
//
// Throttling (429) is retried with a fixed delay up to ThrottleAttempts
// total attempts in both error modes; exhausting the attempts degrades to
// a nil page. Redirect loops degrade to nil when silent or when the error
// message indicates a loop. Malformed URLs always degrade to nil. Other
// transient failures degrade to nil in silent mode and propagate in strict
// mode.
//
// A (nil, nil) return means "page unreachable, keep crawling".
func (f *Fetcher) OpenWithRetry(ctx context.Context, pageURL string) (*Page, error) {
	var page *Page

	operation := func() error {
		p, err := f.Open(ctx, pageURL)
		if err == nil {
			page = p
			return nil
		}

		var fe *FetchError
		if errors.As(err, &fe) && fe.Class == ClassThrottled {
			f.throttleRetries++
			f.logger.Debug("throttled, will retry",
				"url", pageURL,
				"attempt", f.throttleRetries,
			)
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.throttleDelay), ThrottleAttempts-1),
		ctx,
	)

	err := backoff.Retry(operation, bo)

	// The retry sequence for this URL is over either way; the counter
	// only tracks an in-flight fetch.
	f.throttleRetries = 0

	if err == nil {
		return page, nil
	}

	// backoff may hand back the permanent wrapper depending on version.
	var pErr *backoff.PermanentError
	if errors.As(err, &pErr) {
		err = pErr.Err
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		// Context cancellation or another non-fetch error.
		return nil, err
	}

	switch fe.Class {
	case ClassThrottled:
		// Retry budget exhausted; the page is unreachable, not fatal.
		f.logger.Debug("giving up on throttled page", "url", pageURL)
		return nil, nil
	case ClassRedirectLoop:
		if !f.strict || indicatesRedirectLoop(fe.Err) {
			return nil, nil
		}
		return nil, fe
	case ClassMalformed:
		return nil, nil
	default:
		if f.strict {
			return nil, fe
		}
		f.logger.Debug("skipping unreachable page", "url", pageURL, "class", fe.Class.String())
		return nil, nil
	}
}

// ThrottleRetries returns the current consecutive-429 retry count.
// It is zero outside of an in-flight throttled fetch.
func (f *Fetcher) ThrottleRetries() int {
	return f.throttleRetries
}

// PagesFetched returns the number of pages successfully fetched so far.
func (f *Fetcher) PagesFetched() int {
	return f.pagesFetched
}
