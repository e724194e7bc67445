package mailscout

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mailscout/mailscout/internal/config"
	"github.com/mailscout/mailscout/internal/email"
	"github.com/mailscout/mailscout/internal/fetcher"
	"github.com/mailscout/mailscout/internal/link"
	"github.com/mailscout/mailscout/internal/log"
	"github.com/mailscout/mailscout/internal/model"
	"github.com/mailscout/mailscout/internal/pipeline"
)

// Extractor finds contact email addresses starting from a single URL.
// It is safe to call FindEmail repeatedly; every call starts a fresh
// search with no state carried over from previous calls.
type Extractor struct {
	startURL string

	firstMatchOnly bool
	strict         bool
	debug          bool
	separator      string
	timeout        time.Duration
	userAgent      string
	httpClient     *http.Client
	logger         *slog.Logger
	ignoreRules    []string
	contactLabels  []string
	denyPatterns   []string
	throttleDelay  time.Duration

	lastRun *model.Run
}

// New creates an Extractor for the given start URL.
// It returns an error when the start URL is empty.
func New(startURL string, opts ...Option) (*Extractor, error) {
	if startURL == "" {
		return nil, config.ErrEmptyStartURL
	}

	e := &Extractor{
		startURL:  startURL,
		separator: config.DefaultSeparator,
		timeout:   config.DefaultTimeout,
		userAgent: config.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = log.NewLogger(os.Stderr, e.debug)
	}

	return e, nil
}

// FindEmail searches the site for contact email addresses.
//
// It returns the addresses joined with the configured separator and
// whether anything was found. In the default mode, fetch and parse
// failures degrade to ("", false, nil); with WithStrictErrors they are
// returned as errors instead.
func (e *Extractor) FindEmail(ctx context.Context) (string, bool, error) {
	startedAt := time.Now()

	f := e.newFetcher()
	p := pipeline.New(f, e.newScanner(), e.newClassifier(),
		pipeline.WithLogger(e.logger),
		pipeline.WithSeparator(e.separator),
		pipeline.WithFirstMatchOnly(e.firstMatchOnly),
	)

	run := &model.Run{
		StartURL:  e.startURL,
		StartedAt: startedAt,
	}

	root, err := f.OpenWithRetry(ctx, e.startURL)
	if err != nil {
		run.Duration = time.Since(startedAt)
		run.PagesFetched = f.PagesFetched()
		run.ErrorMessage = err.Error()
		e.lastRun = run
		return "", false, err
	}
	if root == nil {
		run.Duration = time.Since(startedAt)
		run.PagesFetched = f.PagesFetched()
		e.lastRun = run
		return "", false, nil
	}

	if err := p.Run(ctx, root); err != nil {
		run.Duration = time.Since(startedAt)
		run.PagesFetched = f.PagesFetched()
		run.ErrorMessage = err.Error()
		e.lastRun = run
		return "", false, err
	}

	results := p.Results()
	run.Duration = time.Since(startedAt)
	run.PagesFetched = f.PagesFetched()
	run.Findings = results.Findings()
	run.Emails = results.Emails(e.separator)
	run.Locations = results.Locations()
	run.Found = results.Len() > 0
	e.lastRun = run

	return run.Emails, run.Found, nil
}

// LastRun returns details of the most recent FindEmail call, or nil if
// FindEmail has not been called yet.
func (e *Extractor) LastRun() *model.Run {
	return e.lastRun
}

// StartURL returns the URL the search starts from.
func (e *Extractor) StartURL() string {
	return e.startURL
}

func (e *Extractor) newFetcher() *fetcher.Fetcher {
	opts := []fetcher.Option{
		fetcher.WithUserAgent(e.userAgent),
		fetcher.WithTimeout(e.timeout),
		fetcher.WithStrictErrors(e.strict),
		fetcher.WithLogger(e.logger),
	}
	if e.httpClient != nil {
		opts = append(opts, fetcher.WithHTTPClient(e.httpClient))
	}
	if e.throttleDelay > 0 {
		opts = append(opts, fetcher.WithThrottleDelay(e.throttleDelay))
	}
	return fetcher.New(opts...)
}

func (e *Extractor) newScanner() *email.Scanner {
	var opts []email.Option
	if len(e.denyPatterns) > 0 {
		opts = append(opts, email.WithDenyPatterns(e.denyPatterns))
	}
	return email.NewScanner(opts...)
}

func (e *Extractor) newClassifier() *link.Classifier {
	var opts []link.Option
	if len(e.ignoreRules) > 0 {
		opts = append(opts, link.WithIgnoreRules(e.ignoreRules))
	}
	if len(e.contactLabels) > 0 {
		opts = append(opts, link.WithContactLabels(e.contactLabels))
	}
	return link.NewClassifier(opts...)
}
