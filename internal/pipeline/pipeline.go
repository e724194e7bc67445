package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mailscout/mailscout/internal/email"
	"github.com/mailscout/mailscout/internal/fetcher"
	"github.com/mailscout/mailscout/internal/link"
	"github.com/mailscout/mailscout/internal/model"
)

// State tracks pipeline progress. Terminal states are StateFound (at least
// one finding recorded) and StateExhausted (no results anywhere).
type State int

const (
	// StateNotStarted is the state before Run is called.
	StateNotStarted State = iota

	// StateSearching is the state while heuristics execute.
	StateSearching

	// StateFound means at least one email group was recorded.
	StateFound

	// StateExhausted means every heuristic came up empty.
	StateExhausted
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Step is one search heuristic. Steps are executed in priority order over
// the root page.
//
// Design decision: We use an interface rather than function values, in
// keeping with the rest of the codebase: steps carry a Name for logging
// and share the pipeline's state through their receiver.
type Step interface {
	// Name returns the step's name for logging purposes.
	Name() string

	// Do runs the heuristic over the root page, recording findings on
	// the pipeline's accumulator. It returns stop=true when remaining
	// work must be aborted immediately (first-match-only mode), and a
	// non-nil error only for failures that must reach the caller
	// (strict error mode).
	Do(ctx context.Context, root *fetcher.Page) (stop bool, err error)
}

// Pipeline runs the heuristics for a single extraction. A Pipeline holds
// single-writer, single-run state and must not be reused across runs.
type Pipeline struct {
	fetcher    *fetcher.Fetcher
	scanner    *email.Scanner
	classifier *link.Classifier
	logger     *slog.Logger

	// separator joins addresses within one recorded group.
	separator string

	// firstMatchOnly aborts all remaining work at the first finding.
	firstMatchOnly bool

	// siteRoot is the scheme://host prefix of the start URL, used to
	// resolve site-relative links. Set by Run.
	siteRoot string

	// visited guards against fetching the same sub-page twice in a run.
	visited map[string]bool

	results *model.Results
	state   State
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithSeparator sets the string joining addresses within one group.
// Default is ",".
func WithSeparator(sep string) Option {
	return func(p *Pipeline) {
		p.separator = sep
	}
}

// WithFirstMatchOnly makes the pipeline stop at the very first recorded
// finding instead of letting the winning heuristic accumulate groups.
func WithFirstMatchOnly(first bool) Option {
	return func(p *Pipeline) {
		p.firstMatchOnly = first
	}
}

// New creates a Pipeline over the given collaborators.
func New(f *fetcher.Fetcher, s *email.Scanner, c *link.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:    f,
		scanner:    s,
		classifier: c,
		separator:  ",",
		visited:    make(map[string]bool),
		results:    model.NewResults(),
		state:      StateNotStarted,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	return p.state
}

// Results returns the run's accumulator.
func (p *Pipeline) Results() *model.Results {
	return p.results
}

// Run executes the heuristics over the root page in priority order. The
// first step that records at least one finding ends the run; later steps
// never execute once one has produced results.
func (p *Pipeline) Run(ctx context.Context, root *fetcher.Page) error {
	p.state = StateSearching
	p.siteRoot = siteRootOf(root.URL)

	steps := []Step{
		&mailtoStep{p},
		&textStep{p},
		&contactMenuStep{p},
		&linkCrawlStep{p},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			p.state = StateExhausted
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "url", root.URL)

		before := p.results.Len()
		stop, err := step.Do(ctx, root)
		if err != nil {
			return err
		}
		if stop || p.results.Len() > before {
			p.state = StateFound
			p.logger.Debug("step produced results",
				"step", step.Name(),
				"findings", p.results.Len(),
			)
			return nil
		}
	}

	p.state = StateExhausted
	return nil
}

// record joins a scan's addresses into one group and appends it. The
// returned stop flag is true when first-match-only mode ends the run here.
// In that mode only the first address of the scan is kept.
func (p *Pipeline) record(emails []string, location string) bool {
	if len(emails) == 0 {
		return false
	}
	if p.firstMatchOnly {
		emails = emails[:1]
	}
	p.results.Record(strings.Join(emails, p.separator), location)
	p.logger.Debug("recorded finding", "location", location, "addresses", len(emails))
	return p.firstMatchOnly
}

// scanSubPage fetches a sub-page and runs the mailto and text scans on it,
// one level deep only. Unreachable pages are skipped. The text scan only
// runs when the mailto scan found nothing, mirroring the top-level
// first-heuristic-wins rule.
func (p *Pipeline) scanSubPage(ctx context.Context, pageURL, location string) (stop bool, err error) {
	if p.visited[pageURL] {
		return false, nil
	}
	p.visited[pageURL] = true

	sub, err := p.fetcher.OpenWithRetry(ctx, pageURL)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}

	if found := p.scanner.FromMailtoLinks(sub); len(found) > 0 {
		return p.record(found, location), nil
	}
	return p.record(p.scanner.FromPageText(sub), location), nil
}

// siteRootOf reduces a page URL to its scheme://host prefix.
func siteRootOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(pageURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
