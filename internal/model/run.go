package model

import "time"

// Run describes one completed extraction: where it started, what it found,
// and how much work it did. Report writers render it and the history
// database persists it.
type Run struct {
	// ID is the database identifier assigned when the run is saved.
	// Zero for runs that were never persisted.
	ID int64 `json:"id,omitempty"`

	// StartURL is the page the extraction began from.
	StartURL string `json:"start_url"`

	// StartedAt is when the extraction began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// PagesFetched counts every page fetch attempt that returned a
	// document, including sub-pages visited by the link crawl.
	PagesFetched int `json:"pages_fetched"`

	// Findings holds the recorded email groups in discovery order.
	Findings []Finding `json:"findings,omitempty"`

	// Emails is the final joined result string, empty when nothing was found.
	Emails string `json:"emails,omitempty"`

	// Locations is the joined location labels, empty when nothing was found.
	Locations string `json:"locations,omitempty"`

	// Found reports whether at least one email group was recorded.
	Found bool `json:"found"`

	// ErrorMessage records a fatal error in strict mode, if any.
	ErrorMessage string `json:"error,omitempty"`
}
