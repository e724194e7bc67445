package model

import "strings"

// Location labels describe which heuristic (and page) produced a finding.
// They are short human-readable strings, not machine identifiers.
const (
	// LocationMailtoLinks labels findings from mailto anchors on the root page.
	LocationMailtoLinks = "mailto links"

	// LocationPageText labels findings from the root page's full text.
	LocationPageText = "whole page text"

	// LocationContactPage labels findings from a page reached through a
	// contact-menu link.
	LocationContactPage = "contact page"

	// LocationLinkedPage labels findings from a page reached through the
	// generic link crawl. The sub-page URL is appended for context.
	LocationLinkedPage = "linked page"
)

// Finding is one recorded email group together with the location label
// naming where it was discovered. A group holds one or more addresses
// already joined with the configured separator.
type Finding struct {
	// Emails is the separator-joined, deduplicated group of addresses
	// found at a single location. Never empty.
	Emails string `json:"emails"`

	// Location names the heuristic and page that produced the group,
	// e.g. "mailto links" or "linked page http://example.com/about".
	Location string `json:"location"`
}

// Results accumulates findings during one extraction run.
// It is append-only while the run is in progress and must not be shared
// across concurrent runs; the pipeline is its single writer.
//
// Design decision: We keep findings as ordered Finding values rather than
// two parallel slices because a single struct makes the equal-length
// invariant impossible to break, while still preserving the index
// correlation between email groups and locations.
type Results struct {
	findings []Finding
}

// NewResults creates an empty accumulator.
func NewResults() *Results {
	return &Results{findings: make([]Finding, 0)}
}

// Record appends a finding. Groups with no addresses are dropped so that
// every stored finding carries at least one email.
func (r *Results) Record(emails, location string) {
	if emails == "" {
		return
	}
	r.findings = append(r.findings, Finding{Emails: emails, Location: location})
}

// Len returns the number of recorded findings.
func (r *Results) Len() int {
	return len(r.findings)
}

// Findings returns a copy of the recorded findings in discovery order.
func (r *Results) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Emails joins the deduplicated email groups with sep, preserving
// discovery order.
func (r *Results) Emails(sep string) string {
	return joinUnique(r.groups(), sep)
}

// Locations joins the deduplicated location labels with ", ", preserving
// discovery order.
func (r *Results) Locations() string {
	labels := make([]string, 0, len(r.findings))
	for _, f := range r.findings {
		labels = append(labels, f.Location)
	}
	return joinUnique(labels, ", ")
}

// groups returns the email groups in discovery order.
func (r *Results) groups() []string {
	groups := make([]string, 0, len(r.findings))
	for _, f := range r.findings {
		groups = append(groups, f.Emails)
	}
	return groups
}

// joinUnique joins values with sep, keeping only the first occurrence of
// each value.
func joinUnique(values []string, sep string) string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return strings.Join(unique, sep)
}
