package email

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mailscout/mailscout/internal/fetcher"
)

// addressPattern matches email-shaped substrings: a local part of letters,
// digits and ._%+-, an @, a domain of letters, digits and .-, and a 2-6
// letter top-level segment.
var addressPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,6}`)

// defaultDenyPatterns drop matches that shape-match the address pattern
// but are not addresses. Retina image assets are the classic offender:
// "ajax-loader@2x.gif" is a filename, not a mailbox.
var defaultDenyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)@\d+x\.(?:gif|png|jpe?g|webp)$`),
}

// mailtoSelector selects anchors whose target scheme is mailto.
const mailtoSelector = `a[href^="mailto:"]`

// Scanner extracts addresses from pages. The zero value is not usable;
// create one with NewScanner.
type Scanner struct {
	// denyPatterns filter out known false positives.
	denyPatterns []*regexp.Regexp
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDenyPatterns appends extra false-positive patterns to the built-in
// list. Invalid expressions are skipped; a bad config entry should not
// break scanning.
func WithDenyPatterns(patterns []string) Option {
	return func(s *Scanner) {
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				continue
			}
			s.denyPatterns = append(s.denyPatterns, re)
		}
	}
}

// NewScanner creates a Scanner with the built-in deny patterns, applying
// options.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		denyPatterns: append([]*regexp.Regexp(nil), defaultDenyPatterns...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromMailtoLinks extracts addresses from every mailto anchor on the page.
// The anchor's visible text is preferred when it is itself email-shaped
// (the common case of "<a href=mailto:x>x</a>"); otherwise the
// address-shaped substring of the target is used. Results are lowercased,
// deduplicated, and returned in document order. An empty slice means no
// candidates survived.
func (s *Scanner) FromMailtoLinks(page *fetcher.Page) []string {
	found := make([]string, 0)

	page.Document().Find(mailtoSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if addressPattern.MatchString(text) {
			found = append(found, addressPattern.FindString(text))
			return
		}

		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if match := addressPattern.FindString(href); match != "" {
			found = append(found, match)
		}
	})

	return s.normalize(found)
}

// FromPageText extracts addresses from the page's full markup. The markup
// is stripped of invalid encoding sequences before scanning, so malformed
// content yields no matches rather than an error.
func (s *Scanner) FromPageText(page *fetcher.Page) []string {
	text := strings.ToValidUTF8(page.Markup(), "")
	return s.normalize(addressPattern.FindAllString(text, -1))
}

// normalize lowercases, filters denied matches, and deduplicates while
// preserving order.
func (s *Scanner) normalize(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))

	for _, m := range matches {
		lower := strings.ToLower(m)
		if seen[lower] || s.denied(lower) {
			continue
		}
		seen[lower] = true
		unique = append(unique, lower)
	}
	return unique
}

// denied reports whether a match hits a false-positive pattern.
func (s *Scanner) denied(match string) bool {
	for _, re := range s.denyPatterns {
		if re.MatchString(match) {
			return true
		}
	}
	return false
}
