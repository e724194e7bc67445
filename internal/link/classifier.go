package link

import (
	"regexp"
	"strings"
)

// schemePrefixLen is the number of leading characters exempt from
// double-slash collapsing when repairing concatenated URLs. Seven covers
// "http://" so the scheme separator is never damaged.
const schemePrefixLen = 7

// defaultIgnoreRules are the built-in substring rules for links that are
// never worth fetching: social and media platforms, blog sections, and
// script-scheme pseudo-links.
//
// Design decision: We keep the denylist as an explicit rule list rather
// than scattered literals so callers can extend it from configuration
// without touching the classification logic.
var defaultIgnoreRules = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"pinterest.",
	"tiktok.com",
	"/blog",
	"javascript:",
}

// multiSlash matches runs of two or more consecutive slashes.
var multiSlash = regexp.MustCompile(`//+`)

// Classifier applies ignore rules and URL resolution for one extraction
// run. The zero value is not usable; create one with NewClassifier.
type Classifier struct {
	// ignoreRules are substrings that mark a link as not worth fetching.
	ignoreRules []string

	// labels are the cached contact-label variants, computed once.
	labels []string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithIgnoreRules appends extra substring rules to the built-in denylist.
func WithIgnoreRules(rules []string) Option {
	return func(c *Classifier) {
		c.ignoreRules = append(c.ignoreRules, rules...)
	}
}

// WithContactLabels appends extra contact words to the built-in
// multilingual list. Variants are expanded the same way as built-ins.
func WithContactLabels(words []string) Option {
	return func(c *Classifier) {
		c.labels = append(c.labels, expandLabelVariants(words)...)
	}
}

// NewClassifier creates a Classifier with the built-in rules, applying
// any options. Contact-label variants are expanded here, once per run.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		ignoreRules: append([]string(nil), defaultIgnoreRules...),
		labels:      expandLabelVariants(contactWords),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShouldIgnore reports whether href should be skipped during the generic
// link crawl. A link is ignorable when it matches a denylist rule, or when
// it is an absolute cross-origin link (contains "http" or "www.") that is
// neither a mailto link nor an obvious contact page.
func (c *Classifier) ShouldIgnore(href string) bool {
	lower := strings.ToLower(href)

	for _, rule := range c.ignoreRules {
		if strings.Contains(lower, rule) {
			return true
		}
	}

	// Absolute links point off-site more often than not; keep the two
	// cases the crawl is actually after.
	if strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
		return !strings.Contains(lower, "mailto:") && !strings.Contains(lower, "contact")
	}

	return false
}

// ResolveAbsolute turns href into an absolute URL rooted at siteRoot.
// Already-absolute URLs pass through unchanged, so the operation is
// idempotent. Doubled slashes introduced by naive concatenation (a root
// ending in "/" joined to a path starting with "/") are collapsed, leaving
// the scheme's "://" untouched.
func (c *Classifier) ResolveAbsolute(href, siteRoot string) string {
	resolved := href
	if !strings.Contains(href, "http") && !strings.Contains(href, "www") {
		resolved = siteRoot + "/" + href
	}

	if len(resolved) <= schemePrefixLen {
		return resolved
	}
	return resolved[:schemePrefixLen] + multiSlash.ReplaceAllString(resolved[schemePrefixLen:], "/")
}
