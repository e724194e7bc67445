// Package pipeline orchestrates the email search over a site. It runs the
// four discovery heuristics in fixed priority order (mailto links, whole
// page text, contact-menu link, generic link crawl), short-circuiting at
// the first heuristic that records any result, and aborting all remaining
// work at the very first finding when first-match-only mode is set.
//
// Early exit is modeled with ordinary return values (a stop flag bubbling
// up from nested iteration), never panic-based unwinding.
package pipeline
