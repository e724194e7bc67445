// Package email extracts email addresses from fetched pages. It scans
// mailto anchors and full page markup, normalizes and deduplicates the
// matches, and filters known false positives such as retina image asset
// names that shape-match the address pattern.
package email
