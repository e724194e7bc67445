// Package fetcher retrieves and parses web pages for the extraction
// pipeline. It wraps the HTTP transport and goquery parsing behind a Page
// handle, classifies fetch failures into a small taxonomy, and applies the
// bounded retry-with-delay policy for throttling responses.
//
// The fetcher has two error modes. In silent mode (the default) every
// recoverable failure degrades to a nil page so a single dead link cannot
// abort a whole extraction run. In strict mode transient failures are
// returned to the caller.
package fetcher
