package email

import (
	"strings"
	"testing"

	"github.com/mailscout/mailscout/internal/fetcher"
)

// mustPage parses inline HTML into a page handle.
func mustPage(t *testing.T, html string) *fetcher.Page {
	t.Helper()

	page, err := fetcher.ParsePage("http://example.com", strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return page
}

// TestFromMailtoLinks tests mailto anchor extraction.
func TestFromMailtoLinks(t *testing.T) {
	t.Parallel()

	s := NewScanner()

	t.Run("prefers email-shaped visible text", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<a href="mailto:webmaster@example.com">Info@Example.com</a>
		</body></html>`)

		got := s.FromMailtoLinks(page)
		if len(got) != 1 || got[0] != "info@example.com" {
			t.Errorf("expected [info@example.com], got %v", got)
		}
	})

	t.Run("falls back to the target address", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<a href="mailto:sales@example.com?subject=hello">Write to us</a>
		</body></html>`)

		got := s.FromMailtoLinks(page)
		if len(got) != 1 || got[0] != "sales@example.com" {
			t.Errorf("expected [sales@example.com], got %v", got)
		}
	})

	t.Run("deduplicates case-insensitively", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<a href="mailto:Info@Example.com">contact</a>
			<a href="mailto:info@example.com">contact again</a>
		</body></html>`)

		got := s.FromMailtoLinks(page)
		if len(got) != 1 {
			t.Errorf("expected 1 address, got %v", got)
		}
	})

	t.Run("no mailto anchors yields empty", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><a href="/contact">Contact</a></body></html>`)

		if got := s.FromMailtoLinks(page); len(got) != 0 {
			t.Errorf("expected no addresses, got %v", got)
		}
	})
}

// TestFromPageText tests full-text extraction.
func TestFromPageText(t *testing.T) {
	t.Parallel()

	s := NewScanner()

	t.Run("finds addresses anywhere in the markup", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<p>Reach us at support@example.com or SALES@example.com.</p>
			<!-- hidden: ops@example.com -->
		</body></html>`)

		got := s.FromPageText(page)
		want := []string{"support@example.com", "sales@example.com", "ops@example.com"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected %q at %d, got %q", want[i], i, got[i])
			}
		}
	})

	t.Run("drops retina asset false positives", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<img src="/img/ajax-loader@2x.gif">
			<p>ajax-loader@2x.gif</p>
			<p>real@example.com</p>
		</body></html>`)

		got := s.FromPageText(page)
		for _, e := range got {
			if strings.Contains(e, "ajax-loader") {
				t.Errorf("false positive survived filtering: %q", e)
			}
		}
		if len(got) != 1 || got[0] != "real@example.com" {
			t.Errorf("expected [real@example.com], got %v", got)
		}
	})

	t.Run("extra deny patterns from config", func(t *testing.T) {
		t.Parallel()

		scanner := NewScanner(WithDenyPatterns([]string{`@example\.invalid$`}))
		page := mustPage(t, `<html><body><p>ghost@example.invalid real@example.com</p></body></html>`)

		got := scanner.FromPageText(page)
		if len(got) != 1 || got[0] != "real@example.com" {
			t.Errorf("expected [real@example.com], got %v", got)
		}
	})

	t.Run("page without addresses yields empty", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><p>nothing to see</p></body></html>`)

		if got := s.FromPageText(page); len(got) != 0 {
			t.Errorf("expected no addresses, got %v", got)
		}
	})
}
