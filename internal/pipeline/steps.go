package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mailscout/mailscout/internal/fetcher"
	"github.com/mailscout/mailscout/internal/model"
)

// mailtoStep scans the root page's mailto anchors.
type mailtoStep struct {
	p *Pipeline
}

// Name returns the step name.
func (s *mailtoStep) Name() string { return "mailto-scan" }

// Do records every address found in mailto anchors on the root page.
func (s *mailtoStep) Do(_ context.Context, root *fetcher.Page) (bool, error) {
	return s.p.record(s.p.scanner.FromMailtoLinks(root), model.LocationMailtoLinks), nil
}

// textStep scans the root page's full text.
type textStep struct {
	p *Pipeline
}

// Name returns the step name.
func (s *textStep) Name() string { return "text-scan" }

// Do records every address found in the root page's markup.
func (s *textStep) Do(_ context.Context, root *fetcher.Page) (bool, error) {
	return s.p.record(s.p.scanner.FromPageText(root), model.LocationPageText), nil
}

// contactMenuStep looks for a navigation link labelled with a contact word
// and scans the page behind it, one level deep.
type contactMenuStep struct {
	p *Pipeline
}

// Name returns the step name.
func (s *contactMenuStep) Name() string { return "contact-menu-scan" }

// Do tries each contact-label variant against the root page's anchors.
// The first anchor whose visible text contains the variant is followed,
// unless its target is a pure in-page fragment link.
func (s *contactMenuStep) Do(ctx context.Context, root *fetcher.Page) (bool, error) {
	for _, label := range s.p.classifier.ContactLabels() {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		href := firstAnchorContaining(root, label)
		if href == "" || strings.Contains(href, "#") {
			continue
		}

		target := s.p.classifier.ResolveAbsolute(href, s.p.siteRoot)
		stop, err := s.p.scanSubPage(ctx, target, model.LocationContactPage)
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}

// firstAnchorContaining returns the href of the first anchor whose visible
// text contains label, or "" when none matches.
func firstAnchorContaining(page *fetcher.Page, label string) string {
	var href string
	page.Document().Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), label) {
			href, _ = sel.Attr("href")
			return false
		}
		return true
	})
	return href
}

// linkCrawlStep is the last resort: walk every anchor on the root page and
// scan whatever non-ignorable pages they point to.
type linkCrawlStep struct {
	p *Pipeline
}

// Name returns the step name.
func (s *linkCrawlStep) Name() string { return "link-crawl" }

// Do iterates the root page's anchors in document order. Ignorable targets
// are skipped, mailto targets trigger a rescan of the root page's mailto
// anchors (they may sit below non-anchor markup the first pass missed),
// and every other target is fetched and scanned one level deep.
func (s *linkCrawlStep) Do(ctx context.Context, root *fetcher.Page) (bool, error) {
	hrefs := make([]string, 0)
	root.Document().Find("a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})

	for _, href := range hrefs {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		if s.p.classifier.ShouldIgnore(href) {
			continue
		}

		if strings.Contains(href, "mailto:") {
			if stop := s.p.record(s.p.scanner.FromMailtoLinks(root), model.LocationMailtoLinks); stop {
				return true, nil
			}
			continue
		}

		target := s.p.classifier.ResolveAbsolute(href, s.p.siteRoot)
		stop, err := s.p.scanSubPage(ctx, target, model.LocationLinkedPage+" "+target)
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}
