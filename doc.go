// Package mailscout finds contact email addresses on websites.
//
// Given a start URL, it fetches the page and applies a sequence of
// heuristics in order of reliability: mailto links, the page text,
// pages linked from contact-like menu entries, and finally the other
// pages the site links to. The first heuristic that yields addresses
// wins, and the remaining ones are skipped.
//
// Basic usage:
//
//	scout, err := mailscout.New("https://example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	emails, found, err := scout.FindEmail(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if found {
//	    fmt.Println(emails)
//	}
//
// By default, network and parse failures degrade to "not found" rather
// than returning errors. Use WithStrictErrors to surface them instead.
package mailscout
