// Package main provides the entry point for the mailscout CLI.
//
// mailscout finds contact email addresses on websites. It fetches the
// start page and applies heuristics in order of reliability: mailto
// links, the page text, contact-menu pages, and finally the other
// pages the site links to.
//
// Usage:
//
//	mailscout find https://example.com
//	mailscout history
//
// See --help for all available options.
package main

// main is the entry point for mailscout.
func main() {
	Execute()
}
