// Package link decides which discovered hyperlinks are worth fetching
// during an extraction run. It filters out social-media, blog, and
// cross-origin noise, resolves site-relative URLs against the site root,
// and provides the multilingual contact-label variants used to spot
// contact-page menu links.
package link
