package link

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// contactWords are words meaning "contact" in the languages the extractor
// targets: English, Italian, Lithuanian, German, the Scandinavian
// languages, and Spanish. Each word is matched against anchor text, so
// lowercase base forms are enough; case variants are generated.
var contactWords = []string{
	// English
	"contact",
	"contacts",
	// Italian
	"contatti",
	"contatto",
	// Lithuanian
	"kontaktai",
	// German
	"kontakt",
	"impressum",
	// Scandinavian
	"kontakta",
	"kontakt oss",
	// Spanish
	"contacto",
	"contactos",
}

// titleCaser capitalizes the first letter of each word without
// language-specific lowercasing of the rest.
var titleCaser = cases.Title(language.Und, cases.NoLower)

// expandLabelVariants returns each word plus its all-uppercase and
// capitalized forms, deduplicated, preserving order.
func expandLabelVariants(words []string) []string {
	seen := make(map[string]bool, len(words)*3)
	variants := make([]string, 0, len(words)*3)

	add := func(w string) {
		if w != "" && !seen[w] {
			seen[w] = true
			variants = append(variants, w)
		}
	}

	for _, w := range words {
		add(w)
		add(strings.ToUpper(w))
		add(titleCaser.String(w))
	}
	return variants
}

// ContactLabels returns the cached contact-label variants for this run.
// The slice must not be modified by callers.
func (c *Classifier) ContactLabels() []string {
	return c.labels
}
