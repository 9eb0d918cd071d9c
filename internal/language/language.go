// Package language collects the document's declared locale tags and checks
// them against an allow-list of languages accepted for publication.
package language

import (
	"golang.org/x/text/language"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

// DefaultAllowed are the tags accepted when no allow-list is configured.
var DefaultAllowed = []string{"en-US", "en-GB", "en-AU"}

// Tag is one extracted locale tag and its verdict.
type Tag struct {
	Value   string `json:"value"`
	Allowed bool   `json:"allowed"`
	Valid   bool   `json:"valid"` // parses as a BCP-47 tag at all
}

// Extract walks document metadata and run-level formatting, returning the
// unique locale tags in first-seen order.
func Extract(doc *docmodel.Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}
	add(doc.Language)
	for i := range doc.Paragraphs {
		for _, r := range doc.Paragraphs[i].Runs {
			add(r.Font.Lang)
		}
	}
	return out
}

// Check validates every extracted tag against the allow-list. An empty
// allowed slice falls back to DefaultAllowed.
func Check(doc *docmodel.Document, allowed []string) []Tag {
	if len(allowed) == 0 {
		allowed = DefaultAllowed
	}
	allowSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowSet[a] = true
	}
	tags := Extract(doc)
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		_, parseErr := language.Parse(t)
		out = append(out, Tag{
			Value:   t,
			Allowed: allowSet[t],
			Valid:   parseErr == nil,
		})
	}
	return out
}

// AllAllowed reports whether every tag passed.
func AllAllowed(tags []Tag) bool {
	for _, t := range tags {
		if !t.Allowed || !t.Valid {
			return false
		}
	}
	return true
}
