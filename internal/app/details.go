package app

import (
	"github.com/developingAlex/jacow-validator/internal/figures"
	"github.com/developingAlex/jacow-validator/internal/language"
	"github.com/developingAlex/jacow-validator/internal/page"
	"github.com/developingAlex/jacow-validator/internal/refs"
	"github.com/developingAlex/jacow-validator/internal/report"
	"github.com/developingAlex/jacow-validator/internal/roster"
	"github.com/developingAlex/jacow-validator/internal/segment"
	"github.com/developingAlex/jacow-validator/internal/styles"
	"github.com/developingAlex/jacow-validator/internal/tables"
)

// One typed detail payload per category so report consumers get
// compile-time checked access instead of probing open-ended maps.

// StylesDetail reports the style-catalogue membership and every paragraph
// whose declared style is outside the accepted set, plus the diagnostic
// all-paragraphs listing.
type StylesDetail struct {
	Registered map[string]bool         `json:"registered"`
	Exceptions []segment.ParagraphInfo `json:"exceptions,omitempty"`
	All        []segment.ParagraphInfo `json:"all_paragraphs,omitempty"`
}

// MarginsDetail is the per-section geometry outcome.
type MarginsDetail struct {
	Sections []page.SectionCheck `json:"sections"`
}

// LanguagesDetail lists the extracted locale tags and their verdicts.
type LanguagesDetail struct {
	Tags []language.Tag `json:"tags"`
}

// BlockDetail is the common record for a single classified block checked
// against its rule.
type BlockDetail struct {
	Text    string        `json:"text"`
	Style   string        `json:"style"`
	StyleOK bool          `json:"style_ok"`
	CaseOK  bool          `json:"case_ok"`
	Status  report.Status `json:"status"`
	Detail  styles.Detail `json:"detail"`
}

// TitleDetail is the Title category payload.
type TitleDetail struct {
	BlockDetail
}

// AuthorsDetail carries the author-block paragraphs and the extracted
// author names.
type AuthorsDetail struct {
	Text    string        `json:"text"` // superscript footnote runs removed
	Authors []string      `json:"authors"`
	Blocks  []BlockDetail `json:"blocks"`
}

// AbstractDetail is the Abstract category payload.
type AbstractDetail struct {
	BlockDetail
}

// HeadingDetail is one classified heading with its confidence.
type HeadingDetail struct {
	BlockDetail
	Kind    string `json:"kind"`
	Guessed bool   `json:"guessed"`
}

// HeadingsDetail is the Headings category payload.
type HeadingsDetail struct {
	Headings []HeadingDetail `json:"headings"`
}

// ParagraphsDetail is the body-paragraph conformance payload.
type ParagraphsDetail struct {
	Paragraphs []BlockDetail `json:"paragraphs"`
}

// ReferencesDetail is the References category payload.
type ReferencesDetail struct {
	Entries    []refs.Entry `json:"entries"`
	InText     [][]int      `json:"in_text"`
	OutOfOrder []int        `json:"out_of_order,omitempty"`
}

// FiguresDetail is the Figures category payload, in ascending id order.
type FiguresDetail struct {
	Figures []*figures.Entity `json:"figures"`
}

// TablesDetail is the Tables category payload.
type TablesDetail struct {
	Tables []tables.Check `json:"tables"`
}

// RosterDetail is the RosterCheck category payload.
type RosterDetail struct {
	Paper string             `json:"paper"`
	Match roster.MatchReport `json:"match"`
}
