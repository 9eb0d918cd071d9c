// Package docmodel defines the parsed-document object model the checker
// operates on. It mirrors what an OOXML reader exposes: ordered paragraphs
// with runs and formatting chains, page sections, tables, a style catalogue
// and document metadata. The package performs no validation itself.
package docmodel

import "strings"

// Length is a distance in English Metric Units, the native unit of OOXML
// measurements. 914400 EMU equal one inch.
type Length int64

const (
	EMUPerInch Length = 914400
	EMUPerMm   Length = 36000
	EMUPerPt   Length = 12700
	EMUPerTwip Length = 635
)

// Mm constructs a Length from millimetres.
func Mm(v float64) Length { return Length(v * float64(EMUPerMm)) }

// Inches constructs a Length from inches.
func Inches(v float64) Length { return Length(v * float64(EMUPerInch)) }

// Twips constructs a Length from twentieths of a point.
func Twips(v int) Length { return Length(v) * EMUPerTwip }

// Mm returns the length in millimetres.
func (l Length) Mm() float64 { return float64(l) / float64(EMUPerMm) }

// Inches returns the length in inches.
func (l Length) Inches() float64 { return float64(l) / float64(EMUPerInch) }

// Pt returns the length in points.
func (l Length) Pt() float64 { return float64(l) / float64(EMUPerPt) }

// Cm returns the length in centimetres.
func (l Length) Cm() float64 { return l.Mm() / 10 }

// Alignment is a paragraph justification value as python-docx style member
// names render it.
type Alignment string

const (
	AlignLeft    Alignment = "LEFT"
	AlignCenter  Alignment = "CENTER"
	AlignRight   Alignment = "RIGHT"
	AlignJustify Alignment = "JUSTIFY"
)

// Font carries character-level formatting. Nil pointer fields mean the
// attribute is unset at this level of the formatting chain.
type Font struct {
	Size        *float64 `json:"size,omitempty"` // points
	Bold        *bool    `json:"bold,omitempty"`
	Italic      *bool    `json:"italic,omitempty"`
	AllCaps     *bool    `json:"allCaps,omitempty"`
	Superscript bool     `json:"superscript,omitempty"`
	Lang        string   `json:"lang,omitempty"` // per-run locale override
}

// ParagraphFormat carries paragraph-level formatting. Spacing and indent are
// in points; nil means unset.
type ParagraphFormat struct {
	Alignment       *Alignment `json:"alignment,omitempty"`
	SpaceBefore     *float64   `json:"spaceBefore,omitempty"`
	SpaceAfter      *float64   `json:"spaceAfter,omitempty"`
	FirstLineIndent *float64   `json:"firstLineIndent,omitempty"`
}

// Run is a span of text with uniform character formatting.
type Run struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

// Paragraph is one block of main-flow or table-cell text together with its
// direct formatting and declared style.
type Paragraph struct {
	Text      string          `json:"text"`
	StyleName string          `json:"style"`
	Format    ParagraphFormat `json:"format"`
	Runs      []Run           `json:"runs,omitempty"`
}

// Stripped returns the paragraph text with surrounding whitespace removed.
func (p *Paragraph) Stripped() string { return strings.TrimSpace(p.Text) }

// IsBlank reports whether the paragraph contains no visible text.
func (p *Paragraph) IsBlank() bool { return p.Stripped() == "" }

// Style is a named entry of the document's style catalogue.
type Style struct {
	Name    string          `json:"name"`
	BasedOn string          `json:"basedOn,omitempty"`
	Font    Font            `json:"font"`
	Format  ParagraphFormat `json:"format"`
}

// Section is one page section with its geometry.
type Section struct {
	PageWidth    Length `json:"pageWidth"`
	PageHeight   Length `json:"pageHeight"`
	TopMargin    Length `json:"topMargin"`
	BottomMargin Length `json:"bottomMargin"`
	LeftMargin   Length `json:"leftMargin"`
	RightMargin  Length `json:"rightMargin"`
	ColumnCount  int    `json:"columnCount,omitempty"`
	ColumnGutter Length `json:"columnGutter,omitempty"`
}

// TableCell holds the paragraphs nested in one table cell.
type TableCell struct {
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []TableCell `json:"cells,omitempty"`
}

// Table is a table in the document body. AfterParagraph is the index into
// Document.Paragraphs of the paragraph immediately preceding the table in
// flow order, or -1 when the table opens the body. PosY and WidthType are
// the raw positioning properties needed to detect floating placement.
type Table struct {
	Rows           []TableRow `json:"rows,omitempty"`
	AfterParagraph int        `json:"afterParagraph"`
	PosY           int        `json:"posY,omitempty"` // tblpPr vertical offset, twips
	WidthType      string     `json:"widthType,omitempty"`
}

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

// HasText reports whether any cell paragraph carries visible text.
func (t *Table) HasText() bool {
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			for i := range c.Paragraphs {
				if !c.Paragraphs[i].IsBlank() {
					return true
				}
			}
		}
	}
	return false
}

// Document is the root of the parsed-document model.
type Document struct {
	Paragraphs     []Paragraph `json:"paragraphs"`
	Tables         []Table     `json:"tables,omitempty"`
	Sections       []Section   `json:"sections"`
	Styles         []Style     `json:"styles,omitempty"`
	Language       string      `json:"language,omitempty"` // core-properties language tag
	TrackedChanges bool        `json:"trackedChanges,omitempty"`
}

// StyleByName returns the catalogue entry with the given name, or nil.
func (d *Document) StyleByName(name string) *Style {
	for i := range d.Styles {
		if d.Styles[i].Name == name {
			return &d.Styles[i]
		}
	}
	return nil
}

// BaseStyleOf resolves the style a catalogue entry is based on, or nil.
func (d *Document) BaseStyleOf(s *Style) *Style {
	if s == nil || s.BasedOn == "" {
		return nil
	}
	return d.StyleByName(s.BasedOn)
}

// StyleNamesWithPrefix lists catalogue style names starting with prefix, in
// catalogue order.
func (d *Document) StyleNamesWithPrefix(prefix string) []string {
	var out []string
	for i := range d.Styles {
		if strings.HasPrefix(d.Styles[i].Name, prefix) {
			out = append(out, d.Styles[i].Name)
		}
	}
	return out
}
