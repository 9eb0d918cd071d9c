// Package segment walks the paragraph stream once and infers document
// structure: the title, the author block, the abstract heading, heading
// levels, body paragraphs, and the references boundary. Section boundaries
// are inferred from content, not markup, so some classifications are
// heuristic and carry an explicit confidence.
package segment

import (
	"errors"
	"strings"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/styles"
)

// ErrAbstractNotFound indicates no literal "Abstract" heading paragraph was
// found; the whole check aborts for this document.
var ErrAbstractNotFound = errors.New("abstract heading not found")

// Kind classifies one block of the document.
type Kind int

const (
	Unclassified Kind = iota
	Title
	AuthorList
	AbstractHeading
	SectionHeading
	SubsectionHeading
	ThirdHeading
	BodyParagraph
	FigureCaption
	TableCaption
	ReferenceEntry
)

func (k Kind) String() string {
	switch k {
	case Title:
		return "Title"
	case AuthorList:
		return "AuthorList"
	case AbstractHeading:
		return "AbstractHeading"
	case SectionHeading:
		return "SectionHeading"
	case SubsectionHeading:
		return "SubsectionHeading"
	case ThirdHeading:
		return "ThirdHeading"
	case BodyParagraph:
		return "BodyParagraph"
	case FigureCaption:
		return "FigureCaption"
	case TableCaption:
		return "TableCaption"
	case ReferenceEntry:
		return "ReferenceEntry"
	default:
		return "Unclassified"
	}
}

// Confidence records how a classification was reached.
type Confidence int

const (
	Confirmed Confidence = iota // declared style matched the rule table
	Guessed                     // text heuristic, surfaced as warn
)

// Block is one classified paragraph.
type Block struct {
	Index      int
	Kind       Kind
	Confidence Confidence
	Paragraph  *docmodel.Paragraph
}

// Segments is the outcome of one segmentation pass.
type Segments struct {
	TitleIndex      int
	AbstractIndex   int
	ReferencesIndex int // -1 when the document has no references heading

	Title           Block
	AuthorBlocks    []Block
	AbstractBlock   Block
	Headings        []Block
	BodyParagraphs  []Block
	Unclassified    []Block
}

// Options tunes the text heuristics.
type Options struct {
	// BodyMinLen is the stripped length at which a paragraph stops being a
	// heading candidate and becomes a body-paragraph candidate.
	BodyMinLen int
	// HeadingMinLen is the shortest text the heading guesser considers.
	HeadingMinLen int
}

// DefaultOptions match the template's observed proportions.
func DefaultOptions() Options {
	return Options{BodyMinLen: 50, HeadingMinLen: 10}
}

type state int

const (
	seekingTitle state = iota
	seekingAbstract
	inBody
	atReferences
)

// Segment runs the single forward pass over doc's paragraphs.
func Segment(doc *docmodel.Document, opts Options) (*Segments, error) {
	if opts.BodyMinLen == 0 {
		opts = DefaultOptions()
	}
	seg := &Segments{TitleIndex: -1, AbstractIndex: -1, ReferencesIndex: -1}

	st := seekingTitle
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		text := p.Stripped()
		if text == "" {
			continue
		}
		switch st {
		case seekingTitle:
			seg.TitleIndex = i
			seg.Title = Block{Index: i, Kind: Title, Paragraph: p}
			st = seekingAbstract

		case seekingAbstract:
			if strings.EqualFold(text, "abstract") {
				seg.AbstractIndex = i
				seg.AbstractBlock = Block{Index: i, Kind: AbstractHeading, Paragraph: p}
				st = inBody
				continue
			}
			seg.AuthorBlocks = append(seg.AuthorBlocks, Block{Index: i, Kind: AuthorList, Paragraph: p})

		case inBody:
			if strings.EqualFold(text, "references") {
				seg.ReferencesIndex = i
				st = atReferences
				continue
			}
			seg.classify(i, p, text, opts)

		case atReferences:
			// Downstream engines re-scan from the boundary themselves.
		}
	}
	if seg.AbstractIndex < 0 {
		return nil, ErrAbstractNotFound
	}
	return seg, nil
}

func (seg *Segments) classify(i int, p *docmodel.Paragraph, text string, opts Options) {
	if kind, ok := headingKindForStyle(p.StyleName); ok {
		seg.Headings = append(seg.Headings, Block{Index: i, Kind: kind, Confidence: Confirmed, Paragraph: p})
		return
	}
	if isCaptionPrefixed(text) {
		kind := FigureCaption
		if strings.HasPrefix(text, "Table ") {
			kind = TableCaption
		}
		seg.Unclassified = append(seg.Unclassified, Block{Index: i, Kind: kind, Confidence: Confirmed, Paragraph: p})
		return
	}
	n := len(text)
	if n >= opts.HeadingMinLen && n < opts.BodyMinLen {
		if kind, ok := defaultHeadingGuess(p.StyleName); ok {
			seg.Headings = append(seg.Headings, Block{Index: i, Kind: kind, Confidence: Guessed, Paragraph: p})
			return
		}
		seg.Unclassified = append(seg.Unclassified, Block{Index: i, Kind: Unclassified, Paragraph: p})
		return
	}
	if n >= opts.BodyMinLen {
		seg.BodyParagraphs = append(seg.BodyParagraphs, Block{Index: i, Kind: BodyParagraph, Confidence: Confirmed, Paragraph: p})
		return
	}
	seg.Unclassified = append(seg.Unclassified, Block{Index: i, Kind: Unclassified, Paragraph: p})
}

// headingKindForStyle matches a declared style name against the rule
// table's accepted heading names.
func headingKindForStyle(name string) (Kind, bool) {
	switch {
	case styles.SectionHeading.Accepts(name):
		return SectionHeading, true
	case styles.SubsectionHeading.Accepts(name):
		return SubsectionHeading, true
	case styles.ThirdHeading.Accepts(name):
		return ThirdHeading, true
	}
	return Unclassified, false
}

// defaultHeadingGuess maps Word's stock heading styles to levels. The match
// is uncertain and callers must keep it warn-level.
func defaultHeadingGuess(name string) (Kind, bool) {
	switch name {
	case "Heading", "Heading 1":
		return SectionHeading, true
	case "Heading 2":
		return SubsectionHeading, true
	case "Heading 3":
		return ThirdHeading, true
	}
	return Unclassified, false
}

func isCaptionPrefixed(text string) bool {
	return strings.HasPrefix(text, "Table ") ||
		strings.HasPrefix(text, "Figure ") ||
		strings.HasPrefix(text, "Fig. ")
}

// HeadingRule returns the rule-table entry for a classified heading kind.
func HeadingRule(k Kind) (styles.Rule, bool) {
	switch k {
	case SectionHeading:
		return styles.SectionHeading, true
	case SubsectionHeading:
		return styles.SubsectionHeading, true
	case ThirdHeading:
		return styles.ThirdHeading, true
	}
	return styles.Rule{}, false
}
