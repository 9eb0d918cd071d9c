// Package styles holds the declarative JACoW rule table, the formatting
// resolver that walks direct/style/base-style inheritance chains, and the
// conformance checker that compares a resolved style against a rule.
package styles

// CmpOp is a comparison operator for bounded numeric expectations.
type CmpOp string

const (
	OpEq CmpOp = "="
	OpGe CmpOp = ">="
	OpLe CmpOp = "<="
	OpGt CmpOp = ">"
	OpLt CmpOp = "<"
)

// NumExpect is an expected numeric value, exact or inequality-bounded.
type NumExpect struct {
	Op    CmpOp
	Value float64
}

// Exact builds an exact numeric expectation.
func Exact(v float64) *NumExpect { return &NumExpect{Op: OpEq, Value: v} }

// AtLeast builds a ">=" expectation.
func AtLeast(v float64) *NumExpect { return &NumExpect{Op: OpGe, Value: v} }

// BoolExpect is an expected tri-state flag; Value nil means the attribute
// must resolve to unset.
type BoolExpect struct {
	Value *bool
}

// AlignExpect is an expected alignment; Value nil means must be unset.
type AlignExpect struct {
	Value *Alignment
}

// CaseKind names the letter-case convention expected of a heading.
type CaseKind string

const (
	CaseNone        CaseKind = ""
	CaseUppercase   CaseKind = "uppercase"
	CaseInitialCaps CaseKind = "initialcaps"
)

// Rule is one immutable entry of the rule table. Nil expectation fields are
// "don't care" and render as NA in check details.
type Rule struct {
	JACoWStyle string // house style name
	PlainStyle string // legacy/plain equivalent, may be empty

	Alignment       *AlignExpect
	FontSize        *NumExpect
	SpaceBefore     *NumExpect
	SpaceAfter      *NumExpect
	FirstLineIndent *NumExpect
	Bold            *BoolExpect
	Italic          *BoolExpect
	Case            CaseKind
}

// Accepts reports whether a declared style name matches either of the
// rule's approved names.
func (r Rule) Accepts(name string) bool {
	return name != "" && (name == r.JACoWStyle || name == r.PlainStyle)
}

func boolPtr(b bool) *bool            { return &b }
func alignPtr(a Alignment) *Alignment { return &a }

func mustAlign(a Alignment) *AlignExpect { return &AlignExpect{Value: alignPtr(a)} }
func unsetAlign() *AlignExpect           { return &AlignExpect{} }
func mustBold() *BoolExpect              { return &BoolExpect{Value: boolPtr(true)} }
func mustItalic() *BoolExpect            { return &BoolExpect{Value: boolPtr(true)} }
func unsetFlag() *BoolExpect             { return &BoolExpect{} }

// The rule table, one entry per structural block kind. Values follow the
// JACoW template: sizes and spacing in points, indents in points
// (9.35pt = 0.33cm, -14.75pt = -0.52cm, -18.7pt = -0.68cm).
var (
	Title = Rule{
		JACoWStyle:  "JACoW_Paper Title",
		PlainStyle:  "Paper Title",
		Alignment:   mustAlign(AlignCenter),
		FontSize:    Exact(14.0),
		SpaceBefore: Exact(0.0),
		SpaceAfter:  Exact(3.0),
		Bold:        mustBold(),
		Italic:      unsetFlag(),
	}

	AuthorList = Rule{
		JACoWStyle:  "JACoW_Author List",
		PlainStyle:  "Author List",
		Alignment:   mustAlign(AlignCenter),
		FontSize:    Exact(12.0),
		SpaceBefore: Exact(9.0),
		SpaceAfter:  Exact(12.0),
		Bold:        unsetFlag(),
		Italic:      unsetFlag(),
	}

	AbstractHeading = Rule{
		JACoWStyle:  "JACoW_Abstract_Heading",
		PlainStyle:  "Abstract_Heading",
		Alignment:   unsetAlign(),
		FontSize:    Exact(12.0),
		SpaceBefore: Exact(0.0),
		SpaceAfter:  Exact(3.0),
		Bold:        unsetFlag(),
		Italic:      mustItalic(),
	}

	SectionHeading = Rule{
		JACoWStyle:  "JACoW_Section Heading",
		PlainStyle:  "Section Heading",
		Alignment:   mustAlign(AlignCenter),
		FontSize:    Exact(12.0),
		SpaceBefore: Exact(9.0),
		SpaceAfter:  Exact(3.0),
		Bold:        mustBold(),
		Italic:      unsetFlag(),
		Case:        CaseUppercase,
	}

	SubsectionHeading = Rule{
		JACoWStyle:  "JACoW_Subsection Heading",
		PlainStyle:  "Subsection Heading",
		Alignment:   unsetAlign(),
		FontSize:    Exact(12.0),
		SpaceBefore: Exact(6.0),
		SpaceAfter:  Exact(3.0),
		Bold:        unsetFlag(),
		Italic:      mustItalic(),
		Case:        CaseInitialCaps,
	}

	ThirdHeading = Rule{
		JACoWStyle:  "JACoW_Third-level Heading",
		PlainStyle:  "Third-level Heading",
		Alignment:   unsetAlign(),
		FontSize:    Exact(10.0),
		SpaceBefore: Exact(6.0),
		SpaceAfter:  Exact(0.0),
		Bold:        mustBold(),
		Italic:      unsetFlag(),
		Case:        CaseInitialCaps,
	}

	BodyParagraph = Rule{
		JACoWStyle:      "JACoW_Body Text Indent",
		PlainStyle:      "Body Text Indent",
		Alignment:       mustAlign(AlignJustify),
		FontSize:        Exact(10.0),
		SpaceBefore:     AtLeast(3.0),
		SpaceAfter:      Exact(3.0),
		FirstLineIndent: Exact(9.35),
	}

	FigureCaptionSingle = Rule{
		JACoWStyle:  "Figure Caption",
		Alignment:   mustAlign(AlignCenter),
		FontSize:    Exact(10.0),
		SpaceBefore: Exact(3.0),
		SpaceAfter:  AtLeast(3.0),
		Bold:        unsetFlag(),
		Italic:      unsetFlag(),
	}

	FigureCaptionMulti = Rule{
		JACoWStyle:  "Figure Caption Multi Line",
		Alignment:   mustAlign(AlignJustify),
		FontSize:    Exact(10.0),
		SpaceBefore: Exact(3.0),
		SpaceAfter:  AtLeast(3.0),
		Bold:        unsetFlag(),
		Italic:      unsetFlag(),
	}

	TableCaptionSingle = Rule{
		JACoWStyle:  "Table Caption",
		Alignment:   mustAlign(AlignCenter),
		FontSize:    Exact(10.0),
		SpaceBefore: AtLeast(3.0),
		SpaceAfter:  Exact(3.0),
		Bold:        unsetFlag(),
		Italic:      unsetFlag(),
	}

	TableCaptionMulti = Rule{
		JACoWStyle:  "Table Caption Multi Line",
		Alignment:   mustAlign(AlignJustify),
		FontSize:    Exact(10.0),
		SpaceBefore: AtLeast(3.0),
		SpaceAfter:  Exact(3.0),
		Bold:        unsetFlag(),
		Italic:      unsetFlag(),
	}

	// Reference list styles are size-tiered: one style when the list holds
	// at most nine entries, otherwise a narrow-indent style for ids 1-9 and
	// a wider one from id 10 onwards.
	ReferenceAtMostNine = Rule{
		JACoWStyle:      "JACoW_Reference when <= 9 Refs",
		Alignment:       mustAlign(AlignJustify),
		FontSize:        Exact(9.0),
		SpaceBefore:     Exact(0.0),
		SpaceAfter:      Exact(3.0),
		FirstLineIndent: Exact(-14.75),
	}

	ReferenceFirstNineOfMany = Rule{
		JACoWStyle:      "JACoW_Reference #1-9 when >= 10 Refs",
		Alignment:       mustAlign(AlignJustify),
		FontSize:        Exact(9.0),
		SpaceBefore:     Exact(0.0),
		SpaceAfter:      Exact(3.0),
		FirstLineIndent: Exact(-14.75),
	}

	ReferenceTenOnwards = Rule{
		JACoWStyle:      "JACoW_Reference #10 onwards",
		Alignment:       mustAlign(AlignJustify),
		FontSize:        Exact(9.0),
		SpaceBefore:     Exact(0.0),
		SpaceAfter:      Exact(3.0),
		FirstLineIndent: Exact(-18.7),
	}
)

// KnownStyles are the template's own style names; a document built from the
// JACoW template registers these.
var KnownStyles = []string{
	"JACoW_Abstract_Heading",
	"JACoW_Author List",
	"JACoW_Body Text Indent",
	"JACoW_Bulleted List",
	"JACoW_Numbered list",
	"JACoW_Paper Title",
	"JACoW_Reference #10 onwards",
	"JACoW_Reference #1-9 when >= 10 Refs",
	"JACoW_Reference when <= 9 Refs",
	"JACoW_Reference Italics",
	"JACoW_Reference url_doi",
	"JACoW_Third-level Heading",
	"JACoW_Section Heading",
	"JACoW_Subsection Heading",
}

// OtherAcceptedStyles also appear in documents created from the official
// templates: Caption and Normal for figure/table titles, plain Body Text
// Indent in a few places, Heading 3 for the acronyms header.
var OtherAcceptedStyles = []string{
	"Body Text Indent",
	"Normal",
	"Caption",
	"Heading 3",
}

// AcceptableStyleName reports whether a declared paragraph style is either
// a house style or one of the tolerated plain styles.
func AcceptableStyleName(name string) bool {
	for _, s := range KnownStyles {
		if name == s {
			return true
		}
	}
	for _, s := range OtherAcceptedStyles {
		if name == s {
			return true
		}
	}
	return false
}
