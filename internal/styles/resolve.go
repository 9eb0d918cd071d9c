package styles

import (
	"strings"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

// Alignment aliases the document model's alignment so rule values and
// resolved values share one type.
type Alignment = docmodel.Alignment

const (
	AlignLeft    = docmodel.AlignLeft
	AlignCenter  = docmodel.AlignCenter
	AlignRight   = docmodel.AlignRight
	AlignJustify = docmodel.AlignJustify
)

// Resolved is the effective formatting of one paragraph after walking the
// precedence chain run direct > paragraph direct > paragraph style > base
// style. Nil means unset everywhere along the chain; FontSize falls back to
// the document default of 10pt.
type Resolved struct {
	Alignment       *Alignment
	FontSize        float64
	Bold            *bool
	Italic          *bool
	AllCaps         *bool
	SpaceBefore     *float64
	SpaceAfter      *float64
	FirstLineIndent *float64
}

// Resolve computes the effective formatting for p within doc.
func Resolve(doc *docmodel.Document, p *docmodel.Paragraph) Resolved {
	style := doc.StyleByName(p.StyleName)
	base := doc.BaseStyleOf(style)

	var r Resolved

	// Paragraph-format attributes: style first, base fills gaps, direct
	// formatting wins.
	r.Alignment = chainAlign(styleAlign(style), styleAlign(base))
	r.SpaceBefore = chainFloat(styleSpaceBefore(style), styleSpaceBefore(base))
	r.SpaceAfter = chainFloat(styleSpaceAfter(style), styleSpaceAfter(base))
	r.FirstLineIndent = chainFloat(styleIndent(style), styleIndent(base))

	if p.Format.Alignment != nil {
		r.Alignment = p.Format.Alignment
	}
	if p.Format.SpaceBefore != nil {
		r.SpaceBefore = p.Format.SpaceBefore
	}
	if p.Format.SpaceAfter != nil {
		r.SpaceAfter = p.Format.SpaceAfter
	}
	if p.Format.FirstLineIndent != nil {
		r.FirstLineIndent = p.Format.FirstLineIndent
	}

	// Font attributes: style, base, then run overrides in document order so
	// a later run's direct formatting wins.
	var size *float64
	if style != nil {
		size = style.Font.Size
		r.Bold = style.Font.Bold
		r.Italic = style.Font.Italic
		r.AllCaps = style.Font.AllCaps
	}
	if base != nil {
		if size == nil {
			size = base.Font.Size
		}
		if r.Bold == nil {
			r.Bold = base.Font.Bold
		}
		if r.Italic == nil {
			r.Italic = base.Font.Italic
		}
		if r.AllCaps == nil {
			r.AllCaps = base.Font.AllCaps
		}
	}
	for i := range p.Runs {
		run := &p.Runs[i]
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if run.Font.Size != nil {
			size = run.Font.Size
		}
		if run.Font.Bold != nil {
			r.Bold = run.Font.Bold
		}
		if run.Font.Italic != nil {
			r.Italic = run.Font.Italic
		}
		if run.Font.AllCaps != nil {
			r.AllCaps = run.Font.AllCaps
		}
	}
	if size == nil {
		r.FontSize = 10.0
	} else {
		r.FontSize = *size
	}
	return r
}

// DisplayText reconstructs the paragraph text as it renders, uppercasing
// runs whose effective formatting declares all-caps. The stored characters
// are left untouched.
func DisplayText(doc *docmodel.Document, p *docmodel.Paragraph) string {
	style := doc.StyleByName(p.StyleName)
	base := doc.BaseStyleOf(style)
	styleCaps := (style != nil && style.Font.AllCaps != nil && *style.Font.AllCaps) ||
		(base != nil && base.Font.AllCaps != nil && *base.Font.AllCaps)

	if len(p.Runs) == 0 {
		if styleCaps {
			return strings.ToUpper(p.Text)
		}
		return p.Text
	}
	var b strings.Builder
	for i := range p.Runs {
		run := &p.Runs[i]
		if run.Font.AllCaps != nil && *run.Font.AllCaps {
			b.WriteString(strings.ToUpper(run.Text))
		} else {
			b.WriteString(run.Text)
		}
	}
	out := b.String()
	if styleCaps {
		out = strings.ToUpper(out)
	}
	return out
}

func styleAlign(s *docmodel.Style) *Alignment {
	if s == nil {
		return nil
	}
	return s.Format.Alignment
}

func styleSpaceBefore(s *docmodel.Style) *float64 {
	if s == nil {
		return nil
	}
	return s.Format.SpaceBefore
}

func styleSpaceAfter(s *docmodel.Style) *float64 {
	if s == nil {
		return nil
	}
	return s.Format.SpaceAfter
}

func styleIndent(s *docmodel.Style) *float64 {
	if s == nil {
		return nil
	}
	return s.Format.FirstLineIndent
}

func chainAlign(vals ...*Alignment) *Alignment {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func chainFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
