// Package page classifies page geometry: supported paper sizes, the exact
// margin set the template demands for each, and the column layout.
package page

import (
	"errors"
	"math"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

// ErrUnknownPageSize indicates a section width matching neither supported
// page geometry.
var ErrUnknownPageSize = errors.New("unknown page size")

const (
	SizeA4     = "A4"
	SizeLetter = "Letter"
)

// Required margins per size. A4 values are millimetres rounded to whole
// numbers, Letter values are inches rounded to two decimals, in
// top/bottom/left/right order.
var (
	a4Margins     = [4]float64{37, 19, 20, 20}
	letterMargins = [4]float64{0.75, 0.75, 0.79, 1.02}
)

// SizeOf classifies the section's page width, tolerating sub-10^4-EMU
// jitter the same way the template tooling writes widths.
func SizeOf(sec docmodel.Section) (string, error) {
	w := roundEMU(sec.PageWidth)
	switch w {
	case roundEMU(docmodel.Mm(210)):
		return SizeA4, nil
	case roundEMU(docmodel.Inches(8.5)):
		return SizeLetter, nil
	}
	return "", ErrUnknownPageSize
}

func roundEMU(l docmodel.Length) docmodel.Length {
	return docmodel.Length(math.Round(float64(l)/10000) * 10000)
}

// Margins returns the section margins in the unit convention of its page
// size, top/bottom/left/right.
func Margins(sec docmodel.Section) ([4]float64, error) {
	size, err := SizeOf(sec)
	if err != nil {
		return [4]float64{}, err
	}
	if size == SizeA4 {
		return [4]float64{
			math.Round(sec.TopMargin.Mm()),
			math.Round(sec.BottomMargin.Mm()),
			math.Round(sec.LeftMargin.Mm()),
			math.Round(sec.RightMargin.Mm()),
		}, nil
	}
	return [4]float64{
		round2(sec.TopMargin.Inches()),
		round2(sec.BottomMargin.Inches()),
		round2(sec.LeftMargin.Inches()),
		round2(sec.RightMargin.Inches()),
	}, nil
}

// CheckMargins reports whether the section margins match the template
// values for its page size exactly.
func CheckMargins(sec docmodel.Section) (bool, error) {
	size, err := SizeOf(sec)
	if err != nil {
		return false, err
	}
	got, err := Margins(sec)
	if err != nil {
		return false, err
	}
	if size == SizeA4 {
		return got == a4Margins, nil
	}
	return got == letterMargins, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ColumnLayout is the resolved column setup of one section.
type ColumnLayout struct {
	Count    int
	GutterCm float64
	OK       bool
}

// Columns checks the section column layout: a single column, or two columns
// separated by the template's 0.51cm gutter, is conformant.
func Columns(sec docmodel.Section) ColumnLayout {
	count := sec.ColumnCount
	if count == 0 {
		count = 1
	}
	gutter := round2(sec.ColumnGutter.Cm())
	ok := count == 1 || (count == 2 && gutter == 0.51)
	return ColumnLayout{Count: count, GutterCm: gutter, OK: ok}
}

// SectionCheck is the per-section row of the margins report category.
type SectionCheck struct {
	PageSize  string       `json:"page_size"`
	Margins   [4]float64   `json:"margins"`
	MarginsOK bool         `json:"margins_ok"`
	Columns   ColumnLayout `json:"columns"`
}

// CheckSections classifies every page section. An unsupported width is a
// structural failure for the whole document.
func CheckSections(doc *docmodel.Document) ([]SectionCheck, error) {
	out := make([]SectionCheck, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		size, err := SizeOf(sec)
		if err != nil {
			return nil, err
		}
		margins, err := Margins(sec)
		if err != nil {
			return nil, err
		}
		ok, err := CheckMargins(sec)
		if err != nil {
			return nil, err
		}
		out = append(out, SectionCheck{
			PageSize:  size,
			Margins:   margins,
			MarginsOK: ok,
			Columns:   Columns(sec),
		})
	}
	return out, nil
}
