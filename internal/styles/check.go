package styles

import (
	"strconv"
	"strings"
	"unicode"
)

// Detail carries the per-field outcome of a conformance check, rendered for
// human display: the observed value when the field matched, an
// "<observed> should be <expected>" annotation when it did not, and "NA"
// for fields the rule does not constrain.
type Detail struct {
	Alignment       string `json:"alignment"`
	FontSize        string `json:"font_size"`
	SpaceBefore     string `json:"space_before"`
	SpaceAfter      string `json:"space_after"`
	FirstLineIndent string `json:"first_line_indent"`
	Bold            string `json:"bold"`
	Italic          string `json:"italic"`
	AllCaps         string `json:"all_caps"`
}

const na = "NA"

// Check compares a resolved style against a rule-table entry. It is pure
// and total: well-formed input never fails, mismatches are reported in the
// returned detail and the overall ok is the conjunction of all field
// comparisons.
func Check(r Resolved, rule Rule) (bool, Detail) {
	ok := true
	d := Detail{
		Alignment:       na,
		FontSize:        na,
		SpaceBefore:     na,
		SpaceAfter:      na,
		FirstLineIndent: na,
		Bold:            na,
		Italic:          na,
		AllCaps:         fmtBool(r.AllCaps),
	}

	if rule.Alignment != nil {
		got := fmtAlign(r.Alignment)
		want := fmtAlign(rule.Alignment.Value)
		if alignEqual(r.Alignment, rule.Alignment.Value) {
			d.Alignment = got
		} else {
			d.Alignment = got + " should be " + want
			ok = false
		}
	}
	if rule.FontSize != nil {
		size := r.FontSize
		fieldOK, display := checkNum(&size, rule.FontSize, false)
		d.FontSize = display
		ok = ok && fieldOK
	}
	if rule.SpaceBefore != nil {
		fieldOK, display := checkNum(r.SpaceBefore, rule.SpaceBefore, true)
		d.SpaceBefore = display
		ok = ok && fieldOK
	}
	if rule.SpaceAfter != nil {
		fieldOK, display := checkNum(r.SpaceAfter, rule.SpaceAfter, true)
		d.SpaceAfter = display
		ok = ok && fieldOK
	}
	if rule.FirstLineIndent != nil {
		fieldOK, display := checkNum(r.FirstLineIndent, rule.FirstLineIndent, false)
		d.FirstLineIndent = display
		ok = ok && fieldOK
	}
	if rule.Bold != nil {
		fieldOK, display := checkBool(r.Bold, rule.Bold.Value)
		d.Bold = display
		ok = ok && fieldOK
	}
	if rule.Italic != nil {
		fieldOK, display := checkBool(r.Italic, rule.Italic.Value)
		d.Italic = display
		ok = ok && fieldOK
	}
	return ok, d
}

// checkNum applies exact or bounded comparison. For spacing fields an unset
// observed value is equivalent to an expected 0.0 ("no spacing").
func checkNum(observed *float64, want *NumExpect, zeroEqualsNil bool) (bool, string) {
	got := fmtNumPtr(observed)
	if want.Op == OpEq || want.Op == "" {
		match := observed != nil && *observed == want.Value
		if !match && zeroEqualsNil && observed == nil && want.Value == 0.0 {
			match = true
		}
		if match {
			return true, got
		}
		return false, got + " should be " + fmtNum(want.Value)
	}
	if observed != nil && compare(*observed, want.Op, want.Value) {
		return true, got
	}
	return false, got + " should be " + string(want.Op) + " " + fmtNum(want.Value)
}

func checkBool(observed, want *bool) (bool, string) {
	got := fmtBool(observed)
	match := (observed == nil && want == nil) ||
		(observed != nil && want != nil && *observed == *want)
	if match {
		return true, got
	}
	return false, got + " should be " + fmtBool(want)
}

func compare(v float64, op CmpOp, bound float64) bool {
	switch op {
	case OpGe:
		return v >= bound
	case OpLe:
		return v <= bound
	case OpGt:
		return v > bound
	case OpLt:
		return v < bound
	default:
		return v == bound
	}
}

func alignEqual(got, want *Alignment) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

func fmtAlign(a *Alignment) string {
	if a == nil {
		return na
	}
	return string(*a)
}

func fmtBool(b *bool) string {
	if b == nil {
		return na
	}
	if *b {
		return "True"
	}
	return "False"
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtNumPtr(v *float64) string {
	if v == nil {
		return na
	}
	return fmtNum(*v)
}

// CaseOK reports whether text follows the letter-case convention a heading
// rule declares. Uppercase requires every letter to be upper; initial caps
// requires each word longer than three letters to start with an upper. The
// check is heuristic and callers surface failures as warnings.
func CaseOK(text string, kind CaseKind) bool {
	switch kind {
	case CaseUppercase:
		for _, r := range text {
			if unicode.IsLetter(r) && !unicode.IsUpper(r) {
				return false
			}
		}
		return true
	case CaseInitialCaps:
		for _, w := range strings.Fields(text) {
			runes := []rune(w)
			if len(runes) <= 3 {
				continue
			}
			if unicode.IsLetter(runes[0]) && !unicode.IsUpper(runes[0]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
