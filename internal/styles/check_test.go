package styles

import (
	"strings"
	"testing"
)

func TestCheckConformantTitle(t *testing.T) {
	al := AlignCenter
	r := Resolved{
		Alignment:   &al,
		FontSize:    14,
		Bold:        bptr(true),
		SpaceBefore: fptr(0),
		SpaceAfter:  fptr(3),
	}
	ok, d := Check(r, Title)
	if !ok {
		t.Fatalf("expected conformant title to pass, detail %+v", d)
	}
	if d.FontSize != "14" {
		t.Errorf("FontSize detail = %q, want observed value", d.FontSize)
	}
	if d.FirstLineIndent != "NA" {
		t.Errorf("FirstLineIndent detail = %q, want NA for unconstrained field", d.FirstLineIndent)
	}
}

func TestCheckMismatchAnnotation(t *testing.T) {
	al := AlignLeft
	r := Resolved{Alignment: &al, FontSize: 12, Bold: bptr(true), SpaceBefore: fptr(0), SpaceAfter: fptr(3)}
	ok, d := Check(r, Title)
	if ok {
		t.Fatalf("expected wrong alignment and size to fail")
	}
	if d.Alignment != "LEFT should be CENTER" {
		t.Errorf("Alignment detail = %q", d.Alignment)
	}
	if d.FontSize != "12 should be 14" {
		t.Errorf("FontSize detail = %q", d.FontSize)
	}
}

func TestCheckUnsetSpacingEqualsZero(t *testing.T) {
	al := AlignCenter
	// SpaceBefore left nil: the rule expects 0.0 and no explicit spacing
	// means none.
	r := Resolved{Alignment: &al, FontSize: 14, Bold: bptr(true), SpaceAfter: fptr(3)}
	ok, d := Check(r, Title)
	if !ok {
		t.Fatalf("unset spacing should satisfy an expected 0.0, detail %+v", d)
	}
	if d.SpaceBefore != "NA" {
		t.Errorf("SpaceBefore detail = %q, want observed NA", d.SpaceBefore)
	}
}

func TestCheckBoundedSpacing(t *testing.T) {
	al := AlignJustify
	base := Resolved{
		Alignment:       &al,
		FontSize:        10,
		SpaceAfter:      fptr(3),
		FirstLineIndent: fptr(9.35),
	}

	pass := base
	pass.SpaceBefore = fptr(6)
	if ok, d := Check(pass, BodyParagraph); !ok {
		t.Fatalf("space before 6 should satisfy >= 3, detail %+v", d)
	}

	fail := base
	fail.SpaceBefore = fptr(1)
	ok, d := Check(fail, BodyParagraph)
	if ok {
		t.Fatalf("space before 1 should violate >= 3")
	}
	if !strings.Contains(d.SpaceBefore, "should be >= 3") {
		t.Errorf("SpaceBefore detail = %q, want bounded annotation", d.SpaceBefore)
	}
}

func TestCheckExpectedUnsetFlag(t *testing.T) {
	al := AlignCenter
	r := Resolved{
		Alignment:   &al,
		FontSize:    14,
		Bold:        bptr(true),
		Italic:      bptr(true),
		SpaceBefore: fptr(0),
		SpaceAfter:  fptr(3),
	}
	ok, d := Check(r, Title)
	if ok {
		t.Fatalf("italic title should fail the expected-unset italic field")
	}
	if d.Italic != "True should be NA" {
		t.Errorf("Italic detail = %q", d.Italic)
	}
}

func TestCaseOK(t *testing.T) {
	cases := []struct {
		text string
		kind CaseKind
		want bool
	}{
		{"INTRODUCTION", CaseUppercase, true},
		{"Introduction", CaseUppercase, false},
		{"BEAM DYNAMICS 2", CaseUppercase, true},
		{"Lattice Design and Optics", CaseInitialCaps, true},
		{"Lattice design", CaseInitialCaps, false},
		{"Use of the RF Gun", CaseInitialCaps, true}, // short words exempt
		{"whatever goes", CaseNone, true},
	}
	for _, tc := range cases {
		if got := CaseOK(tc.text, tc.kind); got != tc.want {
			t.Errorf("CaseOK(%q, %q) = %v, want %v", tc.text, tc.kind, got, tc.want)
		}
	}
}

func TestAcceptableStyleName(t *testing.T) {
	for _, name := range []string{"JACoW_Paper Title", "Normal", "Caption"} {
		if !AcceptableStyleName(name) {
			t.Errorf("AcceptableStyleName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "MyCustomStyle", "heading 3"} {
		if AcceptableStyleName(name) {
			t.Errorf("AcceptableStyleName(%q) = true, want false", name)
		}
	}
}

func TestRuleAccepts(t *testing.T) {
	if !Title.Accepts("JACoW_Paper Title") || !Title.Accepts("Paper Title") {
		t.Errorf("Title should accept both house and plain names")
	}
	if Title.Accepts("") {
		t.Errorf("empty style name must never be accepted")
	}
	if ReferenceTenOnwards.Accepts("") {
		t.Errorf("rule with no plain equivalent must not accept empty name")
	}
}
