package styles

import (
	"testing"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestResolvePrecedence(t *testing.T) {
	doc := &docmodel.Document{
		Styles: []docmodel.Style{
			{
				Name: "Base",
				Font: docmodel.Font{Size: fptr(9), Bold: bptr(false), Italic: bptr(true)},
				Format: docmodel.ParagraphFormat{
					SpaceBefore: fptr(6),
					SpaceAfter:  fptr(6),
				},
			},
			{
				Name:    "Derived",
				BasedOn: "Base",
				Font:    docmodel.Font{Size: fptr(12)},
				Format: docmodel.ParagraphFormat{
					SpaceBefore: fptr(3),
				},
			},
		},
	}

	p := docmodel.Paragraph{
		Text:      "text",
		StyleName: "Derived",
		Format:    docmodel.ParagraphFormat{SpaceAfter: fptr(0)},
		Runs: []docmodel.Run{
			{Text: " "},
			{Text: "text", Font: docmodel.Font{Bold: bptr(true)}},
		},
	}
	r := Resolve(doc, &p)

	if r.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12 from derived style", r.FontSize)
	}
	if r.SpaceBefore == nil || *r.SpaceBefore != 3 {
		t.Errorf("SpaceBefore = %v, want 3 from derived style", r.SpaceBefore)
	}
	if r.SpaceAfter == nil || *r.SpaceAfter != 0 {
		t.Errorf("SpaceAfter = %v, want 0 from direct formatting", r.SpaceAfter)
	}
	if r.Bold == nil || !*r.Bold {
		t.Errorf("Bold = %v, want true from run formatting", r.Bold)
	}
	if r.Italic == nil || !*r.Italic {
		t.Errorf("Italic = %v, want true inherited from base style", r.Italic)
	}
}

func TestResolveDefaultFontSize(t *testing.T) {
	doc := &docmodel.Document{}
	p := docmodel.Paragraph{Text: "plain"}
	r := Resolve(doc, &p)
	if r.FontSize != 10.0 {
		t.Fatalf("FontSize = %v, want document default 10", r.FontSize)
	}
	if r.Alignment != nil {
		t.Fatalf("Alignment = %v, want nil when unset everywhere", *r.Alignment)
	}
}

func TestResolveBlankRunIgnored(t *testing.T) {
	doc := &docmodel.Document{}
	p := docmodel.Paragraph{
		Text: "x",
		Runs: []docmodel.Run{
			{Text: "x", Font: docmodel.Font{Size: fptr(14)}},
			{Text: "  ", Font: docmodel.Font{Size: fptr(8)}},
		},
	}
	r := Resolve(doc, &p)
	if r.FontSize != 14 {
		t.Fatalf("FontSize = %v, want 14; whitespace-only runs must not override", r.FontSize)
	}
}

func TestDisplayText(t *testing.T) {
	doc := &docmodel.Document{
		Styles: []docmodel.Style{
			{Name: "Shouty", Font: docmodel.Font{AllCaps: bptr(true)}},
		},
	}
	cases := []struct {
		name string
		p    docmodel.Paragraph
		want string
	}{
		{
			"style all caps without runs",
			docmodel.Paragraph{Text: "Beam Dynamics", StyleName: "Shouty"},
			"BEAM DYNAMICS",
		},
		{
			"run all caps",
			docmodel.Paragraph{Text: "Beam Dynamics", Runs: []docmodel.Run{
				{Text: "Beam ", Font: docmodel.Font{AllCaps: bptr(true)}},
				{Text: "Dynamics"},
			}},
			"BEAM Dynamics",
		},
		{
			"no caps anywhere",
			docmodel.Paragraph{Text: "Beam Dynamics"},
			"Beam Dynamics",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayText(doc, &tc.p); got != tc.want {
				t.Fatalf("DisplayText = %q, want %q", got, tc.want)
			}
		})
	}
}
