package docmodel

import (
	"errors"
	"strings"
	"testing"
)

func TestLengthConversions(t *testing.T) {
	if got := Inches(1); got != 914400 {
		t.Errorf("Inches(1) = %d EMU, want 914400", got)
	}
	if got := Mm(25.4); got != Inches(1) {
		t.Errorf("Mm(25.4) = %d, want one inch", got)
	}
	if got := Twips(20).Pt(); got != 1.0 {
		t.Errorf("20 twips = %v pt, want 1", got)
	}
	if got := Mm(10).Cm(); got != 1.0 {
		t.Errorf("Mm(10).Cm() = %v, want 1", got)
	}
}

func TestParagraphHelpers(t *testing.T) {
	p := Paragraph{Text: "  trimmed  "}
	if p.Stripped() != "trimmed" {
		t.Errorf("Stripped = %q", p.Stripped())
	}
	blank := Paragraph{Text: " \t "}
	if !blank.IsBlank() {
		t.Errorf("whitespace-only paragraph should be blank")
	}
}

func TestTableHelpers(t *testing.T) {
	tbl := Table{Rows: []TableRow{
		{Cells: []TableCell{{}, {}}},
		{Cells: []TableCell{{}, {}, {Paragraphs: []Paragraph{{Text: "x"}}}}},
	}}
	if tbl.ColumnCount() != 3 {
		t.Errorf("ColumnCount = %d, want widest row", tbl.ColumnCount())
	}
	if !tbl.HasText() {
		t.Errorf("HasText = false with a non-blank cell paragraph")
	}
	if (&Table{}).HasText() {
		t.Errorf("empty table reports text")
	}
}

func TestStyleLookups(t *testing.T) {
	d := Document{Styles: []Style{
		{Name: "JACoW_Paper Title"},
		{Name: "JACoW_Body Text Indent", BasedOn: "Normal"},
		{Name: "Normal"},
	}}
	s := d.StyleByName("JACoW_Body Text Indent")
	if s == nil {
		t.Fatalf("StyleByName returned nil")
	}
	if base := d.BaseStyleOf(s); base == nil || base.Name != "Normal" {
		t.Errorf("BaseStyleOf = %v", base)
	}
	if d.StyleByName("missing") != nil {
		t.Errorf("unknown style should be nil")
	}
	got := d.StyleNamesWithPrefix("JACoW_")
	if len(got) != 2 {
		t.Errorf("StyleNamesWithPrefix = %v", got)
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{
		"paragraphs": [{"text": "Title", "style": "JACoW_Paper Title"}],
		"sections": [{"pageWidth": 7560000, "pageHeight": 10692000}],
		"tables": [{"afterParagraph": 0}]
	}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Paragraphs) != 1 || doc.Paragraphs[0].StyleName != "JACoW_Paper Title" {
		t.Errorf("paragraphs = %+v", doc.Paragraphs)
	}
	if doc.Sections[0].PageWidth != Mm(210) {
		t.Errorf("PageWidth = %d", doc.Sections[0].PageWidth)
	}
}

func TestDecodeInvalidPackage(t *testing.T) {
	if _, err := Decode(strings.NewReader("not json")); !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage, got %v", err)
	}
}

func TestDecodeTableAnchorOutOfBounds(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"paragraphs": [], "tables": [{"afterParagraph": 3}]}`))
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage for dangling table anchor, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/paper.json"); !errors.Is(err, ErrCorruptedFile) {
		t.Fatalf("expected ErrCorruptedFile, got %v", err)
	}
}

func TestEnsureNoTrackedChanges(t *testing.T) {
	d := Document{TrackedChanges: true}
	if err := d.EnsureNoTrackedChanges(); !errors.Is(err, ErrTrackedChanges) {
		t.Fatalf("expected ErrTrackedChanges, got %v", err)
	}
	if err := (&Document{}).EnsureNoTrackedChanges(); err != nil {
		t.Fatalf("clean document: %v", err)
	}
}
