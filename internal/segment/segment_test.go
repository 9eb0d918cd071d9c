package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

func para(text, style string) docmodel.Paragraph {
	return docmodel.Paragraph{Text: text, StyleName: style}
}

func paperParagraphs() []docmodel.Paragraph {
	body := strings.Repeat("Beam dynamics in the storage ring. ", 3)
	return []docmodel.Paragraph{
		para("BEAM LOSS STUDIES AT THE BOOSTER", "JACoW_Paper Title"),
		para("J. Smith, A. Lee, Example Laboratory, Geneva, Switzerland", "JACoW_Author List"),
		para("", "Normal"),
		para("Abstract", "JACoW_Abstract_Heading"),
		para(body, "JACoW_Body Text Indent"),
		para("INTRODUCTION", "JACoW_Section Heading"),
		para(body, "JACoW_Body Text Indent"),
		para("Lattice Design", "Heading 2"),
		para(body, "JACoW_Body Text Indent"),
		para("Figure 1: Booster layout.", "Caption"),
		para("REFERENCES", "JACoW_Section Heading"),
		para("[1]\tA. Author, “Some paper”.", "JACoW_Reference when <= 9 Refs"),
	}
}

func TestSegmentFullDocument(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: paperParagraphs()}
	seg, err := Segment(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	if seg.TitleIndex != 0 {
		t.Errorf("TitleIndex = %d, want 0", seg.TitleIndex)
	}
	if seg.AbstractIndex != 3 {
		t.Errorf("AbstractIndex = %d, want 3", seg.AbstractIndex)
	}
	if seg.ReferencesIndex != 10 {
		t.Errorf("ReferencesIndex = %d, want 10", seg.ReferencesIndex)
	}
	if len(seg.AuthorBlocks) != 1 {
		t.Fatalf("AuthorBlocks = %d, want 1", len(seg.AuthorBlocks))
	}
	if got := seg.AuthorBlocks[0].Paragraph.StyleName; got != "JACoW_Author List" {
		t.Errorf("author style = %q", got)
	}
	if len(seg.BodyParagraphs) != 3 {
		t.Errorf("BodyParagraphs = %d, want 3", len(seg.BodyParagraphs))
	}

	if len(seg.Headings) != 2 {
		t.Fatalf("Headings = %d, want 2", len(seg.Headings))
	}
	if seg.Headings[0].Kind != SectionHeading || seg.Headings[0].Confidence != Confirmed {
		t.Errorf("heading 0 = %v/%v, want confirmed section heading", seg.Headings[0].Kind, seg.Headings[0].Confidence)
	}
	if seg.Headings[1].Kind != SubsectionHeading || seg.Headings[1].Confidence != Guessed {
		t.Errorf("heading 1 = %v/%v, want guessed subsection from Heading 2", seg.Headings[1].Kind, seg.Headings[1].Confidence)
	}
}

func TestSegmentAbstractNotFound(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("A TITLE", "JACoW_Paper Title"),
		para("J. Smith", "JACoW_Author List"),
	}}
	if _, err := Segment(doc, DefaultOptions()); !errors.Is(err, ErrAbstractNotFound) {
		t.Fatalf("expected ErrAbstractNotFound, got %v", err)
	}
}

func TestSegmentAbstractCaseInsensitive(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("A TITLE", "JACoW_Paper Title"),
		para("ABSTRACT", "JACoW_Abstract_Heading"),
	}}
	seg, err := Segment(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if seg.AbstractIndex != 1 {
		t.Fatalf("AbstractIndex = %d, want 1", seg.AbstractIndex)
	}
}

func TestSegmentNoReferencesHeading(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("A TITLE", "JACoW_Paper Title"),
		para("Abstract", "JACoW_Abstract_Heading"),
		para(strings.Repeat("Body text paragraph long enough. ", 3), "JACoW_Body Text Indent"),
	}}
	seg, err := Segment(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if seg.ReferencesIndex != -1 {
		t.Fatalf("ReferencesIndex = %d, want -1", seg.ReferencesIndex)
	}
}

func TestSegmentCaptionNotHeading(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("A TITLE", "JACoW_Paper Title"),
		para("Abstract", "JACoW_Abstract_Heading"),
		para("Figure 2: Short caption.", "Normal"),
		para("Table 1: Magnet list", "Normal"),
	}}
	seg, err := Segment(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(seg.Headings) != 0 {
		t.Fatalf("caption-prefixed paragraphs classified as headings: %d", len(seg.Headings))
	}
	if len(seg.Unclassified) != 2 {
		t.Fatalf("Unclassified = %d, want 2 caption blocks", len(seg.Unclassified))
	}
	if seg.Unclassified[0].Kind != FigureCaption || seg.Unclassified[1].Kind != TableCaption {
		t.Errorf("caption kinds = %v, %v", seg.Unclassified[0].Kind, seg.Unclassified[1].Kind)
	}
}

func TestAllParagraphs(t *testing.T) {
	doc := &docmodel.Document{
		Paragraphs: []docmodel.Paragraph{
			para("A TITLE", "JACoW_Paper Title"),
			para("", "Normal"),
			para("Body", "MyCustomStyle"),
		},
		Tables: []docmodel.Table{
			{
				// Small table: its cells are listed.
				AfterParagraph: 2,
				Rows: []docmodel.TableRow{
					{Cells: []docmodel.TableCell{{Paragraphs: []docmodel.Paragraph{para("Figure 1: In a frame.", "Caption")}}}},
				},
			},
			{
				// Three-row data table: skipped by the listing.
				AfterParagraph: 2,
				Rows: []docmodel.TableRow{
					{Cells: []docmodel.TableCell{{Paragraphs: []docmodel.Paragraph{para("a", "Normal")}}}},
					{Cells: []docmodel.TableCell{{Paragraphs: []docmodel.Paragraph{para("b", "Normal")}}}},
					{Cells: []docmodel.TableCell{{Paragraphs: []docmodel.Paragraph{para("c", "Normal")}}}},
				},
			},
		},
	}
	got := AllParagraphs(doc)
	if len(got) != 3 {
		t.Fatalf("AllParagraphs = %d rows, want 3", len(got))
	}
	if got[1].StyleAccepted {
		t.Errorf("custom style should not be accepted")
	}
	if !got[2].InTable {
		t.Errorf("small-table cell paragraph should be flagged InTable")
	}
}
