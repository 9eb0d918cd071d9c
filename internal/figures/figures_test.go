package figures

import (
	"testing"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

func para(text, style string) docmodel.Paragraph {
	return docmodel.Paragraph{Text: text, StyleName: style}
}

func TestExtractCrossLinks(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("The layout is shown in Fig. 1 and discussed below.", "JACoW_Body Text Indent"),
		para("Figure 1: Layout of the injection line.", "Caption"),
		para("Figure 2: Vacuum profile.", "Caption"),
		para("Losses scale as shown in Figure 3 here.", "JACoW_Body Text Indent"),
	}}
	res := Extract(doc)

	if got := res.IDs(); len(got) != 3 {
		t.Fatalf("IDs = %v, want 1..3", got)
	}

	e1 := res[1]
	if !e1.Found || !e1.Used || !e1.CaptionOK || e1.Duplicate {
		t.Errorf("figure 1 = %+v, want found, used, caption ok", e1)
	}
	if len(e1.Refs) != 1 || e1.Refs[0] != "Fig. 1" {
		t.Errorf("figure 1 refs = %v", e1.Refs)
	}

	e2 := res[2]
	if !e2.Found || e2.Used {
		t.Errorf("figure 2 = %+v, want captioned but never mentioned", e2)
	}

	e3 := res[3]
	if e3.Found || !e3.Used {
		t.Errorf("figure 3 = %+v, want mentioned but never captioned", e3)
	}
}

func TestExtractDuplicateCaption(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("Figure 2: First version.", "Caption"),
		para("Figure 2: Second version.", "Caption"),
	}}
	res := Extract(doc)
	e := res[2]
	if !e.Duplicate {
		t.Fatalf("two captions for the same id must set Duplicate")
	}
	if e.CaptionOK {
		t.Errorf("duplicate caption must not count as caption ok")
	}
	if e1 := res[1]; e1.Found || e1.Duplicate {
		t.Errorf("figure 1 = %+v, want empty gap entity", e1)
	}
}

func TestExtractPeriodCaptionNotAMention(t *testing.T) {
	// "Figure 1." at paragraph start is a mispunctuated caption, not a
	// mention; counting it as used would hide the punctuation finding.
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("Figure 1. Beam envelope along the linac.", "Caption"),
	}}
	res := Extract(doc)
	e := res[1]
	if e.Used {
		t.Errorf("period-style caption counted as in-text mention")
	}
	if !e.Found {
		t.Errorf("period-style caption should still be found")
	}
	if e.CaptionOK {
		t.Errorf("caption ending the marker with a period must fail CaptionOK")
	}
}

func TestExtractTableCellCaption(t *testing.T) {
	doc := &docmodel.Document{
		Paragraphs: []docmodel.Paragraph{
			para("See Fig. 1 for the arrangement.", "JACoW_Body Text Indent"),
		},
		Tables: []docmodel.Table{{
			AfterParagraph: 0,
			Rows: []docmodel.TableRow{{Cells: []docmodel.TableCell{{
				Paragraphs: []docmodel.Paragraph{para("Figure 1: Framed figure.", "Caption")},
			}}}},
		}},
	}
	res := Extract(doc)
	e := res[1]
	if !e.Found || !e.Used {
		t.Fatalf("figure 1 = %+v, want caption found inside table cell", e)
	}
}

func TestExtractStyleTier(t *testing.T) {
	al := docmodel.AlignCenter
	long := "Figure 1: A caption long enough to wrap onto a second line in the narrow column."
	doc := &docmodel.Document{
		Styles: []docmodel.Style{{
			Name:   "Caption",
			Format: docmodel.ParagraphFormat{Alignment: &al},
		}},
		Paragraphs: []docmodel.Paragraph{
			para(long, "Caption"),
		},
	}
	res := Extract(doc)
	e := res[1]
	if e.StyleDetail == nil {
		t.Fatalf("expected style detail for captioned figure")
	}
	// Long captions compare against the justified multi-line rule, so a
	// centred caption fails.
	if e.StyleRuleOK {
		t.Errorf("centred long caption should fail the multi-line rule")
	}
	if e.StyleDetail.Alignment != "CENTER should be JUSTIFY" {
		t.Errorf("alignment detail = %q", e.StyleDetail.Alignment)
	}
}

func TestExtractAcceptedCaptionStyles(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		para("Figure 1: Short one.", "Caption"),
		para("Figure 2: A caption long enough to wrap onto a second line of the column.", "Caption Multi Line"),
		para("Figure 3: Off-template style.", "Emphasis"),
	}}
	res := Extract(doc)
	for id, want := range map[int]bool{1: true, 2: true, 3: false} {
		e := res[id]
		if e.Caption == nil {
			t.Fatalf("figure %d: no caption extracted", id)
		}
		if e.Caption.StyleOK != want {
			t.Errorf("figure %d style %q StyleOK = %v, want %v", id, e.Caption.Style, e.Caption.StyleOK, want)
		}
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	res := Extract(&docmodel.Document{})
	if len(res) != 0 {
		t.Fatalf("empty document should yield an empty result, got %d entities", len(res))
	}
}
