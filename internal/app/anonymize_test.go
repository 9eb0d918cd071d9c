package app

import (
	"strings"
	"testing"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/report"
)

func TestAnonymizeKeepsStructure(t *testing.T) {
	doc := conformantDoc()
	anon := Anonymize(doc)

	if anon == doc {
		t.Fatalf("Anonymize must return a copy")
	}
	if doc.Paragraphs[0].Text != "BEAM LOSS STUDIES AT THE BOOSTER" {
		t.Fatalf("original document mutated: %q", doc.Paragraphs[0].Text)
	}
	if anon.Paragraphs[0].Text == doc.Paragraphs[0].Text {
		t.Errorf("title not rewritten")
	}
	if len(anon.Paragraphs[0].Text) != len(doc.Paragraphs[0].Text) {
		t.Errorf("rewritten text changed length: %q", anon.Paragraphs[0].Text)
	}
	if anon.Paragraphs[2].Text != "Abstract" {
		t.Errorf("abstract boundary lost: %q", anon.Paragraphs[2].Text)
	}
	if got := anon.Paragraphs[6].Text; got != "REFERENCES" {
		t.Errorf("references boundary lost: %q", got)
	}
	if !strings.HasPrefix(anon.Paragraphs[7].Text, "[1]\t") {
		t.Errorf("reference marker lost: %q", anon.Paragraphs[7].Text)
	}
}

func TestAnonymizeKeepsCaptionMarkers(t *testing.T) {
	doc := &docmodel.Document{Paragraphs: []docmodel.Paragraph{
		{Text: "Figure 2: Layout of the injection line.", StyleName: "Caption"},
		{Text: "Table 1: Magnet Settings", StyleName: "Table Caption"},
	}}
	anon := Anonymize(doc)
	if !strings.HasPrefix(anon.Paragraphs[0].Text, "Figure 2:") {
		t.Errorf("figure marker lost: %q", anon.Paragraphs[0].Text)
	}
	if !strings.HasPrefix(anon.Paragraphs[1].Text, "Table 1:") {
		t.Errorf("table marker lost: %q", anon.Paragraphs[1].Text)
	}
	if strings.Contains(anon.Paragraphs[0].Text, "injection") {
		t.Errorf("caption body not rewritten: %q", anon.Paragraphs[0].Text)
	}
}

func TestAnonymizedDocumentStillChecks(t *testing.T) {
	anon := Anonymize(conformantDoc())
	rep, err := Check(anon, Config{})
	if err != nil {
		t.Fatalf("Check on anonymized document: %v", err)
	}
	// The formatting chain is untouched, so style-driven categories keep
	// passing; only case conventions may degrade to warnings.
	for _, name := range []string{report.CatStyles, report.CatMargins, report.CatReferences} {
		if got := rep.Categories[name].OK; got == report.Fail {
			t.Errorf("category %s = %v on anonymized copy", name, got)
		}
	}
}
