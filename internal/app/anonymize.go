package app

import (
	"regexp"
	"strings"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
)

// Markers that segmentation and numbering checks key on; they survive the
// rewrite so the converted document still exercises every check.
var keepPrefix = regexp.MustCompile(`^(Figure \d+[.:]|Table \d+:|Fig\. \d+|\[\d+\]\t?)`)

// Anonymize returns a copy of the document with identifying text replaced
// by repeated filler of the same length, preserving styles, runs and
// geometry so the copy still exercises every formatting check. Used by the
// admin-gated conversion mode to produce shareable test documents.
func Anonymize(doc *docmodel.Document) *docmodel.Document {
	out := *doc
	out.Paragraphs = make([]docmodel.Paragraph, len(doc.Paragraphs))
	copy(out.Paragraphs, doc.Paragraphs)
	for i := range out.Paragraphs {
		anonymizeParagraph(&out.Paragraphs[i])
	}
	out.Tables = make([]docmodel.Table, len(doc.Tables))
	copy(out.Tables, doc.Tables)
	for t := range out.Tables {
		rows := make([]docmodel.TableRow, len(out.Tables[t].Rows))
		copy(rows, out.Tables[t].Rows)
		for r := range rows {
			cells := make([]docmodel.TableCell, len(rows[r].Cells))
			copy(cells, rows[r].Cells)
			for c := range cells {
				paras := make([]docmodel.Paragraph, len(cells[c].Paragraphs))
				copy(paras, cells[c].Paragraphs)
				for p := range paras {
					anonymizeParagraph(&paras[p])
				}
				cells[c].Paragraphs = paras
			}
			rows[r].Cells = cells
		}
		out.Tables[t].Rows = rows
	}
	return &out
}

func anonymizeParagraph(p *docmodel.Paragraph) {
	// Structural markers must survive so segmentation and numbering checks
	// still work on the converted document.
	switch strings.ToLower(p.Stripped()) {
	case "abstract", "references":
		return
	}
	p.Text = fillerKeepMarker(p.Text)
	runs := make([]docmodel.Run, len(p.Runs))
	copy(runs, p.Runs)
	for i := range runs {
		runs[i].Text = fillerKeepMarker(runs[i].Text)
	}
	p.Runs = runs
}

func fillerKeepMarker(s string) string {
	if m := keepPrefix.FindString(s); m != "" {
		return m + filler(s[len(m):])
	}
	return filler(s)
}

// filler replaces every letter with rotating sample text, keeping digits,
// whitespace and punctuation.
func filler(s string) string {
	const sample = "lorem ipsum dolor sit amet "
	var b strings.Builder
	j := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			ch := sample[j%len(sample)]
			if ch == ' ' {
				j++
				ch = sample[j%len(sample)]
			}
			b.WriteByte(ch)
			j++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
