package segment

import (
	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/styles"
)

// ParagraphInfo is one row of the diagnostic all-paragraphs listing.
type ParagraphInfo struct {
	Index         int    `json:"index"`
	Style         string `json:"style"`
	Text          string `json:"text"`
	StyleAccepted bool   `json:"style_accepted"`
	InTable       bool   `json:"in_table"`
}

// AllParagraphs lists every non-blank paragraph in the main flow, plus the
// cell paragraphs of small tables (at most two rows of at most two cells,
// where the template hides figure captions). The listing only applies the
// style-acceptability check; it takes no part in section classification.
func AllParagraphs(doc *docmodel.Document) []ParagraphInfo {
	var out []ParagraphInfo
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		if p.IsBlank() {
			continue
		}
		out = append(out, ParagraphInfo{
			Index:         i,
			Style:         p.StyleName,
			Text:          styles.DisplayText(doc, p),
			StyleAccepted: styles.AcceptableStyleName(p.StyleName),
		})
	}
	for t := range doc.Tables {
		tbl := &doc.Tables[t]
		if len(tbl.Rows) > 2 {
			continue
		}
		for _, row := range tbl.Rows {
			if len(row.Cells) > 2 {
				continue
			}
			for _, cell := range row.Cells {
				for j := range cell.Paragraphs {
					p := &cell.Paragraphs[j]
					if p.IsBlank() {
						continue
					}
					out = append(out, ParagraphInfo{
						Style:         p.StyleName,
						Text:          styles.DisplayText(doc, p),
						StyleAccepted: styles.AcceptableStyleName(p.StyleName),
						InTable:       true,
					})
				}
			}
		}
	}
	return out
}
