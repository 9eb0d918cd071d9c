// Package figures cross-links figure caption declarations with in-text
// figure mentions. Every numeric id in 1..max gets an entity recording
// whether exactly one caption claims it, whether body text ever refers to
// it, and whether the caption marker is punctuated correctly.
package figures

import (
	"regexp"
	"sort"
	"strings"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/styles"
)

var (
	reCaption = regexp.MustCompile(`^Figure \d+[.:]`)
	reInText  = regexp.MustCompile(`Fig\.\s?\d+|Figure\s?\d+[.\s]+`)
	reDigits  = regexp.MustCompile(`\d+`)
)

// Caption styles tolerated for figure titles. Both multi-line spellings
// occur in template documents.
var acceptedCaptionStyles = []string{
	"Figure Caption",
	"Figure Caption Multi Line",
	"Caption Multi Line",
	"Caption",
}

// multiLineThreshold is the caption length at which the template switches
// from the centred single-line style to the justified multi-line one.
const multiLineThreshold = 55

// Caption is one extracted caption declaration.
type Caption struct {
	ID      int    `json:"id"`
	Name    string `json:"name"` // the leading "Figure N:" marker as written
	Text    string `json:"text"`
	Style   string `json:"style"`
	StyleOK bool   `json:"style_ok"`
}

// Mention is one in-text reference to a figure.
type Mention struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Entity is the per-id cross-link record.
type Entity struct {
	ID          int           `json:"id"`
	Refs        []string      `json:"refs"`
	Found       bool          `json:"found"`      // exactly one or more captions claim the id
	Duplicate   bool          `json:"duplicate"`  // more than one caption claims the id
	Used        bool          `json:"used"`       // at least one in-text mention
	CaptionOK   bool          `json:"caption_ok"` // single caption ending with a colon
	Caption     *Caption      `json:"caption,omitempty"`
	StyleRuleOK bool          `json:"style_rule_ok"`
	StyleDetail *styles.Detail `json:"style_detail,omitempty"`
}

// Result maps figure id to its entity, ids contiguous from 1 to the
// highest observed id. A document without figures yields an empty map.
type Result map[int]*Entity

// IDs returns the entity keys in ascending order.
func (r Result) IDs() []int {
	out := make([]int, 0, len(r))
	for id := range r {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Extract scans the whole document: main-flow paragraphs for captions and
// mentions, and table-cell paragraphs for captions only (the template
// places some figures inside invisible tables).
func Extract(doc *docmodel.Document) Result {
	var captions []captionSite
	var mentions []Mention

	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		text := p.Stripped()
		for _, m := range reInText.FindAllString(p.Text, -1) {
			name := strings.TrimSpace(m)
			if strings.HasSuffix(name, ".") && strings.HasPrefix(text, name) {
				// Probably a caption using "." instead of ":"; the caption
				// pass reports it, counting it as a mention would hide it.
				continue
			}
			mentions = append(mentions, Mention{ID: firstInt(name), Name: name})
		}
		captions = appendCaptions(captions, doc, p)
	}
	for t := range doc.Tables {
		for _, row := range doc.Tables[t].Rows {
			for _, cell := range row.Cells {
				for j := range cell.Paragraphs {
					captions = appendCaptions(captions, doc, &cell.Paragraphs[j])
				}
			}
		}
	}

	last := 0
	for _, c := range captions {
		if c.caption.ID > last {
			last = c.caption.ID
		}
	}
	for _, m := range mentions {
		if m.ID > last {
			last = m.ID
		}
	}
	result := make(Result, last)
	if last == 0 {
		return result
	}

	for id := 1; id <= last; id++ {
		var claimed []captionSite
		for _, c := range captions {
			if c.caption.ID == id {
				claimed = append(claimed, c)
			}
		}
		e := &Entity{
			ID:        id,
			Refs:      []string{},
			Found:     len(claimed) > 0,
			Duplicate: len(claimed) > 1,
			CaptionOK: len(claimed) == 1 && strings.HasSuffix(claimed[0].caption.Name, ":"),
		}
		for _, m := range mentions {
			if m.ID == id {
				e.Refs = append(e.Refs, m.Name)
			}
		}
		e.Used = len(e.Refs) > 0
		if len(claimed) > 0 {
			first := claimed[0]
			e.Caption = &first.caption
			rule := styles.FigureCaptionSingle
			if len(first.caption.Text) > multiLineThreshold {
				rule = styles.FigureCaptionMulti
			}
			resolved := styles.Resolve(doc, first.para)
			e.StyleRuleOK, e.StyleDetail = check(resolved, rule)
		}
		result[id] = e
	}
	return result
}

type captionSite struct {
	caption Caption
	para    *docmodel.Paragraph
}

func appendCaptions(dst []captionSite, doc *docmodel.Document, p *docmodel.Paragraph) []captionSite {
	text := p.Stripped()
	m := reCaption.FindString(text)
	if m == "" {
		return dst
	}
	return append(dst, captionSite{
		caption: Caption{
			ID:      firstInt(m),
			Name:    m,
			Text:    text,
			Style:   p.StyleName,
			StyleOK: acceptedCaptionStyle(p.StyleName),
		},
		para: p,
	})
}

func acceptedCaptionStyle(name string) bool {
	for _, s := range acceptedCaptionStyles {
		if name == s {
			return true
		}
	}
	return false
}

func check(r styles.Resolved, rule styles.Rule) (bool, *styles.Detail) {
	ok, d := styles.Check(r, rule)
	return ok, &d
}

func firstInt(s string) int {
	digits := reDigits.FindString(s)
	n := 0
	for _, ch := range digits {
		n = n*10 + int(ch-'0')
	}
	return n
}
