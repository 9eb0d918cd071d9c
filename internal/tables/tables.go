// Package tables validates table captions: numbering and ordering, the
// "Table N:" marker, Title Case, trailing punctuation, the length-dependent
// single/multi-line style tier, in-text usage, and floating placement.
package tables

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/styles"
)

var (
	reMarker      = regexp.MustCompile(`^Table \d+:`)
	reOrder       = regexp.MustCompile(`^Table \d+`)
	reMention     = regexp.MustCompile(`Table\s?\d+|Tables\s?\d+\sand\s\d+`)
	reTrailingDot = regexp.MustCompile(`\.$`)
	reNonLetter   = regexp.MustCompile(`[^a-zA-Z ]`)
	reMultiSpace  = regexp.MustCompile(` +`)
)

// multiLineThreshold is where a caption wraps to a second line and the
// justified multi-line style applies instead of the centred one.
const multiLineThreshold = 55

// Caption styles tolerated for table titles.
var acceptedCaptionStyles = []string{"Caption", "Table Caption", "Table Caption Multi Line"}

// Check is the validation record for one table caption.
type Check struct {
	ID             int           `json:"id"`
	Text           string        `json:"text"`
	FormatOK       bool          `json:"text_format_ok"`
	FormatMessages []string      `json:"text_format_message,omitempty"`
	Used           int           `json:"used"` // in-text mention count for this id
	OrderOK        bool          `json:"order_ok"`
	Style          string        `json:"style"`
	StyleOK        bool          `json:"style_ok"`
	Floating       bool          `json:"floating"`
	Rows           int           `json:"rows"`
	Columns        int           `json:"columns"`
	Detail         styles.Detail `json:"detail"`
}

// CheckCaptions validates every real table's caption. A table is real when
// it has more than one row, more than one column and any cell text; the
// caption is the paragraph immediately preceding it in flow order.
func CheckCaptions(doc *docmodel.Document) []Check {
	type site struct {
		table   *docmodel.Table
		caption *docmodel.Paragraph
	}
	var sites []site
	for i := range doc.Tables {
		t := &doc.Tables[i]
		if len(t.Rows) <= 1 || t.ColumnCount() <= 1 || !t.HasText() {
			continue
		}
		var caption *docmodel.Paragraph
		if t.AfterParagraph >= 0 {
			caption = &doc.Paragraphs[t.AfterParagraph]
		}
		sites = append(sites, site{table: t, caption: caption})
	}

	captionTexts := make(map[string]bool, len(sites))
	for _, s := range sites {
		if s.caption != nil {
			captionTexts[s.caption.Text] = true
		}
	}

	// In-text mentions, excluding the captions themselves.
	var refs []int
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		if captionTexts[p.Text] {
			continue
		}
		text := strings.ReplaceAll(p.Text, " ", " ")
		for _, m := range reMention.FindAllString(text, -1) {
			for _, w := range strings.Split(m, " ") {
				if n, err := strconv.Atoi(w); err == nil {
					refs = append(refs, n)
				} else if n := trailingInt(w); n > 0 {
					// "Table3" style mention with the number glued on
					refs = append(refs, n)
				}
			}
		}
	}

	out := make([]Check, 0, len(sites))
	for i, s := range sites {
		id := i + 1
		c := Check{
			ID:      id,
			Rows:    len(s.table.Rows),
			Columns: s.table.ColumnCount(),
			Floating: isFloating(s.table),
		}
		for _, n := range refs {
			if n == id {
				c.Used++
			}
		}
		if s.caption == nil {
			c.FormatOK = false
			c.FormatMessages = append(c.FormatMessages, `No caption paragraph above the table`)
			out = append(out, c)
			continue
		}
		text := s.caption.Stripped()
		c.Text = s.caption.Text
		c.Style = s.caption.StyleName
		c.FormatOK, c.FormatMessages = checkCaptionFormat(text)
		c.OrderOK = reOrder.FindString(text) == "Table "+strconv.Itoa(id)

		rule := styles.TableCaptionSingle
		if len(text) > multiLineThreshold {
			rule = styles.TableCaptionMulti
		}
		resolved := styles.Resolve(doc, s.caption)
		ruleOK, detail := styles.Check(resolved, rule)
		c.Detail = detail
		c.StyleOK = ruleOK && acceptedCaptionStyle(s.caption.StyleName)
		out = append(out, c)
	}
	return out
}

// checkCaptionFormat validates the marker, trailing punctuation and Title
// Case of a caption text.
func checkCaptionFormat(text string) (bool, []string) {
	ok := true
	var messages []string
	if reMarker.FindString(text) == "" {
		ok = false
		messages = append(messages, `Does not use "Table N: " format`)
	}
	if reTrailingDot.FindString(text) != "" {
		ok = false
		messages = append(messages, "Has a . at the end of the sentence")
	}
	stripped := reMultiSpace.ReplaceAllString(reNonLetter.ReplaceAllString(text, " "), " ")
	stripped = strings.TrimSpace(stripped)
	if TitleCase(stripped) != stripped {
		ok = false
		messages = append(messages, "Not in Title Case/Initial Caps")
	}
	return ok, messages
}

// smallWords stay lower-case inside a title, per house convention.
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "nor": true, "of": true, "on": true,
	"or": true, "per": true, "the": true, "to": true, "via": true, "vs": true,
	"with": true,
}

var wordCaser = cases.Title(language.English)

// TitleCase renders text in title case: every word capitalised except
// small connective words, which stay lower unless they open or close the
// title. Words already carrying interior capitals are left alone.
func TitleCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		lower := strings.ToLower(w)
		if smallWords[lower] && i != 0 && i != len(words)-1 {
			words[i] = lower
			continue
		}
		if w != lower {
			// Mixed or upper case already; assume intentional (acronyms).
			continue
		}
		words[i] = wordCaser.String(w)
	}
	return strings.Join(words, " ")
}

// isFloating detects a table anchored outside normal flow: a positioning
// offset above line height combined with automatic width. Floating tables
// are flagged because their document-order position is unreliable for
// caption adjacency.
func isFloating(t *docmodel.Table) bool {
	return t.PosY > 11 && t.WidthType == "auto"
}

func acceptedCaptionStyle(name string) bool {
	for _, s := range acceptedCaptionStyles {
		if name == s {
			return true
		}
	}
	return false
}

func trailingInt(w string) int {
	i := len(w)
	for i > 0 && w[i-1] >= '0' && w[i-1] <= '9' {
		i--
	}
	if i == len(w) {
		return 0
	}
	n, _ := strconv.Atoi(w[i:])
	return n
}
