// Package refs extracts in-text citations and the numbered reference list,
// expands range/list citations to individual ids, and validates numbering
// continuity, uniqueness, usage, style tier and marker format.
package refs

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/segment"
	"github.com/developingAlex/jacow-validator/internal/styles"
)

var (
	reInText  = regexp.MustCompile(`\[([\d ,-]+)\]`)
	reListTab = regexp.MustCompile(`^\[(\d+)\]\t`)
	reList    = regexp.MustCompile(`^\[(\d+)\]`)
)

// ErrInvalidRange indicates a citation range whose bounds are inverted or
// unparsable, e.g. "[6-4]".
var ErrInvalidRange = errors.New("invalid citation range")

// Expand converts one bracketed citation body to individual reference ids:
// "12" to {12}, "4,5,7" to {4,5,7}, "4-6" to {4,5,6}.
func Expand(body string) ([]int, error) {
	body = strings.TrimSpace(body)
	if n, err := strconv.Atoi(body); err == nil {
		return []int{n}, nil
	}
	if strings.Contains(body, ",") {
		var out []int
		for _, part := range strings.Split(body, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			ids, err := Expand(part)
			if err != nil {
				return nil, err
			}
			out = append(out, ids...)
		}
		return out, nil
	}
	if strings.Contains(body, "-") {
		parts := strings.SplitN(body, "-", 2)
		lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errLo != nil || errHi != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, body)
		}
		if hi < lo {
			return nil, fmt.Errorf("%w: %q has inverted bounds", ErrInvalidRange, body)
		}
		out := make([]int, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRange, body)
}

// Entry is one validated reference-list entry. Every flag follows the same
// convention: true means the check is satisfied.
type Entry struct {
	ID          int           `json:"id"`
	Text        string        `json:"text"`
	Style       string        `json:"style"`
	StyleOK     bool          `json:"style_ok"`
	StyleDetail styles.Detail `json:"style_detail"`
	UniqueOK    bool          `json:"unique_ok"`
	OrderOK     bool          `json:"order_ok"`
	UsedOK      bool          `json:"used_ok"`
	TextOK      bool          `json:"text_ok"`
	TextError   string        `json:"text_error,omitempty"`
}

// Result is the outcome of one extraction pass.
type Result struct {
	// InText holds each citation occurrence in document order, expanded to
	// individual ids.
	InText [][]int `json:"in_text"`
	// Entries is the reference list in list order.
	Entries []Entry `json:"entries"`
	// OutOfOrder lists ids never confirmed by the continuity scan.
	OutOfOrder []int `json:"out_of_order,omitempty"`
}

// Extract scans the region between the Abstract heading and the end of the
// document. A document without the literal "Abstract" heading aborts with
// segment.ErrAbstractNotFound.
func Extract(doc *docmodel.Document) (*Result, error) {
	start := -1
	for i := range doc.Paragraphs {
		if strings.EqualFold(doc.Paragraphs[i].Stripped(), "abstract") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, segment.ErrAbstractNotFound
	}

	var inText [][]int
	type listItem struct {
		entry Entry
		para  *docmodel.Paragraph
	}
	var list []listItem
	listStarted := false

	for i := start; i < len(doc.Paragraphs); i++ {
		p := &doc.Paragraphs[i]
		text := p.Stripped()

		for _, m := range reInText.FindAllStringSubmatchIndex(p.Text, -1) {
			if m[0] == 0 {
				// A bracket opening the paragraph is a list entry marker,
				// not a citation.
				continue
			}
			body := p.Text[m[2]:m[3]]
			ids, err := Expand(body)
			if err != nil {
				// Malformed citation: contributes no ids, never aborts the
				// document.
				continue
			}
			inText = append(inText, ids)
		}

		if m := reList.FindStringSubmatch(text); m != nil {
			id, _ := strconv.Atoi(m[1])
			if id == 1 {
				listStarted = true
			}
			list = append(list, listItem{
				entry: Entry{ID: id, Text: text, Style: p.StyleName},
				para:  p,
			})
		} else if listStarted && len(list) > 0 && text != "" {
			// Recovery: a paragraph without a marker directly after a
			// confirmed entry, carrying the next expected integer near the
			// front, is a continuation entry with a broken marker.
			expect := list[len(list)-1].entry.ID + 1
			head := text
			if len(head) > 4 {
				head = head[:4]
			}
			if strings.Contains(head, strconv.Itoa(expect)) {
				list = append(list, listItem{
					entry: Entry{
						ID:        expect,
						Text:      text,
						Style:     p.StyleName,
						TextError: fmt.Sprintf("Number format wrong should be [%d]", expect),
					},
					para: p,
				})
			}
		}
	}

	outOfOrder := continuity(inText)

	used := make(map[int]bool)
	for _, ids := range inText {
		for _, id := range ids {
			used[id] = true
		}
	}

	res := &Result{InText: inText, OutOfOrder: sortedKeys(outOfOrder)}
	seen := make(map[int]bool, len(list))
	total := len(list)
	for i := range list {
		ordinal := i + 1
		e := list[i].entry
		e.UniqueOK = !seen[e.ID]
		seen[e.ID] = true
		e.OrderOK = ordinal == e.ID && !outOfOrder[ordinal]
		e.UsedOK = used[ordinal]
		e.TextOK = e.TextError == ""
		if e.TextOK && reListTab.FindString(e.Text) == "" {
			e.TextOK = false
			e.TextError = fmt.Sprintf("Number format error should be [%d] followed by a tab", ordinal)
		}
		rule := tierRule(total, ordinal)
		e.StyleOK = e.Style == rule.JACoWStyle
		resolved := styles.Resolve(doc, list[i].para)
		_, e.StyleDetail = styles.Check(resolved, rule)
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

// continuity runs the confirmed-stack algorithm over the citation sequence.
// References must be first-cited in ascending sequential order; a block
// citation may introduce a run ahead of its gap being filled, and the seen
// set promotes such ids once the gap closes. Ids never promoted are out of
// order.
func continuity(inText [][]int) map[int]bool {
	confirmed := map[int]bool{0: true}
	top := 0
	var seen []int

	for _, ids := range inText {
		for _, id := range ids {
			if confirmed[id] {
				continue
			}
			if id-top == 1 {
				confirmed[id] = true
				top = id
			} else if !intsContain(seen, id) {
				seen = append(seen, id)
			}
		}
		// Sweep: promote ids made reachable by this citation.
		for swept := true; swept; {
			swept = false
			for i := 0; i < len(seen); i++ {
				if seen[i]-top == 1 {
					top = seen[i]
					confirmed[top] = true
					seen = append(seen[:i], seen[i+1:]...)
					swept = true
					break
				}
			}
		}
	}
	outOfOrder := make(map[int]bool, len(seen))
	for _, id := range seen {
		outOfOrder[id] = true
	}
	return outOfOrder
}

// tierRule picks the reference style tier: one style for short lists,
// otherwise a split at id 10 reflecting the wider hanging indent
// double-digit numbering needs.
func tierRule(total, ordinal int) styles.Rule {
	if total <= 9 {
		return styles.ReferenceAtMostNine
	}
	if ordinal <= 9 {
		return styles.ReferenceFirstNineOfMany
	}
	return styles.ReferenceTenOnwards
}

func intsContain(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
