package roster

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// namePattern recognises an author token: one or more initials, each a
// letter followed by a period or by a space when the period was dropped
// (an optional leading hyphen covers hyphenated initials), ending in a
// word of two or more letters. Requiring a separator after every initial
// keeps affiliation words, which run their letters together, from
// matching. Anchored at the start so affiliation fragments fall through.
var namePattern = regexp.MustCompile(`^(-?\p{L}(\. ?| ))+(\p{L}{2,} ?)+`)

var reSpaces = regexp.MustCompile(`\s+`)

// ExtractAuthors pulls author names out of the author-block text, which
// also carries affiliations and footnote markers. The text is split on
// comma boundaries with "and" folded in, and only tokens shaped like
// "J. C. Surname" survive.
func ExtractAuthors(text string) []string {
	text = strings.ReplaceAll(text, " and ", ", ")
	var out []string
	for _, tok := range strings.Split(text, ", ") {
		tok = strings.TrimSpace(tok)
		if namePattern.MatchString(tok) {
			out = append(out, tok)
		}
	}
	return out
}

var accentFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName canonicalises an author name for comparison: periods are
// space-padded, accents folded to their base letters, hyphens and
// asterisks stripped, whitespace collapsed, case lowered.
func NormalizeName(name string) string {
	s := strings.ReplaceAll(name, ".", ". ")
	if folded, _, err := transform.String(accentFolder, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "*", "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// LooseKey derives the round-2 "first-initial plus surname" key from a
// normalized name. The surname is whatever follows the last period; a name
// written without periods takes its last word instead, so "a. lee" and
// "a lee" key identically.
func LooseKey(normalized string) string {
	if normalized == "" {
		return ""
	}
	first := string([]rune(normalized)[0])
	surname := normalized
	if i := strings.LastIndex(normalized, "."); i >= 0 {
		surname = normalized[i+1:]
	} else if fields := strings.Fields(normalized); len(fields) > 0 {
		surname = fields[len(fields)-1]
	}
	surname = strings.ReplaceAll(surname, " ", "")
	return first + surname
}

// AuthorPair records one roster/document author pairing.
type AuthorPair struct {
	Roster    string `json:"roster"`
	Extracted string `json:"extracted"`
	Exact     bool   `json:"exact"`
}

// MatchReport is the outcome of matching a document against its roster
// record.
type MatchReport struct {
	Found              bool         `json:"found"`
	TitleMatch         bool         `json:"title_match"`
	AuthorsMatch       bool         `json:"authors_match"`
	RosterTitle        string       `json:"roster_title"`
	Pairs              []AuthorPair `json:"pairs,omitempty"`
	UnmatchedRoster    []string     `json:"unmatched_roster,omitempty"`
	UnmatchedExtracted []string     `json:"unmatched_extracted,omitempty"`
}

// NotFound is the synthetic result the debug override substitutes for a
// missing roster row instead of aborting the document.
func NotFound() MatchReport {
	return MatchReport{Found: false}
}

// Match compares the document's extracted title and author-block text with
// a roster record. Author matching is two-round greedy: identical
// normalized names pair first and count as exact, then remaining authors
// pair by first-initial plus surname and count as loose. The overall
// author match holds only when every roster author found some pairing.
func Match(rec Record, title, authorText string) MatchReport {
	rep := MatchReport{
		Found:       true,
		RosterTitle: rec.Title,
		TitleMatch:  normalizeTitle(title) == normalizeTitle(rec.Title),
	}

	rosterAuthors := ExtractAuthors(rec.Authors)
	docAuthors := ExtractAuthors(authorText)

	type candidate struct {
		raw   string
		norm  string
		loose string
		used  bool
	}
	roster := make([]candidate, len(rosterAuthors))
	for i, a := range rosterAuthors {
		n := NormalizeName(a)
		roster[i] = candidate{raw: a, norm: n, loose: LooseKey(n)}
	}
	doc := make([]candidate, len(docAuthors))
	for i, a := range docAuthors {
		n := NormalizeName(a)
		doc[i] = candidate{raw: a, norm: n, loose: LooseKey(n)}
	}

	// Round 1: exact normalized-name pairs.
	for i := range roster {
		for j := range doc {
			if doc[j].used || roster[i].used {
				continue
			}
			if roster[i].norm == doc[j].norm {
				roster[i].used, doc[j].used = true, true
				rep.Pairs = append(rep.Pairs, AuthorPair{Roster: roster[i].raw, Extracted: doc[j].raw, Exact: true})
				break
			}
		}
	}
	// Round 2: loose first-initial+surname pairs.
	for i := range roster {
		if roster[i].used {
			continue
		}
		for j := range doc {
			if doc[j].used {
				continue
			}
			if roster[i].loose == doc[j].loose {
				roster[i].used, doc[j].used = true, true
				rep.Pairs = append(rep.Pairs, AuthorPair{Roster: roster[i].raw, Extracted: doc[j].raw, Exact: false})
				break
			}
		}
	}

	allMatched := len(roster) > 0
	for i := range roster {
		if !roster[i].used {
			allMatched = false
			rep.UnmatchedRoster = append(rep.UnmatchedRoster, roster[i].raw)
		}
	}
	for j := range doc {
		if !doc[j].used {
			rep.UnmatchedExtracted = append(rep.UnmatchedExtracted, doc[j].raw)
		}
	}
	rep.AuthorsMatch = allMatched
	return rep
}

// normalizeTitle prepares a title for comparison: asterisked footnote
// markers stripped from the ends, whitespace runs collapsed, case ignored.
func normalizeTitle(t string) string {
	t = strings.Trim(t, "*")
	t = reSpaces.ReplaceAllString(strings.TrimSpace(t), " ")
	return strings.ToUpper(t)
}
