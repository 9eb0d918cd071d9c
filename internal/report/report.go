// Package report defines the validation report: an ordered set of check
// categories, each carrying a rolled-up tri-state status, a human-readable
// message and a category-specific detail payload.
package report

import "encoding/json"

// Status is the tri-state outcome of a check: confirmed pass, confirmed
// fail, or a heuristic result that could not be confirmed. Warn is a
// first-class value and must never be collapsed into the booleans.
type Status int

const (
	Fail Status = iota
	Pass
	Warn
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "ok"
	case Warn:
		return "warn"
	default:
		return "fail"
	}
}

// MarshalJSON renders Pass/Fail as booleans and Warn as the string "warn",
// preserving the tri-state on the wire.
func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case Pass:
		return json.Marshal(true)
	case Warn:
		return json.Marshal("warn")
	default:
		return json.Marshal(false)
	}
}

// And combines two statuses: any fail dominates, then any warn.
func (s Status) And(other Status) Status {
	if s == Fail || other == Fail {
		return Fail
	}
	if s == Warn || other == Warn {
		return Warn
	}
	return Pass
}

// FromBool maps a boolean check result to a confirmed status.
func FromBool(ok bool) Status {
	if ok {
		return Pass
	}
	return Fail
}

// AllOf folds a list of statuses with And; an empty list passes.
func AllOf(list ...Status) Status {
	out := Pass
	for _, s := range list {
		out = out.And(s)
	}
	return out
}

// Category is one row of the final report.
type Category struct {
	Title   string      `json:"title"`
	OK      Status      `json:"ok"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Anchor  string      `json:"anchor"`
}

// Category names in presentation order.
const (
	CatStyles      = "Styles"
	CatMargins     = "Margins"
	CatLanguages   = "Languages"
	CatTitle       = "Title"
	CatAuthors     = "Authors"
	CatAbstract    = "Abstract"
	CatHeadings    = "Headings"
	CatParagraphs  = "Paragraphs"
	CatReferences  = "References"
	CatFigures     = "Figures"
	CatTables      = "Tables"
	CatRosterCheck = "RosterCheck"
)

// Order is the fixed presentation order of categories.
var Order = []string{
	CatStyles, CatMargins, CatLanguages, CatTitle, CatAuthors, CatAbstract,
	CatHeadings, CatParagraphs, CatReferences, CatFigures, CatTables,
	CatRosterCheck,
}

// Report is the ordered mapping from category name to its result.
type Report struct {
	Categories map[string]Category `json:"categories"`
}

// New returns an empty report.
func New() *Report {
	return &Report{Categories: make(map[string]Category, len(Order))}
}

// Add stores a category row; the anchor defaults to the lower-cased title.
func (r *Report) Add(name string, c Category) {
	if c.Anchor == "" {
		c.Anchor = lower(name)
	}
	if c.Title == "" {
		c.Title = name
	}
	r.Categories[name] = c
}

// Ordered returns the categories present, in presentation order.
func (r *Report) Ordered() []Category {
	out := make([]Category, 0, len(r.Categories))
	for _, name := range Order {
		if c, ok := r.Categories[name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Overall rolls up every category status.
func (r *Report) Overall() Status {
	out := Pass
	for _, c := range r.Ordered() {
		out = out.And(c.OK)
	}
	return out
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
