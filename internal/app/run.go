package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/figures"
	"github.com/developingAlex/jacow-validator/internal/language"
	"github.com/developingAlex/jacow-validator/internal/page"
	"github.com/developingAlex/jacow-validator/internal/refs"
	"github.com/developingAlex/jacow-validator/internal/report"
	"github.com/developingAlex/jacow-validator/internal/roster"
	"github.com/developingAlex/jacow-validator/internal/segment"
	"github.com/developingAlex/jacow-validator/internal/styles"
	"github.com/developingAlex/jacow-validator/internal/tables"
)

// ErrProcessingFailed wraps unexpected failures caught at the request
// boundary; it must never crash the host process.
var ErrProcessingFailed = errors.New("failed to process document")

// Run loads the parsed document and produces its validation report.
func Run(cfg Config) (*report.Report, error) {
	doc, err := docmodel.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return Check(doc, cfg)
}

// Check validates one document. Structural and roster failures abort the
// document and no partial report is returned; field-level findings are
// always fully collected into the report.
func Check(doc *docmodel.Document, cfg Config) (rep *report.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("unexpected failure during validation")
			rep = nil
			err = fmt.Errorf("%w: %v", ErrProcessingFailed, r)
		}
	}()

	if err := doc.EnsureNoTrackedChanges(); err != nil {
		return nil, err
	}

	opts := segment.DefaultOptions()
	if cfg.BodyMinLen > 0 {
		opts.BodyMinLen = cfg.BodyMinLen
	}
	seg, err := segment.Segment(doc, opts)
	if err != nil {
		return nil, err
	}

	rep = report.New()

	addStyles(rep, doc)

	sections, err := page.CheckSections(doc)
	if err != nil {
		return nil, err
	}
	addMargins(rep, sections)

	addLanguages(rep, doc, cfg.AllowedLanguages)
	addTitle(rep, doc, seg)
	addAuthors(rep, doc, seg)
	addAbstract(rep, doc, seg)
	addHeadings(rep, doc, seg)
	addParagraphs(rep, doc, seg)

	refResult, err := refs.Extract(doc)
	if err != nil {
		return nil, err
	}
	addReferences(rep, refResult)

	addFigures(rep, figures.Extract(doc))
	addTables(rep, tables.CheckCaptions(doc))

	if cfg.PaperID != "" {
		if err := addRoster(rep, doc, seg, cfg); err != nil {
			return nil, err
		}
	}

	log.Debug().Str("overall", rep.Overall().String()).Msg("validation complete")
	return rep, nil
}

func addStyles(rep *report.Report, doc *docmodel.Document) {
	all := segment.AllParagraphs(doc)
	var exceptions []segment.ParagraphInfo
	for _, p := range all {
		if !p.StyleAccepted {
			exceptions = append(exceptions, p)
		}
	}
	registered := make(map[string]bool, len(styles.KnownStyles))
	missing := false
	for _, name := range styles.KnownStyles {
		ok := doc.StyleByName(name) != nil
		registered[name] = ok
		if !ok {
			missing = true
		}
	}
	status := report.Pass
	msg := "All paragraph styles match the template"
	switch {
	case len(exceptions) > 0:
		status = report.Fail
		msg = fmt.Sprintf("%d paragraph(s) use styles outside the template", len(exceptions))
	case missing:
		status = report.Warn
		msg = "Document does not register every template style"
	}
	rep.Add(report.CatStyles, report.Category{
		OK:      status,
		Message: msg,
		Details: StylesDetail{Registered: registered, Exceptions: exceptions, All: all},
	})
}

func addMargins(rep *report.Report, sections []page.SectionCheck) {
	status := report.Pass
	for _, s := range sections {
		status = status.And(report.FromBool(s.MarginsOK && s.Columns.OK))
	}
	msg := "Page size and margins match the template"
	if status != report.Pass {
		msg = "Margins or column layout deviate from the template"
	}
	rep.Add(report.CatMargins, report.Category{
		OK:      status,
		Message: msg,
		Details: MarginsDetail{Sections: sections},
	})
}

func addLanguages(rep *report.Report, doc *docmodel.Document, allowed []string) {
	tags := language.Check(doc, allowed)
	status := report.FromBool(language.AllAllowed(tags))
	msg := "All language tags are allowed"
	if status != report.Pass {
		msg = "Document carries language tags outside the allow-list"
	}
	rep.Add(report.CatLanguages, report.Category{
		OK:      status,
		Message: msg,
		Details: LanguagesDetail{Tags: tags},
	})
}

func blockDetail(doc *docmodel.Document, b segment.Block, rule styles.Rule, caseKind styles.CaseKind) BlockDetail {
	resolved := styles.Resolve(doc, b.Paragraph)
	ok, detail := styles.Check(resolved, rule)
	text := styles.DisplayText(doc, b.Paragraph)
	d := BlockDetail{
		Text:    text,
		Style:   b.Paragraph.StyleName,
		StyleOK: ok && rule.Accepts(b.Paragraph.StyleName),
		CaseOK:  styles.CaseOK(strings.TrimSpace(text), caseKind),
		Detail:  detail,
	}
	switch {
	case !d.StyleOK:
		d.Status = report.Fail
	case !d.CaseOK:
		d.Status = report.Warn
	default:
		d.Status = report.Pass
	}
	return d
}

// titleCaseRatio holds when more than 70% of the title's letters are
// uppercase, the template's convention for paper titles.
func titleCaseRatio(text string) bool {
	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	return letters > 0 && float64(uppers)/float64(letters) > 0.7
}

func addTitle(rep *report.Report, doc *docmodel.Document, seg *segment.Segments) {
	d := TitleDetail{BlockDetail: blockDetail(doc, seg.Title, styles.Title, styles.CaseNone)}
	d.CaseOK = titleCaseRatio(d.Text)
	status := d.Status
	if !d.CaseOK {
		status = status.And(report.Warn)
	}
	d.Status = status
	msg := "Title conforms to the template"
	if status != report.Pass {
		msg = "Title style or case deviates from the template"
	}
	rep.Add(report.CatTitle, report.Category{OK: status, Message: msg, Details: d})
}

func addAuthors(rep *report.Report, doc *docmodel.Document, seg *segment.Segments) {
	d := AuthorsDetail{}
	status := report.Pass
	var text strings.Builder
	for _, b := range seg.AuthorBlocks {
		bd := blockDetail(doc, b, styles.AuthorList, styles.CaseNone)
		d.Blocks = append(d.Blocks, bd)
		status = status.And(bd.Status)
		text.WriteString(authorText(b.Paragraph))
	}
	d.Text = text.String()
	d.Authors = roster.ExtractAuthors(d.Text)
	msg := fmt.Sprintf("%d author(s) extracted", len(d.Authors))
	if status != report.Pass {
		msg = "Author list style deviates from the template"
	}
	rep.Add(report.CatAuthors, report.Category{OK: status, Message: msg, Details: d})
}

// authorText reconstructs the author paragraph without superscript runs,
// which carry footnote markers rather than names.
func authorText(p *docmodel.Paragraph) string {
	if len(p.Runs) == 0 {
		return p.Text
	}
	var b strings.Builder
	for _, r := range p.Runs {
		if r.Font.Superscript {
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

func addAbstract(rep *report.Report, doc *docmodel.Document, seg *segment.Segments) {
	d := AbstractDetail{BlockDetail: blockDetail(doc, seg.AbstractBlock, styles.AbstractHeading, styles.CaseNone)}
	msg := "Abstract heading conforms to the template"
	if d.Status != report.Pass {
		msg = "Abstract heading style deviates from the template"
	}
	rep.Add(report.CatAbstract, report.Category{OK: d.Status, Message: msg, Details: d})
}

func addHeadings(rep *report.Report, doc *docmodel.Document, seg *segment.Segments) {
	d := HeadingsDetail{}
	status := report.Pass
	for _, b := range seg.Headings {
		rule, _ := segment.HeadingRule(b.Kind)
		hd := HeadingDetail{
			BlockDetail: blockDetail(doc, b, rule, rule.Case),
			Kind:        b.Kind.String(),
			Guessed:     b.Confidence == segment.Guessed,
		}
		if hd.Guessed {
			// Heuristic classification is never a confirmed result in
			// either direction.
			hd.Status = report.Warn
		}
		d.Headings = append(d.Headings, hd)
		status = status.And(hd.Status)
	}
	msg := fmt.Sprintf("%d heading(s) checked", len(d.Headings))
	rep.Add(report.CatHeadings, report.Category{OK: status, Message: msg, Details: d})
}

func addParagraphs(rep *report.Report, doc *docmodel.Document, seg *segment.Segments) {
	d := ParagraphsDetail{}
	status := report.Pass
	for _, b := range seg.BodyParagraphs {
		bd := blockDetail(doc, b, styles.BodyParagraph, styles.CaseNone)
		d.Paragraphs = append(d.Paragraphs, bd)
		status = status.And(bd.Status)
	}
	msg := fmt.Sprintf("%d body paragraph(s) checked", len(d.Paragraphs))
	rep.Add(report.CatParagraphs, report.Category{OK: status, Message: msg, Details: d})
}

func addReferences(rep *report.Report, res *refs.Result) {
	status := report.Pass
	if len(res.Entries) == 0 && len(res.InText) > 0 {
		status = report.Fail
	}
	for _, e := range res.Entries {
		ok := e.UniqueOK && e.OrderOK && e.UsedOK && e.TextOK && e.StyleOK
		status = status.And(report.FromBool(ok))
	}
	msg := fmt.Sprintf("%d reference(s), %d citation occurrence(s)", len(res.Entries), len(res.InText))
	if status != report.Pass {
		msg = "Reference list has ordering, usage or format issues"
	}
	rep.Add(report.CatReferences, report.Category{
		OK:      status,
		Message: msg,
		Details: ReferencesDetail{Entries: res.Entries, InText: res.InText, OutOfOrder: res.OutOfOrder},
	})
}

func addFigures(rep *report.Report, result figures.Result) {
	d := FiguresDetail{}
	status := report.Pass
	for _, id := range result.IDs() {
		e := result[id]
		d.Figures = append(d.Figures, e)
		switch {
		case !e.Found || e.Duplicate || !e.Used || !e.CaptionOK:
			status = report.Fail
		case e.Caption != nil && (!e.Caption.StyleOK || !e.StyleRuleOK):
			status = status.And(report.Warn)
		}
	}
	msg := fmt.Sprintf("%d figure(s) cross-linked", len(d.Figures))
	if status == report.Fail {
		msg = "Figures have missing, duplicate, unused or malformed captions"
	}
	rep.Add(report.CatFigures, report.Category{OK: status, Message: msg, Details: d})
}

func addTables(rep *report.Report, checks []tables.Check) {
	status := report.Pass
	for _, c := range checks {
		if !c.FormatOK || !c.OrderOK || !c.StyleOK || c.Used == 0 {
			status = report.Fail
		} else if c.Floating {
			// Document-order position of a floating table is unreliable,
			// so its caption adjacency cannot be confirmed.
			status = status.And(report.Warn)
		}
	}
	msg := fmt.Sprintf("%d table caption(s) checked", len(checks))
	if status == report.Fail {
		msg = "Table captions have numbering, format or style issues"
	}
	rep.Add(report.CatTables, report.Category{OK: status, Message: msg, Details: TablesDetail{Tables: checks}})
}

func addRoster(rep *report.Report, doc *docmodel.Document, seg *segment.Segments, cfg Config) error {
	rec, err := roster.Lookup(cfg.RosterCSVPath, cfg.PaperID)
	var match roster.MatchReport
	if err != nil {
		if !cfg.Debug {
			return err
		}
		log.Warn().Err(err).Str("paper", cfg.PaperID).Msg("roster lookup failed, substituting not-found result")
		match = roster.NotFound()
	} else {
		title := styles.DisplayText(doc, seg.Title.Paragraph)
		var authorsText strings.Builder
		for _, b := range seg.AuthorBlocks {
			authorsText.WriteString(authorText(b.Paragraph))
		}
		match = roster.Match(rec, title, authorsText.String())
	}

	status := report.Fail
	msg := "Paper not found in the roster"
	if match.Found {
		status = report.FromBool(match.TitleMatch && match.AuthorsMatch)
		msg = "Title and authors match the roster"
		if status != report.Pass {
			msg = "Title or authors deviate from the roster record"
		}
	} else if cfg.Debug {
		status = report.Warn
	}
	rep.Add(report.CatRosterCheck, report.Category{
		OK:      status,
		Message: msg,
		Details: RosterDetail{Paper: cfg.PaperID, Match: match},
	})
	return nil
}
