// Package app wires the checking engines into one request pipeline: it
// loads a parsed document, runs every category check, assembles the report
// and owns the error boundary.
package app

// Config holds runtime configuration for one validation run.
type Config struct {
	// InputPath is the parsed-document JSON produced by the OOXML reader.
	InputPath  string
	OutputPath string
	// OutputPDFPath, when set, additionally renders the report as PDF.
	OutputPDFPath string

	// PaperID is the uploaded filename minus extension; it keys the roster
	// lookup. Empty skips the roster category.
	PaperID string
	// RosterCSVPath locates the conference roster; required whenever
	// PaperID is set, unless Debug substitutes a synthetic result.
	RosterCSVPath string

	// AllowedLanguages overrides the default locale allow-list.
	AllowedLanguages []string

	// BodyMinLen tunes the segmenter's body-paragraph threshold.
	BodyMinLen int

	// Debug substitutes a synthetic not-found roster result instead of
	// failing the document on roster errors.
	Debug bool
	// Admin gates the document-anonymization conversion.
	Admin   bool
	Verbose bool
}
