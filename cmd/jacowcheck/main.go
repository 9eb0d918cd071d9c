package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/developingAlex/jacow-validator/internal/app"
	"github.com/developingAlex/jacow-validator/internal/docmodel"
	"github.com/developingAlex/jacow-validator/internal/page"
	"github.com/developingAlex/jacow-validator/internal/report"
	"github.com/developingAlex/jacow-validator/internal/roster"
	"github.com/developingAlex/jacow-validator/internal/segment"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath  string
		outputPath string
		outputPDF  string
		configPath string
		paperID    string
		rosterCSV  string
		languages  string
		bodyMinLen int
		anonymize  bool
		debug      bool
		admin      bool
		verbose    bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to parsed-document JSON (required)")
	flag.StringVar(&outputPath, "output", "", "Path to write the JSON report (default stdout)")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to also write the report as PDF")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&paperID, "paper", "", "Paper id for the roster check (filename minus extension)")
	flag.StringVar(&rosterCSV, "roster.csv", "", "Path to the conference roster CSV")
	flag.StringVar(&languages, "languages", "", "Comma-separated allow-list of language tags")
	flag.IntVar(&bodyMinLen, "segment.bodyMinLen", 0, "Body-paragraph length threshold for the classifier")
	flag.BoolVar(&anonymize, "anonymize", false, "Write an anonymized copy of the document instead of a report (admin only)")
	flag.BoolVar(&debug, "debug", false, "Substitute a synthetic result for roster failures instead of aborting")
	flag.BoolVar(&admin, "admin", false, "Enable admin-only operations")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		InputPath:     inputPath,
		OutputPath:    outputPath,
		OutputPDFPath: outputPDF,
		PaperID:       paperID,
		RosterCSVPath: rosterCSV,
		BodyMinLen:    bodyMinLen,
		Debug:         debug,
		Admin:         admin,
		Verbose:       verbose,
	}
	if languages != "" {
		for _, tag := range strings.Split(languages, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				cfg.AllowedLanguages = append(cfg.AllowedLanguages, tag)
			}
		}
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Error().Err(err).Msg("config file")
			os.Exit(2)
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.InputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: jacowcheck -input document.json [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if cfg.PaperID == "" {
		// Default the paper id from the filename, matching the upload flow.
		base := filepath.Base(cfg.InputPath)
		cfg.PaperID = strings.TrimSuffix(base, filepath.Ext(base))
		if cfg.RosterCSVPath == "" && !cfg.Debug {
			// No roster configured at all: leave the category out rather
			// than failing every local run.
			cfg.PaperID = ""
		}
	}

	if anonymize {
		if !cfg.Admin {
			log.Error().Msg("anonymize is admin-only; pass -admin or set JACOW_ADMIN")
			os.Exit(2)
		}
		if err := runAnonymize(cfg); err != nil {
			log.Error().Err(err).Msg("anonymize failed")
			os.Exit(1)
		}
		return
	}

	rep, err := app.Run(cfg)
	if err != nil {
		log.Error().Err(err).Str("input", cfg.InputPath).Msg(describe(err))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(struct {
		Overall    report.Status     `json:"overall"`
		Categories []report.Category `json:"categories"`
	}{rep.Overall(), rep.Ordered()}, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode report")
		os.Exit(1)
	}
	if cfg.OutputPath == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(cfg.OutputPath, append(out, '\n'), 0o644); err != nil {
		log.Error().Err(err).Msg("write report")
		os.Exit(1)
	}
	if cfg.OutputPDFPath != "" {
		if err := app.WriteReportPDF(rep, cfg.OutputPDFPath); err != nil {
			log.Error().Err(err).Msg("write pdf report")
			os.Exit(1)
		}
	}
	if rep.Overall() == report.Fail {
		os.Exit(1)
	}
}

func runAnonymize(cfg app.Config) error {
	doc, err := docmodel.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	anon := app.Anonymize(doc)
	data, err := json.MarshalIndent(anon, "", "  ")
	if err != nil {
		return err
	}
	out := cfg.OutputPath
	if out == "" {
		out = strings.TrimSuffix(cfg.InputPath, filepath.Ext(cfg.InputPath)) + "_anon.json"
	}
	return os.WriteFile(out, append(data, '\n'), 0o644)
}

// describe maps known failure classes to the operator-facing message.
func describe(err error) string {
	switch {
	case errors.Is(err, segment.ErrAbstractNotFound):
		return "no Abstract heading found; the document cannot be validated"
	case errors.Is(err, docmodel.ErrTrackedChanges):
		return "tracked changes must be accepted or rejected before validation"
	case errors.Is(err, docmodel.ErrInvalidPackage):
		return "failed to open document; is it a valid parsed-document file?"
	case errors.Is(err, docmodel.ErrCorruptedFile):
		return "the document file seems to be corrupted"
	case errors.Is(err, page.ErrUnknownPageSize):
		return "page size matches neither A4 nor Letter"
	case errors.Is(err, roster.ErrPaperNotFound):
		return "no roster entry for this paper; is the filename the paper name?"
	case errors.Is(err, roster.ErrPathNotConfigured),
		errors.Is(err, roster.ErrFileNotFound),
		errors.Is(err, roster.ErrColumnMissing):
		return "roster csv unavailable"
	default:
		return "validation failed"
	}
}
