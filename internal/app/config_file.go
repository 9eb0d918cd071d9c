package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to flags and env.
type FileConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	OutputPDF string `yaml:"outputPDF"`

	Paper string `yaml:"paper"`

	Roster struct {
		CSV string `yaml:"csv"`
	} `yaml:"roster"`

	Languages []string `yaml:"languages"`

	Segment struct {
		BodyMinLen int `yaml:"bodyMinLen"`
	} `yaml:"segment"`

	Debug   bool `yaml:"debug"`
	Admin   bool `yaml:"admin"`
	Verbose bool `yaml:"verbose"`
}

// LoadFileConfig reads a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// MergeFileConfig fills unset cfg fields from fc; flags keep precedence
// over the file, the file over env.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg.InputPath == "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OutputPDFPath == "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if cfg.PaperID == "" {
		cfg.PaperID = fc.Paper
	}
	if cfg.RosterCSVPath == "" {
		cfg.RosterCSVPath = fc.Roster.CSV
	}
	if len(cfg.AllowedLanguages) == 0 {
		cfg.AllowedLanguages = fc.Languages
	}
	if cfg.BodyMinLen == 0 {
		cfg.BodyMinLen = fc.Segment.BodyMinLen
	}
	cfg.Debug = cfg.Debug || fc.Debug
	cfg.Admin = cfg.Admin || fc.Admin
	cfg.Verbose = cfg.Verbose || fc.Verbose
}
