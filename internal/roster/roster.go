// Package roster consults the conference's authoritative CSV of accepted
// papers and fuzzy-matches a document's extracted title and author list
// against its record.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Each roster failure is a distinct named condition; none is silently
// defaulted.
var (
	ErrPathNotConfigured = errors.New("roster csv path not configured")
	ErrFileNotFound      = errors.New("roster csv file not found")
	ErrColumnMissing     = errors.New("roster csv column missing")
	ErrPaperNotFound     = errors.New("paper not found in roster")
)

// Record is one roster row.
type Record struct {
	Paper   string
	Title   string
	Authors string
}

// Lookup finds the roster row whose paper column equals paperID (the
// uploaded filename minus extension).
func Lookup(path, paperID string) (Record, error) {
	if path == "" {
		return Record{}, ErrPathNotConfigured
	}
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	defer f.Close()
	return lookup(f, paperID)
}

func lookup(r io.Reader, paperID string) (Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	// Rosters arrive in UTF-8 or Latin-1 depending on the exporting tool;
	// fall back when the bytes are not valid UTF-8.
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err == nil {
			data = decoded
		}
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Record{}, fmt.Errorf("%w: empty roster", ErrColumnMissing)
	}
	paperCol, titleCol, authorsCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "paper":
			paperCol = i
		case "title":
			titleCol = i
		case "authors":
			authorsCol = i
		}
	}
	for name, col := range map[string]int{"paper": paperCol, "title": titleCol, "authors": authorsCol} {
		if col < 0 {
			return Record{}, fmt.Errorf("%w: %s", ErrColumnMissing, name)
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if paperCol >= len(row) {
			continue
		}
		if row[paperCol] == paperID {
			rec := Record{Paper: row[paperCol]}
			if titleCol < len(row) {
				rec.Title = row[titleCol]
			}
			if authorsCol < len(row) {
				rec.Authors = row[authorsCol]
			}
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrPaperNotFound, paperID)
}
