package docmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidPackage indicates the document container could not be decoded
// into the paragraph/section/table model.
var ErrInvalidPackage = errors.New("invalid document package")

// ErrCorruptedFile indicates an I/O-level failure while reading the file.
var ErrCorruptedFile = errors.New("corrupted file")

// ErrTrackedChanges indicates the document still contains unresolved
// revision markup; validation is not meaningful until the author accepts or
// rejects the tracked changes.
var ErrTrackedChanges = errors.New("document has tracked changes enabled")

// Load reads the JSON serialization of a parsed document, as produced by
// the external OOXML reader.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedFile, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a parsed document from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedFile, err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	for i := range d.Tables {
		if d.Tables[i].AfterParagraph >= len(d.Paragraphs) {
			return nil, fmt.Errorf("%w: table %d anchored past paragraph stream", ErrInvalidPackage, i)
		}
	}
	return &d, nil
}

// EnsureNoTrackedChanges fails when the document carries unresolved
// revision markup.
func (d *Document) EnsureNoTrackedChanges() error {
	if d.TrackedChanges {
		return ErrTrackedChanges
	}
	return nil
}
