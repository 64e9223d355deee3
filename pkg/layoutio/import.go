package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	gerrors "github.com/matzehuels/gridkit/pkg/errors"
)

// Read decodes a document in the given format from r and validates it.
//
// Read returns an error if:
//   - The input is malformed (INVALID_FORMAT)
//   - An item id is empty or repeated within a layout
//   - A span is smaller than 1x1 or a position lies outside the grid
//
// Read does not close r.
func Read(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	default:
		_, err = ParseFormat(string(format))
		return Document{}, err
	}
	if err != nil {
		return Document{}, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "decode %s document", format)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Import reads and validates the document at path, choosing the format
// from the extension.
func Import(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}
