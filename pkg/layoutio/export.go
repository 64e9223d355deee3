package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Write encodes doc in the given format and writes it to w.
// The output can be re-read with [Read] for round-trip processing.
func Write(doc Document, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		_, err := ParseFormat(string(format))
		return err
	}
	return nil
}

// Export writes doc to path, choosing the format from the extension.
func Export(doc Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(doc, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
