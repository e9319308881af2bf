package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Drawing Serialization API
// =============================================================================

// MarshalDrawing serializes a Drawing to pretty-printed JSON bytes.
func MarshalDrawing(d Drawing) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteDrawing writes a Drawing as JSON to an io.Writer.
func WriteDrawing(d Drawing, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDrawing decodes a JSON drawing from an io.Reader.
func ReadDrawing(r io.Reader) (Drawing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Drawing{}, fmt.Errorf("read: %w", err)
	}
	return UnmarshalDrawing(data)
}

// WriteDrawingFile writes a Drawing to a JSON file.
func WriteDrawingFile(d Drawing, path string) error {
	data, err := MarshalDrawing(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDrawingFile reads a Drawing from a JSON file.
func ReadDrawingFile(path string) (Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Drawing{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDrawing(data)
}
