package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"portfolio/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a dataset from JSON, rejecting unknown fields
func (c *JSONCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	var ds domain.Dataset
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &ds, nil
}

// Export writes the dataset as indented JSON
func (c *JSONCodec) Export(ds *domain.Dataset, w io.Writer) error {
	if ds == nil {
		return fmt.Errorf("nil dataset")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ds.Normalized()); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
