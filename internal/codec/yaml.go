package codec

import (
	"fmt"
	"io"

	"portfolio/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. Record ids are not part of the
// YAML form.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a dataset from YAML, rejecting unknown fields
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	var ds domain.Dataset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &ds, nil
}

// Export writes the dataset as YAML
func (c *YAMLCodec) Export(ds *domain.Dataset, w io.Writer) error {
	if ds == nil {
		return fmt.Errorf("nil dataset")
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	normalized := ds.Normalized()
	if err := encoder.Encode(&normalized); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
