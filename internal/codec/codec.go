// Package codec converts portfolio datasets to and from file formats.
//
// JSON and YAML work in both directions; a YAML export is a valid seed
// file. XLSX is export-only.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"portfolio/internal/domain"
)

// Importer interface for reading a dataset from a format
type Importer interface {
	Parse(r io.Reader) (*domain.Dataset, error)
	Format() string
}

// Exporter interface for writing a dataset in a format
type Exporter interface {
	Export(ds *domain.Dataset, w io.Writer) error
	Format() string
}

// Exporters lists the supported export formats
func Exporters() []Exporter {
	return []Exporter{NewJSONCodec(), NewYAMLCodec(), NewXLSXExporter()}
}

// ExporterFor returns the exporter for format
func ExporterFor(format string) (Exporter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		format = "yaml"
	}
	for _, e := range Exporters() {
		if e.Format() == format {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ImporterForPath picks an importer from the file extension. Anything that
// is not .json is read as YAML.
func ImporterForPath(path string) Importer {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONCodec()
	}
	return NewYAMLCodec()
}
