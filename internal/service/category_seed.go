package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// SeedFormat is the encoding of a category seed document.
type SeedFormat string

const (
	SeedFormatJSON SeedFormat = "json"
	SeedFormatYAML SeedFormat = "yaml"
)

// SeedFormatFromPath picks the format by file extension.
func SeedFormatFromPath(path string) (SeedFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SeedFormatJSON, nil
	case ".yaml", ".yml":
		return SeedFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSeedFormat, filepath.Ext(path))
	}
}

// SeedFormatFromContentType picks the format by media type. Anything that
// does not mention yaml is treated as JSON.
func SeedFormatFromContentType(contentType string) SeedFormat {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return SeedFormatYAML
	}
	return SeedFormatJSON
}

// LoadSeedFile reads a category seed list from a .json, .yaml or .yml file.
func LoadSeedFile(path string) ([]models.CategorySeed, error) {
	format, err := SeedFormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	return DecodeSeed(bytes.NewReader(data), format)
}

// DecodeSeed decodes a list of {value, background, description} entries.
func DecodeSeed(r io.Reader, format SeedFormat) ([]models.CategorySeed, error) {
	var entries []models.CategorySeed

	switch format {
	case SeedFormatJSON:
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeedEntry, err)
		}
	case SeedFormatYAML:
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeedEntry, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSeedFormat, format)
	}

	return entries, nil
}
