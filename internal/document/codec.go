package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrMalformed is returned when a document cannot be parsed.
var ErrMalformed = errors.New("malformed document")

// Format is a document serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format by file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data over Default, so missing keys keep their defaults.
// An absent or null gtm_channels key keeps the default channels; an empty
// list means no channels. Derived ote_quotas are discarded.
func Decode(data []byte, format Format) (Document, error) {
	doc := Default()
	defaultChannels := doc.GTMChannels
	// Array decoding reuses slice capacity, so decode channels from scratch.
	doc.GTMChannels = nil

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON, "":
		err = json.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("%w: unknown format %q", ErrMalformed, format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if doc.GTMChannels == nil {
		doc.GTMChannels = defaultChannels
	}
	doc.OTEQuotas = nil
	return doc, nil
}

// Encode serializes doc.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON, "":
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
