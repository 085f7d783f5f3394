package rdf

import (
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ntriples", "nt":
		return FormatNTriples, true
	case "nquads", "nq":
		return FormatNQuads, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatFromPath infers format from filename extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return FormatNTriples, true
	case ".nq":
		return FormatNQuads, true
	case ".jsonld", ".json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}
