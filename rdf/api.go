package rdf

import (
	"context"
	"io"
	"strings"
)

// Decoder streams RDF quads from an input.
// Next returns io.EOF once the input is exhausted.
type Decoder interface {
	Next() (Quad, error)
	Close() error
}

// Encoder streams RDF quads to an output.
// For N-Triples, the graph (G) field is ignored.
type Encoder interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// NewDecoder creates a decoder for the specified format.
func NewDecoder(r io.Reader, format Format, opts ...Option) (Decoder, error) {
	options := DefaultDecodeOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options = normalizeDecodeOptions(options)

	switch format {
	case FormatNQuads, FormatNTriples:
		return newNQuadsDecoder(r, format, options), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r, options)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewEncoder creates an encoder for the specified format.
// Only the line-based formats can be written.
func NewEncoder(w io.Writer, format Format) (Encoder, error) {
	switch format {
	case FormatNQuads, FormatNTriples:
		return newNQuadsEncoder(w, format), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseQuads decodes the whole input into memory.
// If ctx is nil, context.Background() is used as the default.
func ParseQuads(ctx context.Context, r io.Reader, format Format, opts ...Option) ([]Quad, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dec, err := NewDecoder(r, format, append([]Option{OptContext(ctx)}, opts...)...)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var quads []Quad
	for {
		quad, err := dec.Next()
		if err == io.EOF {
			return quads, nil
		}
		if err != nil {
			return nil, err
		}
		quads = append(quads, quad)
	}
}

// ParseNQuadsString is a convenience wrapper for in-memory N-Quads documents.
func ParseNQuadsString(input string) ([]Quad, error) {
	return ParseQuads(context.Background(), strings.NewReader(input), FormatNQuads)
}

// WriteQuads encodes quads in order and flushes the encoder.
func WriteQuads(w io.Writer, format Format, quads []Quad) error {
	enc, err := NewEncoder(w, format)
	if err != nil {
		return err
	}
	for _, q := range quads {
		if err := enc.Write(q); err != nil {
			_ = enc.Close()
			return err
		}
	}
	return enc.Close()
}
