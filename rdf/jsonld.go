package rdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// JSONLDOptions configures JSON-LD processing.
type JSONLDOptions struct {
	// BaseIRI resolves relative IRIs.
	BaseIRI string
	// ProcessingMode controls JSON-LD version semantics: "json-ld-1.0" or "json-ld-1.1".
	ProcessingMode string
	// ExpandContext provides an external context for expansion.
	ExpandContext interface{}
	// ProduceGeneralizedRdf keeps blank node predicates instead of dropping them.
	ProduceGeneralizedRdf bool
	// SafeMode toggles strict JSON-LD error handling.
	SafeMode bool
	// DocumentLoader resolves remote contexts. Nil uses json-gold's default loader.
	DocumentLoader ld.DocumentLoader
}

// jsonldDecoder converts a JSON-LD document to quads up front and then
// replays them through the Decoder interface.
type jsonldDecoder struct {
	quads []Quad
	pos   int
}

func newJSONLDDecoder(r io.Reader, opts DecodeOptions) (Decoder, error) {
	data, err := readLimited(r, opts.MaxInputBytes)
	if err != nil {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, err)
	}
	quads, err := jsonLDToQuads(opts.Context, doc, opts.JSONLD)
	if err != nil {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, err)
	}
	if opts.MaxStatements > 0 && int64(len(quads)) > opts.MaxStatements {
		return nil, wrapParseError(string(FormatJSONLD), "", 0, 0, ErrStatementLimitExceeded)
	}
	return &jsonldDecoder{quads: quads}, nil
}

func (d *jsonldDecoder) Next() (Quad, error) {
	if d.pos >= len(d.quads) {
		return Quad{}, io.EOF
	}
	q := d.quads[d.pos]
	d.pos++
	return q, nil
}

func (d *jsonldDecoder) Close() error { return nil }

// jsonLDToQuads runs the JSON-LD toRdf algorithm and reads the result back
// through the N-Quads parser so both input paths share one term model.
func jsonLDToQuads(ctx context.Context, doc interface{}, opts JSONLDOptions) ([]Quad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, newJSONGoldOptions(opts))
	if err != nil {
		return nil, err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	serializer := &ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return nil, err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}
	return ParseQuads(ctx, strings.NewReader(nquads), FormatNQuads)
}

func newJSONGoldOptions(opts JSONLDOptions) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.ProcessingMode != "" {
		goldOpts.ProcessingMode = opts.ProcessingMode
	}
	if opts.ExpandContext != nil {
		goldOpts.ExpandContext = opts.ExpandContext
	}
	goldOpts.ProduceGeneralizedRdf = opts.ProduceGeneralizedRdf
	goldOpts.SafeMode = opts.SafeMode
	if opts.DocumentLoader != nil {
		goldOpts.DocumentLoader = opts.DocumentLoader
	}
	return goldOpts
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrInputTooLarge
	}
	return data, nil
}
