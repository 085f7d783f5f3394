// Package rdf provides the RDF dataset model and the N-Quads and JSON-LD
// readers used by the canonicalizer.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// Terms are IRI, BlankNode, Literal and TripleTerm; a Quad holds a subject,
// predicate, object and an optional graph name (nil for the default graph).
//
//   - Decode: NewDecoder() returns a pull-style decoder for N-Quads,
//     N-Triples or JSON-LD.
//   - Encode: NewEncoder() returns a push-style encoder for N-Quads or N-Triples.
//   - Parse: ParseQuads() and ParseNQuadsString() read a whole document.
//   - Format: FormatQuad() and FormatTerm() render the canonical N-Quads form.
//
// Example:
//
//	dec, err := rdf.NewDecoder(strings.NewReader(input), rdf.FormatNQuads)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    quad, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process quad.S, quad.P, quad.O, quad.G
//	}
//
// For unsupported formats, NewDecoder and NewEncoder return ErrUnsupportedFormat.
//
// Decoder options (OptMaxLineBytes, OptMaxStatements, OptMaxInputBytes) bound
// the work done on untrusted input. JSON-LD documents are expanded with
// json-gold and must fit in memory.
package rdf
