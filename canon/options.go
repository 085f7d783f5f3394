package canon

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultComplexityFactor is the default number of permutations allowed per
// blank node before a run is abandoned.
const DefaultComplexityFactor = 1000

const tracerName = "github.com/geoknoesis/rdf-canon/canon"

// Option configures a Canonicalizer.
type Option func(*options)

type options struct {
	complexityFactor int
	maxDegree        int
	strict           bool
	logger           *slog.Logger
	tracer           trace.Tracer
}

func defaultOptions() options {
	return options{
		complexityFactor: DefaultComplexityFactor,
		logger:           slog.New(slog.DiscardHandler),
		tracer:           otel.Tracer(tracerName),
	}
}

// WithComplexityFactor sets the work budget per blank node. Work is one
// unit per explored permutation, including the single ordering of a
// one-member group, plus one unit per statement hashed again during
// re-partitioning. The run fails once work exceeds factor × blank nodes.
// Values below one restore the default.
//
// Long cycles cost work quadratic in their length because every member is
// explored around the whole cycle: a ring of 50 blank nodes needs about
// 15600 units, and a ring of 200 exceeds the default budget.
func WithComplexityFactor(factor int) Option {
	return func(opts *options) {
		if factor < 1 {
			factor = DefaultComplexityFactor
		}
		opts.complexityFactor = factor
	}
}

// WithMaxDegree caps how many degrees deep the N-degree search may follow
// related blank nodes. Zero (the default) lets the search grow until it is
// complete; a tie still open at the cap fails the run.
func WithMaxDegree(degree int) Option {
	return func(opts *options) {
		if degree < 0 {
			degree = 0
		}
		opts.maxDegree = degree
	}
}

// WithStrictRDFC selects the W3C RDFC-1.0 processing order: a single
// first-degree pass, shared groups in hash order, unbounded N-degree search.
//
// Labels then match URDNA2015 implementations such as json-gold for most
// inputs, with two exceptions. Repeated statements are dropped here but
// hashed once per copy by json-gold, and a statement naming the same blank
// node twice is indexed once here but once per occurrence by json-gold.
// Strict mode also keeps RDFC-1.0's dependence on input order when tied
// candidates are not automorphic. Reading
//
//	_:n4 <p> _:n0 _:n1 .
//	_:n4 <p> "v" .
//	_:n3 <p> _:n1 _:n0 .
//
// in reverse order yields different canonical output. The default mode is
// invariant on such input.
func WithStrictRDFC() Option {
	return func(opts *options) {
		opts.strict = true
	}
}

// WithLogger sets the logger for phase and group diagnostics. A nil logger
// discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		opts.logger = logger
	}
}

// WithTracer sets the tracer used for the canonicalization span.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) {
		if tracer == nil {
			tracer = otel.Tracer(tracerName)
		}
		opts.tracer = tracer
	}
}
