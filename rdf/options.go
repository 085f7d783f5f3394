package rdf

import "context"

const (
	DefaultMaxLineBytes  = 1 << 20
	DefaultMaxInputBytes = 64 << 20
)

// DecodeOptions configures parser behavior and limits.
// Zero values use defaults. Use negative values to disable specific limits.
type DecodeOptions struct {
	MaxLineBytes int
	// MaxStatements caps the number of statements a decoder will return.
	MaxStatements int64
	// MaxInputBytes caps formats that must buffer the whole document (JSON-LD).
	MaxInputBytes int64
	// JSONLD configures JSON-LD decoding.
	JSONLD JSONLDOptions
	// Context provides cancellation for decoding work.
	Context context.Context
}

// Option configures decoder behavior.
type Option func(*DecodeOptions)

// DefaultDecodeOptions returns safe defaults for parser limits.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxLineBytes:  DefaultMaxLineBytes,
		MaxInputBytes: DefaultMaxInputBytes,
	}
}

func normalizeDecodeOptions(opts DecodeOptions) DecodeOptions {
	if opts.MaxLineBytes == 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}
	if opts.MaxInputBytes == 0 {
		opts.MaxInputBytes = DefaultMaxInputBytes
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return opts
}

// OptContext sets the context for cancellation and timeouts.
func OptContext(ctx context.Context) Option {
	return func(opts *DecodeOptions) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *DecodeOptions) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptMaxStatements sets the maximum number of statements to decode.
func OptMaxStatements(n int64) Option {
	return func(opts *DecodeOptions) {
		opts.MaxStatements = n
	}
}

// OptMaxInputBytes sets the buffered input limit for JSON-LD.
func OptMaxInputBytes(n int64) Option {
	return func(opts *DecodeOptions) {
		opts.MaxInputBytes = n
	}
}

// OptJSONLD sets JSON-LD processing options.
func OptJSONLD(jsonld JSONLDOptions) Option {
	return func(opts *DecodeOptions) {
		opts.JSONLD = jsonld
	}
}
