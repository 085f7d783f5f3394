package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeLineTooLong indicates a line exceeded the configured limit.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"
	// ErrCodeStatementLimitExceeded indicates that the maximum number of statements was exceeded.
	ErrCodeStatementLimitExceeded ErrorCode = "STATEMENT_LIMIT_EXCEEDED"
	// ErrCodeInputTooLarge indicates a buffered input exceeded the configured limit.
	ErrCodeInputTooLarge ErrorCode = "INPUT_TOO_LARGE"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrLineTooLong indicates a line exceeded the configured limit.
	ErrLineTooLong = errors.New("rdf: line exceeds configured limit")
	// ErrStatementLimitExceeded indicates that the maximum number of statements was exceeded.
	ErrStatementLimitExceeded = errors.New("rdf: maximum number of statements exceeded")
	// ErrInputTooLarge indicates a buffered input exceeded the configured limit.
	ErrInputTooLarge = errors.New("rdf: input exceeds configured limit")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrLineTooLong):
		return ErrCodeLineTooLong
	case errors.Is(err, ErrStatementLimitExceeded):
		return ErrCodeStatementLimitExceeded
	case errors.Is(err, ErrInputTooLarge):
		return ErrCodeInputTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "nquads", "jsonld")
	Statement string // Offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.excerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// excerpt returns a truncated copy of the offending statement.
func (e *ParseError) excerpt() string {
	const maxExcerptLen = 80
	if len(e.Statement) > maxExcerptLen {
		return e.Statement[:maxExcerptLen] + "..."
	}
	return e.Statement
}

// wrapParseError adds format/statement/position context to a parse error.
func wrapParseError(format, statement string, line, column int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if line == 0 {
			line = parseErr.Line
		}
		if column == 0 {
			column = parseErr.Column
		}
		err = parseErr.Err
	}
	return &ParseError{
		Format:    format,
		Statement: statement,
		Line:      line,
		Column:    column,
		Err:       err,
	}
}
