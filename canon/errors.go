package canon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeComplexityLimitExceeded indicates the run ran out of work budget.
	ErrCodeComplexityLimitExceeded ErrorCode = "COMPLEXITY_LIMIT_EXCEEDED"
	// ErrCodeUnsupportedHashAlgorithm indicates the digest algorithm is not registered.
	ErrCodeUnsupportedHashAlgorithm ErrorCode = "UNSUPPORTED_HASH_ALGORITHM"
	// ErrCodeMalformedStatement indicates an input statement cannot be canonicalized.
	ErrCodeMalformedStatement ErrorCode = "MALFORMED_STATEMENT"
	// ErrCodeInternal indicates any other failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

var (
	// ErrComplexityLimitExceeded indicates the run exceeded its work budget.
	ErrComplexityLimitExceeded = errors.New("canon: complexity limit exceeded")
	// ErrUnsupportedHashAlgorithm indicates the requested digest algorithm is not registered.
	ErrUnsupportedHashAlgorithm = errors.New("canon: unsupported hash algorithm")
	// ErrMalformedStatement indicates a statement with missing or ill-typed components.
	ErrMalformedStatement = errors.New("canon: malformed statement")
)

// Code returns the error code for an error.
// Returns empty string for nil errors.
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrComplexityLimitExceeded):
		return ErrCodeComplexityLimitExceeded
	case errors.Is(err, ErrUnsupportedHashAlgorithm):
		return ErrCodeUnsupportedHashAlgorithm
	case errors.Is(err, ErrMalformedStatement):
		return ErrCodeMalformedStatement
	default:
		return ErrCodeInternal
	}
}

// ComplexityError reports a run that was abandoned by the complexity guard.
// Context cancellation is reported the same way, with Err set to the
// context error.
type ComplexityError struct {
	// Group holds the input labels of the blank node group being resolved.
	// It is empty when re-partitioning exhausted the budget.
	Group []string
	// Work is the work spent before giving up: explored permutations plus
	// statements hashed again by re-partitioning.
	Work int64
	// Ceiling is the configured budget.
	Ceiling int64
	// Reason describes which limit was hit.
	Reason string
	// Err is the cancellation cause, if any.
	Err error
}

func (e *ComplexityError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%v: %s (work %d, ceiling %d)", ErrComplexityLimitExceeded, e.Reason, e.Work, e.Ceiling)
	if len(e.Group) > 0 {
		msg.WriteString(" in group [")
		for i, id := range e.Group {
			if i > 0 {
				msg.WriteByte(' ')
			}
			msg.WriteString("_:")
			msg.WriteString(id)
		}
		msg.WriteByte(']')
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

func (e *ComplexityError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrComplexityLimitExceeded}
	}
	return []error{ErrComplexityLimitExceeded, e.Err}
}

// StatementError reports a statement rejected before hashing begins.
type StatementError struct {
	// Index is the position of the statement in the caller's slice.
	Index int
	// Reason describes the problem.
	Reason string
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%v: statement %d: %s", ErrMalformedStatement, e.Index, e.Reason)
}

func (e *StatementError) Unwrap() error { return ErrMalformedStatement }

// AlgorithmError reports a digest algorithm missing from the registry.
type AlgorithmError struct {
	Name string
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedHashAlgorithm, e.Name)
}

func (e *AlgorithmError) Unwrap() error { return ErrUnsupportedHashAlgorithm }
