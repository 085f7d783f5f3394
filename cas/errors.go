package cas

import "errors"

var (
	ErrNotFound       = errors.New("cas: not found")
	ErrInvalidCID     = errors.New("cas: invalid cid")
	ErrCIDMismatch    = errors.New("cas: cid mismatch")
	ErrImmutable      = errors.New("cas: immutable object mismatch")
	ErrDigestMismatch = errors.New("cas: digest does not match canonical form")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
