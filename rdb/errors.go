package rdb

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every DecodeError
	ErrDecode = errors.New("rdb decode error")

	// ErrShortBuffer is returned when the input ends before a field is complete
	ErrShortBuffer = errors.New("buffer too short")

	// ErrInvalidMagic is returned when the header does not start with REDIS
	ErrInvalidMagic = errors.New("invalid magic string")

	// ErrInvalidVersion is returned when the header version is not numeric
	ErrInvalidVersion = errors.New("invalid rdb version")

	// ErrInvalidLength is returned for the reserved 0xFF length marker
	ErrInvalidLength = errors.New("invalid length encoding")

	// ErrInvalidInteger is returned for a byte that is not an integer marker
	ErrInvalidInteger = errors.New("invalid integer encoding")

	// ErrUnknownType is returned for an unsupported value type tag
	ErrUnknownType = errors.New("unknown value type")

	// ErrInvalidAuxKey is returned when an auxiliary field key is not UTF-8
	ErrInvalidAuxKey = errors.New("auxiliary key is not valid UTF-8")
)

// DecodeError reports where in the snapshot decoding stopped
type DecodeError struct {
	Offset int
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("rdb: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("rdb: %s at offset %d: %v", e.Reason, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrDecode as a match; the wrapped cause is reached through Unwrap
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
