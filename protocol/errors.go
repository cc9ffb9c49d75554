package protocol

import "errors"

var (
	// ErrProtocol is the sentinel matched by every ProtocolError
	ErrProtocol = errors.New("protocol error")

	// ErrNestedArray is returned by ReadReply for arrays containing arrays
	ErrNestedArray = errors.New("nested arrays are not supported")
)

// ProtocolError describes a request frame that could not be decoded.
// The connection that produced it stays usable.
type ProtocolError struct {
	Reason string
}

func newProtocolError(reason string) *ProtocolError {
	return &ProtocolError{Reason: reason}
}

func (e *ProtocolError) Error() string {
	return e.Reason
}

// Is reports ErrProtocol as a match so callers can use errors.Is
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}
