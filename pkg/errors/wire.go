package errors

import stdErrors "errors"

// WireError is a specialized error type for the framed client/server
// protocol: frame decode failures, schema mismatches, and errors that have
// crossed a process boundary as plain text and need to be re-surfaced to a
// caller without pretending to be something more specific than they are.
type WireError struct {
	*baseError

	// peer identifies the remote address involved, when known.
	peer string

	// verb identifies which command verb (GET/SET/REMOVE/HGET/...) was being
	// served when the error occurred.
	verb string
}

// NewWireError creates a new wire-protocol error with the provided context.
func NewWireError(err error, code ErrorCode, msg string) *WireError {
	return &WireError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while maintaining the WireError type.
func (we *WireError) WithMessage(msg string) *WireError {
	we.baseError.WithMessage(msg)
	return we
}

// WithCode sets the error code while preserving the WireError type.
func (we *WireError) WithCode(code ErrorCode) *WireError {
	we.baseError.WithCode(code)
	return we
}

// WithDetail adds contextual information while maintaining the WireError type.
func (we *WireError) WithDetail(key string, value any) *WireError {
	we.baseError.WithDetail(key, value)
	return we
}

// WithPeer records the remote address associated with the error.
func (we *WireError) WithPeer(peer string) *WireError {
	we.peer = peer
	return we
}

// WithVerb records which command verb was being served.
func (we *WireError) WithVerb(verb string) *WireError {
	we.verb = verb
	return we
}

// Peer returns the remote address associated with the error, if any.
func (we *WireError) Peer() string {
	return we.peer
}

// Verb returns the command verb that was being served, if any.
func (we *WireError) Verb() string {
	return we.verb
}

// IsWireError checks if the given error is a WireError or contains one in
// its error chain.
func IsWireError(err error) bool {
	var we *WireError
	return stdErrors.As(err, &we)
}

// AsWireError extracts WireError context from an error chain.
func AsWireError(err error) (*WireError, bool) {
	var we *WireError
	if stdErrors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// NewKeyNotFoundWireError builds the response-carrying error for a remove of
// an absent key — the only wire error that is purely semantic rather than a
// sign of corruption or I/O failure.
func NewKeyNotFoundWireError(verb, key string) *WireError {
	return NewWireError(nil, ErrorCodeIndexKeyNotFound, "key not found").
		WithVerb(verb).
		WithDetail("key", key)
}

// NewUnexpectedCommandTypeError builds the error returned when a position the
// index pointed at does not decode to the expected record shape, the
// canonical symptom of on-disk corruption.
func NewUnexpectedCommandTypeError(gen uint64, offset, length int64) *WireError {
	return NewWireError(nil, ErrorCodeUnexpectedCommandType, "unexpected command type at recorded position").
		WithDetail("generation", gen).
		WithDetail("offset", offset).
		WithDetail("length", length)
}
