package event

import "errors"

// Sentinel errors named directly in spec.md §4.6: ErrUnknownEvent backs
// "UnknownEvent", ErrArgMismatch backs "ArgMismatch". ErrDuplicateEvent and
// ErrUnknownHandle are this package's own symbol-table bookkeeping, named
// the same way.
var (
	ErrUnknownEvent   = errors.New("event: unknown event")
	ErrDuplicateEvent = errors.New("event: event already registered")
	ErrArgMismatch    = errors.New("event: argument mismatch")
	ErrUnknownHandle  = errors.New("event: unknown handle")
)
