// Package errs collects the sentinel errors shared across the module.
// The Message-state ones are programming-error invariants — using a
// Message outside the state its state machine permits — wrapped with
// fmt.Errorf("%w: ...") and panic'd, never returned; see message.Message
// for where they surface. The registry ones (channel name/hash collision
// errors) are ordinary runtime conditions and are returned normally from
// internal/collision and registry.
package errs

import "errors"

var (
	// ErrMessageNotOpen is raised by writeValue/getValue/close when the
	// Message is still in its Unknown state.
	ErrMessageNotOpen = errors.New("message: not open")

	// ErrMessageClosed is raised by any operation after close().
	ErrMessageClosed = errors.New("message: already closed")

	// ErrMessageAlreadyOpen is raised by open() on a Message that has
	// already transitioned out of Unknown.
	ErrMessageAlreadyOpen = errors.New("message: already open")

	// ErrMessageWrongMode is raised when a read operation is attempted on a
	// Message opened for writing, or vice versa.
	ErrMessageWrongMode = errors.New("message: wrong mode for operation")

	// ErrMessageAlreadyWritten is raised by a second writeValue call: a
	// Message holds exactly one top-level Value.
	ErrMessageAlreadyWritten = errors.New("message: value already written")

	// ErrHashCollision is raised when a channel name hash collides with a
	// previously registered hash and the registry cannot disambiguate
	// automatically (mirrors the registry-proxy's own ID-hash scheme).
	ErrHashCollision = errors.New("registry: channel name hash collision")

	// ErrInvalidChannelName is raised for an empty or otherwise unusable
	// channel name.
	ErrInvalidChannelName = errors.New("registry: invalid channel name")

	// ErrChannelAlreadyRegistered is raised when the same channel name is
	// registered twice.
	ErrChannelAlreadyRegistered = errors.New("registry: channel already registered")
)
