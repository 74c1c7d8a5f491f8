package alsa

import "errors"

var (
	// ErrBadState indicates that an operation was invoked from a session state
	// that does not permit it. The session state is left unchanged.
	ErrBadState = errors.New("operation not allowed in current state")

	// ErrSequencer indicates that the sequencer service rejected or failed an
	// operation. The session state is left unchanged.
	ErrSequencer = errors.New("sequencer failure")

	// ErrPortExists indicates that the session already has a receiver port.
	// A session manages at most one receiver port.
	ErrPortExists = errors.New("session already has a receiver port")

	// ErrInvalidDesignation indicates that a port designation string does not
	// follow the "name" or "client:port" grammar. It is carried inside a
	// PortProfile rather than raised, since designations routinely originate
	// from monitor retries that must not crash the background task.
	ErrInvalidDesignation = errors.New("invalid port designation")
)
