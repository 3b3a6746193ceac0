package usbrly

import "errors"

// Errors returned by this package. Failures from the serial layer itself
// are passed through to the caller unchanged.
var (
	// ErrNotConnected is returned when a command is attempted before
	// Connect, or after the port has been closed.
	ErrNotConnected = errors.New("usbrly: port not connected")

	// ErrRelayOutOfRange is returned for relay indexes outside
	// [0, NumRelays).
	ErrRelayOutOfRange = errors.New("usbrly: relay index out of range")

	// ErrProtocol is returned when the board's response does not match
	// what the sent command requires.
	ErrProtocol = errors.New("usbrly: protocol error")
)
