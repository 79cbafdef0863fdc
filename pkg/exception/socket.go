package exception

import "errors"

// Socket errors
var (
	// ErrEmptyAddress is returned when a listen or dial address is empty.
	ErrEmptyAddress = errors.New("socket: empty address")

	// ErrUnsupportedNetwork is returned for networks other than tcp and unix.
	ErrUnsupportedNetwork = errors.New("socket: unsupported network")

	// ErrNilClient is returned when a nil client receiver is used.
	ErrNilClient = errors.New("socket: nil client")
)
