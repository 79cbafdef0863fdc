package exception

import "errors"

var (
	// ErrUnknownInstrument is returned when no model is registered for a symbol.
	ErrUnknownInstrument = errors.New("quote: unsupported instrument")

	// ErrNilModel is returned when a nil model is registered.
	ErrNilModel = errors.New("quote: nil model")
)
