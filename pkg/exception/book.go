package exception

import "errors"

// Order book errors
var (
	// ErrEmptyBookSide is returned when a snapshot is missing asks or bids.
	ErrEmptyBookSide = errors.New("book: empty side")

	// ErrInvalidMidPrice is returned when the mid price is not positive.
	ErrInvalidMidPrice = errors.New("book: mid price is not positive")

	// ErrInvalidOrderSize is returned when the requested notional is not positive.
	ErrInvalidOrderSize = errors.New("book: order size is not positive")

	// ErrInsufficientLiquidity is returned when the ask side cannot fill the
	// requested base quantity.
	ErrInsufficientLiquidity = errors.New("book: insufficient ask liquidity")
)
