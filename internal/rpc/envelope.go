// Package rpc carries the framed request/response protocol: JSON envelopes,
// one per line, over a stream transport.
package rpc

import (
	"encoding/json"

	"main/internal/book"
)

// MethodExpectedSlippage is the only method served today. The dispatcher
// routes over a closed set, so adding a method means adding a case there.
const MethodExpectedSlippage = "expected_slippage"

// Request is the decoded request envelope.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response is the response envelope. Exactly one of Result and Error is
// serialized; a populated Error always wins.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SlippageParams are the expected_slippage request parameters.
type SlippageParams struct {
	Instrument    string       `json:"instrument"`
	Asks          []book.Level `json:"asks"`
	Bids          []book.Level `json:"bids"`
	OrderSize     float64      `json:"order_sz"`
	VolatilityPct float64      `json:"volatility_pct"`
	FeePct        float64      `json:"fee_pct"`
}
