package rpc

import (
	"encoding/json"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/book"
	"main/internal/quote"
)

// internalErrorEnvelope is the fallback when even the error envelope cannot
// be encoded.
var internalErrorEnvelope = []byte(`{"error":"internal error"}`)

// Dispatcher decodes request envelopes, routes them and encodes responses.
// It is the error boundary: every failure below it, panics included, leaves
// as a well-formed error envelope, never as a fault on the connection.
type Dispatcher struct {
	quotes *quote.Service
}

func NewDispatcher(quotes *quote.Service) *Dispatcher {
	return &Dispatcher{quotes: quotes}
}

// Dispatch handles one framed request and always returns one framed response.
func (d *Dispatcher) Dispatch(raw []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			logs.Errorf("dispatch panic: %v", r)
			out = internalErrorEnvelope
		}
	}()

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return encodeError(errors.Wrap(err, "decode request").Error())
	}

	switch req.Method {
	case MethodExpectedSlippage:
		result, err := d.expectedSlippage(req.Params)
		if err != nil {
			return encodeError(err.Error())
		}
		return encodeResult(result)
	default:
		return encodeError("Unknown function: " + req.Method)
	}
}

func (d *Dispatcher) expectedSlippage(params json.RawMessage) (quote.Quote, error) {
	var p SlippageParams
	if err := json.Unmarshal(params, &p); err != nil {
		return quote.Quote{}, errors.Wrap(err, "decode params")
	}

	snap := book.Snapshot{Asks: p.Asks, Bids: p.Bids}
	return d.quotes.Predict(p.Instrument, snap, p.OrderSize, p.VolatilityPct, p.FeePct)
}

func encodeResult(result any) []byte {
	payload, err := json.Marshal(result)
	if err != nil {
		return encodeError(errors.Wrap(err, "encode result").Error())
	}
	out, err := json.Marshal(Response{Result: payload})
	if err != nil {
		return internalErrorEnvelope
	}
	return out
}

func encodeError(msg string) []byte {
	out, err := json.Marshal(Response{Error: msg})
	if err != nil {
		return internalErrorEnvelope
	}
	return out
}
