// Package quote turns raw order-book snapshots into slippage estimates using
// the per-instrument models in the registry.
package quote

import (
	"math"

	"github.com/yanun0323/errors"

	"main/internal/book"
	"main/internal/model"
	"main/pkg/exception"
)

// Quote is the served slippage estimate. PredictedSlippagePct is in percent
// units (the training target's scale); SpreadPct stays a plain ratio.
type Quote struct {
	PredictedSlippagePct float64 `json:"predicted_slippage_pct"`
	SpreadPct            float64 `json:"spread_pct"`
	MidPrice             float64 `json:"mid_price"`
}

// Service answers slippage quote requests against an immutable registry.
type Service struct {
	registry *model.Registry
}

func NewService(registry *model.Registry) *Service {
	return &Service{registry: registry}
}

// Predict looks up the instrument's model, extracts features from the
// snapshot and returns the magnitude of the model output. The model may emit
// a signed fitted value; callers always receive the absolute slippage.
func (s *Service) Predict(instrument string, snap book.Snapshot, usdQuantity, volatility, feePct float64) (Quote, error) {
	m, ok := s.registry.Lookup(instrument)
	if !ok {
		return Quote{}, errors.Wrapf(exception.ErrUnknownInstrument, "instrument %s", instrument)
	}

	features, err := book.Extract(snap, usdQuantity, volatility, feePct)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		PredictedSlippagePct: math.Abs(m.Predict(features.SpreadPct, features.Imbalance)),
		SpreadPct:            features.SpreadPct,
		MidPrice:             features.MidPrice,
	}, nil
}
