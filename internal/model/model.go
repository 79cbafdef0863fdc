package model

// Model is an instrument-scoped slippage regressor. Implementations are
// read-only after construction and safe for concurrent use.
//
// The feature order is pinned: (spread_pct, imbalance). Models are fitted on
// exactly these columns in this order; calling with swapped features silently
// corrupts the prediction, which is why no variadic form exists.
type Model interface {
	Predict(spreadPct, imbalance float64) float64
}

// Linear is an ordinary least-squares regressor over the pinned feature pair.
type Linear struct {
	Intercept float64
	Coef      [2]float64
}

func (m Linear) Predict(spreadPct, imbalance float64) float64 {
	return m.Intercept + m.Coef[0]*spreadPct + m.Coef[1]*imbalance
}
