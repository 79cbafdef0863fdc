package book

import (
	"sort"

	"main/pkg/exception"
)

const (
	// depthLevels is how many levels per side feed the imbalance feature.
	depthLevels = 5

	// depthEpsilon keeps the imbalance denominator away from zero.
	depthEpsilon = 1e-6
)

// Features is the immutable per-request feature vector derived from one
// snapshot. SpreadPct and Imbalance are plain ratios; SimulatedSlippagePct is
// already scaled by 100 because that is the unit the models were fitted on.
type Features struct {
	SpreadPct            float64
	Imbalance            float64
	MidPrice             float64
	SimulatedSlippagePct float64
	OrderQty             float64

	// Carried for the caller, never consumed by a model.
	Volatility float64
	FeePct     float64
}

type level struct {
	price float64
	size  float64
}

// Extract derives the model features for executing a market buy of
// usdQuantity notional against the snapshot. Pure and deterministic.
func Extract(snap Snapshot, usdQuantity, volatility, feePct float64) (Features, error) {
	if len(snap.Asks) == 0 || len(snap.Bids) == 0 {
		return Features{}, exception.ErrEmptyBookSide
	}
	if usdQuantity <= 0 {
		return Features{}, exception.ErrInvalidOrderSize
	}

	asks := sortedLevels(snap.Asks, true)
	bids := sortedLevels(snap.Bids, false)

	bestAsk := asks[0].price
	bestBid := bids[0].price
	mid := (bestAsk + bestBid) / 2
	if mid <= 0 {
		return Features{}, exception.ErrInvalidMidPrice
	}

	spreadPct := (bestAsk - bestBid) / mid
	baseQty := usdQuantity / mid

	avgExec, err := walkAsks(asks, baseQty)
	if err != nil {
		return Features{}, err
	}

	return Features{
		SpreadPct:            spreadPct,
		Imbalance:            imbalance(bids, asks),
		MidPrice:             mid,
		SimulatedSlippagePct: (avgExec - mid) / mid * 100,
		OrderQty:             baseQty,
		Volatility:           volatility,
		FeePct:               feePct,
	}, nil
}

// walkAsks simulates filling baseQty level by level in ascending price order
// and returns the average execution price. The final level fills partially.
// A book too shallow to cover baseQty is an error rather than an average
// over whatever was filled.
func walkAsks(asks []level, baseQty float64) (float64, error) {
	var filled, totalCost float64
	for _, lvl := range asks {
		if filled+lvl.size >= baseQty {
			totalCost += lvl.price * (baseQty - filled)
			filled = baseQty
			break
		}
		totalCost += lvl.price * lvl.size
		filled += lvl.size
	}
	if filled < baseQty {
		return 0, exception.ErrInsufficientLiquidity
	}
	return totalCost / baseQty, nil
}

func imbalance(bids, asks []level) float64 {
	depthBid := topDepth(bids)
	depthAsk := topDepth(asks)
	return (depthBid - depthAsk) / (depthBid + depthAsk + depthEpsilon)
}

func topDepth(levels []level) float64 {
	var sum float64
	for i := 0; i < len(levels) && i < depthLevels; i++ {
		sum += levels[i].size
	}
	return sum
}

func sortedLevels(src []Level, ascending bool) []level {
	out := make([]level, len(src))
	for i, lvl := range src {
		out[i] = level{
			price: lvl.Price.InexactFloat64(),
			size:  lvl.Size.InexactFloat64(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].price < out[j].price
		}
		return out[i].price > out[j].price
	})
	return out
}
