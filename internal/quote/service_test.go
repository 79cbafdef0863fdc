package quote

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"main/internal/book"
	"main/internal/model"
	"main/pkg/exception"
)

type recordingModel struct {
	out       float64
	spreadPct float64
	imbalance float64
}

func (m *recordingModel) Predict(spreadPct, imbalance float64) float64 {
	m.spreadPct = spreadPct
	m.imbalance = imbalance
	return m.out
}

func lvl(price, size float64) book.Level {
	return book.Level{
		Price: decimal.NewFromFloat(price),
		Size:  decimal.NewFromFloat(size),
	}
}

func testSnapshot() book.Snapshot {
	return book.Snapshot{
		Asks: []book.Level{lvl(105.2, 1.0), lvl(105.3, 1.5)},
		Bids: []book.Level{lvl(105.0, 1.0), lvl(104.9, 1.5)},
	}
}

func TestPredictUnknownInstrument(t *testing.T) {
	s := NewService(model.NewRegistry())

	_, err := s.Predict("DOGE", testSnapshot(), 100, 0, 0)
	if !errors.Is(err, exception.ErrUnknownInstrument) {
		t.Fatalf("got %v want ErrUnknownInstrument", err)
	}
}

func TestPredictFeedsFeaturesInFittedOrder(t *testing.T) {
	registry := model.NewRegistry()
	stub := &recordingModel{out: 0.2}
	if err := registry.Add("BTC", stub); err != nil {
		t.Fatalf("Add: %v", err)
	}

	q, err := NewService(registry).Predict("BTC", testSnapshot(), 100, 0, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	features, err := book.Extract(testSnapshot(), 100, 0, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if stub.spreadPct != features.SpreadPct || stub.imbalance != features.Imbalance {
		t.Fatalf("model saw (%v, %v), want (%v, %v)",
			stub.spreadPct, stub.imbalance, features.SpreadPct, features.Imbalance)
	}
	if q.SpreadPct != features.SpreadPct || q.MidPrice != features.MidPrice {
		t.Fatalf("quote echoes wrong features: %+v", q)
	}
}

func TestPredictReturnsMagnitude(t *testing.T) {
	registry := model.NewRegistry()
	if err := registry.Add("BTC", &recordingModel{out: -0.35}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	q, err := NewService(registry).Predict("BTC", testSnapshot(), 100, 0, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if q.PredictedSlippagePct != 0.35 {
		t.Fatalf("predicted slippage: got %v want 0.35", q.PredictedSlippagePct)
	}
}

func TestPredictPropagatesExtractionErrors(t *testing.T) {
	registry := model.NewRegistry()
	if err := registry.Add("BTC", &recordingModel{}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s := NewService(registry)

	if _, err := s.Predict("BTC", book.Snapshot{}, 100, 0, 0); !errors.Is(err, exception.ErrEmptyBookSide) {
		t.Fatalf("empty book: got %v", err)
	}
	if _, err := s.Predict("BTC", testSnapshot(), 0, 0, 0); !errors.Is(err, exception.ErrInvalidOrderSize) {
		t.Fatalf("zero size: got %v", err)
	}
}
