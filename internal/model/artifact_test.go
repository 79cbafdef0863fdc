package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLinearPredict(t *testing.T) {
	m := Linear{Intercept: 0.01, Coef: [2]float64{2.5, -0.5}}

	got := m.Predict(0.002, 0.4)
	want := 0.01 + 2.5*0.002 + -0.5*0.4
	if got != want {
		t.Fatalf("Predict: got %v want %v", got, want)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btc_slippage_model.json")
	fitted := Linear{Intercept: 0.0123, Coef: [2]float64{1.5, -0.25}}

	if err := SaveArtifact(path, NewArtifact("BTC", fitted)); err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}
	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}

	if loaded.Instrument != "BTC" {
		t.Fatalf("instrument: got %q", loaded.Instrument)
	}
	if got := loaded.Model(); got != fitted {
		t.Fatalf("model: got %+v want %+v", got, fitted)
	}
}

func TestLoadArtifactRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"wrong version":      `{"version":2,"instrument":"BTC","feature_cols":["spread_pct","imbalance"],"intercept":0,"coefficients":[1,2]}`,
		"empty instrument":   `{"version":1,"instrument":"","feature_cols":["spread_pct","imbalance"],"intercept":0,"coefficients":[1,2]}`,
		"swapped columns":    `{"version":1,"instrument":"BTC","feature_cols":["imbalance","spread_pct"],"intercept":0,"coefficients":[1,2]}`,
		"missing column":     `{"version":1,"instrument":"BTC","feature_cols":["spread_pct"],"intercept":0,"coefficients":[1,2]}`,
		"short coefficients": `{"version":1,"instrument":"BTC","feature_cols":["spread_pct","imbalance"],"intercept":0,"coefficients":[1]}`,
		"not an artifact":    `[1,2,3]`,
	}
	for name, payload := range cases {
		path := filepath.Join(t.TempDir(), "artifact.json")
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if _, err := LoadArtifact(path); err == nil {
			t.Fatalf("%s: LoadArtifact accepted invalid artifact", name)
		}
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	if _, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("LoadArtifact accepted a missing file")
	}
}
