// Package fit is the offline side of the system: it builds training samples
// from recorded order-book snapshots and fits the per-instrument linear
// models the server loads at startup.
package fit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanun0323/errors"

	"main/internal/book"
)

// DefaultUSDQuantity is the notional used to label historical snapshots,
// matching the quantity the served models are calibrated against.
const DefaultUSDQuantity = 100

// Sample is one training row: the two fitted features plus the simulated
// slippage target from the liquidity walk.
type Sample struct {
	SpreadPct   float64
	Imbalance   float64
	SlippagePct float64
}

// Dataset extracts samples from every <prefix>response_*.json snapshot in
// dir. Snapshots too thin to extract (empty side, no ask depth) are skipped
// rather than failing the whole run; the skip count comes back for logging.
func Dataset(dir, prefix string, usdQuantity float64) ([]Sample, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "read snapshot dir %s", dir)
	}

	filePrefix := prefix + "response_"
	samples := make([]Sample, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, 0, errors.Wrapf(err, "read snapshot %s", name)
		}
		var snap book.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, 0, errors.Wrapf(err, "decode snapshot %s", name)
		}

		features, err := book.Extract(snap, usdQuantity, 0, 0)
		if err != nil {
			skipped++
			continue
		}
		samples = append(samples, Sample{
			SpreadPct:   features.SpreadPct,
			Imbalance:   features.Imbalance,
			SlippagePct: features.SimulatedSlippagePct,
		})
	}
	return samples, skipped, nil
}
