package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"main/internal/fit"
	"main/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Printf("trainer: %v", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data", "./data", "Directory with recorded snapshot JSON files")
	outDir := flag.String("out", ".", "Directory for fitted model artifacts")
	instrumentsFlag := flag.String("instruments", "BTC,ETH", "Comma-separated instrument symbols")
	usdQuantity := flag.Float64("order-sz", fit.DefaultUSDQuantity, "USD notional used to label snapshots")
	flag.Parse()

	instruments := splitInstruments(*instrumentsFlag)
	if len(instruments) == 0 {
		return fmt.Errorf("no instruments given")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	for _, instrument := range instruments {
		if err := train(*dataDir, *outDir, instrument, *usdQuantity); err != nil {
			return fmt.Errorf("train %s: %w", instrument, err)
		}
	}
	return nil
}

func train(dataDir, outDir, instrument string, usdQuantity float64) error {
	prefix := strings.ToLower(instrument) + "_"
	samples, skipped, err := fit.Dataset(dataDir, prefix, usdQuantity)
	if err != nil {
		return err
	}
	log.Printf("[%s] dataset: %d samples, %d skipped", instrument, len(samples), skipped)

	fitted, err := fit.Fit(samples)
	if err != nil {
		return err
	}
	log.Printf("[%s] fitted: intercept=%.10f spread=%.10f imbalance=%.10f",
		instrument, fitted.Intercept, fitted.Coef[0], fitted.Coef[1])

	path := filepath.Join(outDir, prefix+"slippage_model.json")
	if err := model.SaveArtifact(path, model.NewArtifact(instrument, fitted)); err != nil {
		return err
	}
	log.Printf("[%s] artifact written: %s", instrument, path)
	return nil
}

func splitInstruments(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
