package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/book"
	"main/internal/feed"
	"main/internal/rpc"
	"main/pkg/socket"
)

// allowedInstruments mirrors the instruments the server ships models for.
var allowedInstruments = []string{"BTC", "ETH"}

func main() {
	if err := run(); err != nil {
		log.Printf("feed: %v", err)
		os.Exit(1)
	}
}

func run() error {
	serverAddr := flag.String("server", "127.0.0.1:9000", "Slippage server address")
	instrument := flag.String("instrument", "BTC", "Instrument symbol")
	orderSize := flag.Float64("order-sz", 100, "Order notional in USD")
	volatility := flag.Float64("volatility", 0.015, "Volatility passthrough")
	feePct := flag.Float64("fee", 0.05, "Fee percent passthrough")
	interval := flag.Duration("interval", time.Second, "Minimum delay between quote requests")
	flag.Parse()

	if !slices.Contains(allowedInstruments, *instrument) {
		return fmt.Errorf("unsupported instrument: %s", *instrument)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialer, err := socket.NewClient(socket.NetworkTCP, *serverAddr)
	if err != nil {
		return err
	}
	conn, err := dialer.Dial()
	if err != nil {
		return err
	}
	client := rpc.NewClient(conn)
	defer client.Close()

	pub := feed.NewBookPub(ctx, *instrument)
	if err := pub.StartWebsocket(ctx); err != nil {
		return err
	}
	defer pub.Close()

	logs.Infof("streaming %s book, quoting via %s", *instrument, *serverAddr)

	var (
		mu   sync.Mutex
		last time.Time
	)
	cancel := pub.ObserveBook(ctx, func(u feed.BookUpdate) {
		mu.Lock()
		defer mu.Unlock()
		if time.Since(last) < *interval {
			return
		}
		last = time.Now()

		if err := requestQuote(client, *instrument, u, *orderSize, *volatility, *feePct); err != nil {
			logs.Errorf("quote request failed: %v", err)
		}
	})
	defer cancel()

	<-ctx.Done()
	return nil
}

func requestQuote(client *rpc.Client, instrument string, u feed.BookUpdate, orderSize, volatility, feePct float64) error {
	asks, err := book.LevelsFromStrings(u.Asks)
	if err != nil {
		return err
	}
	bids, err := book.LevelsFromStrings(u.Bids)
	if err != nil {
		return err
	}

	params := rpc.SlippageParams{
		Instrument:    instrument,
		Asks:          asks,
		Bids:          bids,
		OrderSize:     orderSize,
		VolatilityPct: volatility,
		FeePct:        feePct,
	}
	var result struct {
		PredictedSlippagePct float64 `json:"predicted_slippage_pct"`
		SpreadPct            float64 `json:"spread_pct"`
		MidPrice             float64 `json:"mid_price"`
	}
	if err := client.Call(rpc.MethodExpectedSlippage, params, &result); err != nil {
		return err
	}

	logs.Infof("[%s] mid=%.4f spread_pct=%.6f expected_slippage_pct=%.6f",
		instrument, result.MidPrice, result.SpreadPct, result.PredictedSlippagePct)
	return nil
}
