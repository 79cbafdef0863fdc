// Package feed subscribes to L2 order-book streams and hands full snapshots
// to the caller.
package feed

import (
	"context"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"github.com/yanun0323/pkg/ws"
)

const _gomarketBaseWsUrl = "wss://ws.gomarket-cpp.goquant.io/ws/l2-orderbook/okx"

// BookPub streams the full L2 order book for one perpetual-swap instrument.
// The endpoint pushes a fresh snapshot on every book change; there is no
// subscribe handshake.
type BookPub struct {
	wss *ws.WebSocket
}

func NewBookPub(ctx context.Context, instrument string) *BookPub {
	return &BookPub{
		wss: ws.New(ctx, _gomarketBaseWsUrl+"/"+instrument+"-USDT-SWAP"),
	}
}

func (repo *BookPub) Len() int {
	return repo.wss.Len()
}

func (repo *BookPub) Close() {
	repo.wss.Close()
}

func (repo *BookPub) StartWebsocket(ctx context.Context) error {
	if err := repo.wss.Start(ctx); err != nil {
		return errors.Wrap(err, "start wss")
	}

	return nil
}

type BookUpdate struct {
	Timestamp string      `json:"timestamp"`
	Exchange  string      `json:"exchange"`
	Symbol    string      `json:"symbol"`
	Asks      [][2]string `json:"asks"` // [0]price [1]quantity
	Bids      [][2]string `json:"bids"` // [0]price [1]quantity
}

func (repo *BookPub) ObserveBook(ctx context.Context, handler func(u BookUpdate)) (unsubscribe func()) {
	ch, cancel := repo.wss.Subscribe()

	go func() {
		defer cancel()
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}

				update, ok := ws.ReadMessage[BookUpdate](m)
				if !ok {
					logs.Warnf("unreadable book update, skipping")
					continue
				}
				if len(update.Asks) == 0 && len(update.Bids) == 0 {
					continue
				}

				handler(update)
			}
		}
	}()

	return cancel
}
