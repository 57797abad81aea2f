package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hakimelghazi/trading-core/internal/engine"
	"github.com/hakimelghazi/trading-core/internal/eventlog"
	"github.com/hakimelghazi/trading-core/internal/logging"
)

// Small local run against the embedded store. Run it twice: the second run
// rebuilds the book from the log before placing anything new.
func main() {
	ctx := context.Background()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store, err := eventlog.NewPebbleStore("data/demo-eventlog")
	if err != nil {
		logger.Fatal("open event log", zap.Error(err))
	}
	defer store.Close()

	eng, err := engine.Spawn(ctx, 64, store, logger)
	if err != nil {
		logger.Fatal("spawn trading engine", zap.Error(err))
	}

	// Maker: someone wants to SELL 1 @ 100
	sell := &engine.PlaceOrder{
		ID:       "11111111-1111-1111-1111-111111111111",
		UserID:   "aaaaaaaa-0000-0000-0000-000000000001",
		Market:   engine.MarketBTCUSD,
		Side:     engine.SideSell,
		Price:    100,
		Quantity: 1_00000000, // 1 BTC in sats
	}

	// Taker: someone wants to BUY 1 @ 100
	buy := &engine.PlaceOrder{
		ID:       "22222222-2222-2222-2222-222222222222",
		UserID:   "aaaaaaaa-0000-0000-0000-000000000002",
		Market:   engine.MarketBTCUSD,
		Side:     engine.SideBuy,
		Price:    100,
		Quantity: 1_00000000,
	}

	// submit maker first so it rests
	if _, err := eng.Place(ctx, sell); err != nil {
		logger.Warn("place sell", zap.Error(err))
	}
	res, err := eng.Place(ctx, buy)
	if err != nil {
		logger.Warn("place buy", zap.Error(err))
	} else {
		fmt.Printf("trades: %+v\n", res.Trades)
	}

	_ = eng.Shutdown(ctx)
	<-eng.Done()
}
