package app

import (
	"log"
	"time"

	"fundlens/database"
	"fundlens/realtime"
	"fundlens/websocket"
)

// PriceTicker drives the simulated market feed: on a fixed interval it
// applies one random-walk price tick and pushes the updated stock to the
// SSE broker and the WebSocket hub.
type PriceTicker struct {
	repo     *database.MarketRepository
	broker   *realtime.Broker
	wsHub    *websocket.Hub
	interval time.Duration
	stop     chan struct{}
}

// NewPriceTicker creates a new price ticker
func NewPriceTicker(repo *database.MarketRepository, broker *realtime.Broker, wsHub *websocket.Hub, interval time.Duration) *PriceTicker {
	return &PriceTicker{
		repo:     repo,
		broker:   broker,
		wsHub:    wsHub,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the tick loop until Stop is called
func (t *PriceTicker) Start() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			stock, err := t.repo.UpdateRandomStockPrice()
			if err != nil {
				log.Printf("⚠️  Price tick failed: %v", err)
				continue
			}
			t.broker.Broadcast(realtime.EventStockTick, stock)
			t.wsHub.Broadcast(realtime.EventStockTick, stock)
		}
	}
}

// Stop terminates the tick loop
func (t *PriceTicker) Stop() {
	close(t.stop)
}
