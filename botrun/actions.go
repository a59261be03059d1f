package botrun

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Bot ids wired to store side effects. Any other id runs as a pure
// simulation with no data mutation.
const (
	BotNSE     = "nse-bot"
	BotAMC     = "amc-bot"
	BotIndices = "indices-bot"
)

// SideEffectStore exposes the opaque data mutations the concrete bots
// apply when a simulated run succeeds.
type SideEffectStore interface {
	AddOrUpdateStock() error
	AddFundAndHoldings() error
	UpdateAllIndices() error
}

// Simulator builds actions for the demo bots. A run sleeps for a random
// duration within the configured bounds and fails with the configured
// probability; only a successful run touches the store.
type Simulator struct {
	store       SideEffectStore
	failureRate float64
	minSeconds  float64
	maxSeconds  float64
}

// NewSimulator creates a bot action simulator
func NewSimulator(store SideEffectStore, failureRate, minSeconds, maxSeconds float64) *Simulator {
	if maxSeconds < minSeconds {
		maxSeconds = minSeconds
	}
	return &Simulator{
		store:       store,
		failureRate: failureRate,
		minSeconds:  minSeconds,
		maxSeconds:  maxSeconds,
	}
}

// ActionFor returns the action for the given bot id.
func (s *Simulator) ActionFor(botID string) Action {
	return func() (string, error) {
		seconds := s.minSeconds + rand.Float64()*(s.maxSeconds-s.minSeconds)
		time.Sleep(time.Duration(seconds * float64(time.Second)))

		if rand.Float64() < s.failureRate {
			return "", errors.New("Simulated run failed due to a random error.")
		}

		var err error
		switch botID {
		case BotNSE:
			err = s.store.AddOrUpdateStock()
		case BotAMC:
			err = s.store.AddFundAndHoldings()
		case BotIndices:
			err = s.store.UpdateAllIndices()
		}
		if err != nil {
			return "", fmt.Errorf("scrape ingest failed: %w", err)
		}

		return "Simulated run completed successfully.", nil
	}
}
