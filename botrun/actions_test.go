package botrun

import (
	"errors"
	"testing"
)

type fakeSideEffectStore struct {
	stockCalls   int
	fundCalls    int
	indicesCalls int
	err          error
}

func (s *fakeSideEffectStore) AddOrUpdateStock() error   { s.stockCalls++; return s.err }
func (s *fakeSideEffectStore) AddFundAndHoldings() error { s.fundCalls++; return s.err }
func (s *fakeSideEffectStore) UpdateAllIndices() error   { s.indicesCalls++; return s.err }

func TestSimulatorAppliesSideEffectPerBot(t *testing.T) {
	tests := []struct {
		botID string
		check func(*fakeSideEffectStore) int
	}{
		{BotNSE, func(s *fakeSideEffectStore) int { return s.stockCalls }},
		{BotAMC, func(s *fakeSideEffectStore) int { return s.fundCalls }},
		{BotIndices, func(s *fakeSideEffectStore) int { return s.indicesCalls }},
	}

	for _, tt := range tests {
		t.Run(tt.botID, func(t *testing.T) {
			store := &fakeSideEffectStore{}
			sim := NewSimulator(store, 0, 0, 0) // never fails, no sleep

			result, err := sim.ActionFor(tt.botID)()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result == "" {
				t.Error("expected a run description")
			}
			if got := tt.check(store); got != 1 {
				t.Errorf("expected 1 side effect call, got %d", got)
			}
		})
	}
}

func TestSimulatorUnknownBotHasNoSideEffect(t *testing.T) {
	store := &fakeSideEffectStore{}
	sim := NewSimulator(store, 0, 0, 0)

	if _, err := sim.ActionFor("firecrawl-bot")(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.stockCalls+store.fundCalls+store.indicesCalls != 0 {
		t.Error("unknown bot should not touch the store")
	}
}

func TestSimulatorAlwaysFailing(t *testing.T) {
	store := &fakeSideEffectStore{}
	sim := NewSimulator(store, 1, 0, 0) // always fails

	_, err := sim.ActionFor(BotNSE)()
	if err == nil {
		t.Fatal("expected simulated failure")
	}
	if store.stockCalls != 0 {
		t.Error("failed run must not apply the side effect")
	}
}

func TestSimulatorStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("db down")
	store := &fakeSideEffectStore{err: storeErr}
	sim := NewSimulator(store, 0, 0, 0)

	_, err := sim.ActionFor(BotIndices)()
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
