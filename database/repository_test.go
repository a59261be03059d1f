package database

import (
	"errors"
	"math"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *MarketRepository {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&Stock{}, &MutualFund{}, &FundHolding{}, &Index{}, &BotLog{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewMarketRepository(&Database{db: gdb})
}

func TestCreateHoldingRejectsDuplicatePair(t *testing.T) {
	repo := newTestRepository(t)

	holding := &FundHolding{FundID: "mf1", StockID: "s1", Percentage: 5.0}
	if err := repo.CreateHolding(holding); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	dup := &FundHolding{FundID: "mf1", StockID: "s1", Percentage: 7.0}
	err := repo.CreateHolding(dup)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError for duplicate pair, got %v", err)
	}

	// The original percentage must survive the rejected insert.
	holdings, err := repo.GetHoldings()
	if err != nil {
		t.Fatalf("GetHoldings failed: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Percentage != 5.0 {
		t.Errorf("expected one holding at 5.0, got %v", holdings)
	}
}

func TestCreateHoldingRejectsBadPercentage(t *testing.T) {
	repo := newTestRepository(t)

	for _, pct := range []float64{-0.1, 100.5} {
		err := repo.CreateHolding(&FundHolding{FundID: "mf1", StockID: "s1", Percentage: pct})
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("percentage %v: expected ValidationError, got %v", pct, err)
		}
	}
}

func TestAddFundAndHoldingsIngestsOnce(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.AddFundAndHoldings(); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if err := repo.AddFundAndHoldings(); err != nil {
		t.Fatalf("repeat ingest should be a no-op, got %v", err)
	}

	funds, err := repo.GetFunds()
	if err != nil {
		t.Fatalf("GetFunds failed: %v", err)
	}
	if len(funds) != 1 {
		t.Fatalf("expected exactly one fund, got %d", len(funds))
	}

	holdings, err := repo.GetHoldings()
	if err != nil {
		t.Fatalf("GetHoldings failed: %v", err)
	}
	if len(holdings) != 2 {
		t.Errorf("expected two holdings, got %d", len(holdings))
	}
	for _, h := range holdings {
		if h.FundID != funds[0].ID {
			t.Errorf("holding %s/%s not attached to the ingested fund", h.FundID, h.StockID)
		}
	}
}

func TestUpdateAllIndicesStaysPositive(t *testing.T) {
	repo := newTestRepository(t)

	seed := []Index{
		{ID: "idx-low", Name: "Tiny Index", Value: 0.5},
		{ID: "idx-zero", Name: "Zero Index", Value: 0},
	}
	if err := repo.db.db.Create(&seed).Error; err != nil {
		t.Fatalf("seed indices: %v", err)
	}

	// The walk moves up to ±50 per run; enough runs to cross zero without
	// a floor.
	for i := 0; i < 50; i++ {
		if err := repo.UpdateAllIndices(); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	indices, err := repo.GetIndices()
	if err != nil {
		t.Fatalf("GetIndices failed: %v", err)
	}
	for _, idx := range indices {
		if idx.Value < 1 {
			t.Errorf("index %s fell below the floor: %v", idx.ID, idx.Value)
		}
		if math.IsInf(idx.PercentChange, 0) || math.IsNaN(idx.PercentChange) {
			t.Errorf("index %s has non-finite percent change: %v", idx.ID, idx.PercentChange)
		}
	}
}
