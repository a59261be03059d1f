package database

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MarketRepository handles database operations for stocks, funds, holdings,
// indices and bot logs. It is the single store collaborator injected into
// the overlap engine, the bot runner and the API layer.
type MarketRepository struct {
	db *Database
}

// NewMarketRepository creates a new market repository
func NewMarketRepository(db *Database) *MarketRepository {
	return &MarketRepository{db: db}
}

// InitSchema performs auto-migration and seeds the demo dataset when the
// database is empty.
func (r *MarketRepository) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	if err := r.db.db.AutoMigrate(
		&Stock{},
		&MutualFund{},
		&FundHolding{},
		&Index{},
		&BotLog{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	var count int64
	if err := r.db.db.Model(&Stock{}).Count(&count).Error; err != nil {
		return WrapDBError("InitSchema", err)
	}
	if count == 0 {
		fmt.Println("🌱 Empty database detected, seeding demo dataset...")
		if err := r.Seed(); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	fmt.Println("✅ Database schema ready")
	return nil
}

// ============================================================================
// Snapshot reads
// ============================================================================

// GetStocks returns the full stock snapshot
func (r *MarketRepository) GetStocks() ([]Stock, error) {
	var stocks []Stock
	if err := r.db.db.Order("symbol").Find(&stocks).Error; err != nil {
		return nil, WrapDBError("GetStocks", err)
	}
	return stocks, nil
}

// GetFunds returns the full mutual fund snapshot
func (r *MarketRepository) GetFunds() ([]MutualFund, error) {
	var funds []MutualFund
	if err := r.db.db.Order("name").Find(&funds).Error; err != nil {
		return nil, WrapDBError("GetFunds", err)
	}
	return funds, nil
}

// GetHoldings returns the full fund holding snapshot
func (r *MarketRepository) GetHoldings() ([]FundHolding, error) {
	var holdings []FundHolding
	if err := r.db.db.Order("fund_id, percentage DESC").Find(&holdings).Error; err != nil {
		return nil, WrapDBError("GetHoldings", err)
	}
	return holdings, nil
}

// GetIndices returns the full market index snapshot
func (r *MarketRepository) GetIndices() ([]Index, error) {
	var indices []Index
	if err := r.db.db.Order("id").Find(&indices).Error; err != nil {
		return nil, WrapDBError("GetIndices", err)
	}
	return indices, nil
}

// GetLogs returns all bot run logs, newest first
func (r *MarketRepository) GetLogs() ([]BotLog, error) {
	var logs []BotLog
	if err := r.db.db.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, WrapDBError("GetLogs", err)
	}
	return logs, nil
}

// ============================================================================
// Writes
// ============================================================================

// AppendLog persists one bot run log. The caller supplies a unique id.
func (r *MarketRepository) AppendLog(log *BotLog) error {
	if log.ID == "" {
		return NewValidationError("id", "bot log id is required")
	}
	if err := r.db.db.Create(log).Error; err != nil {
		return WrapDBError("AppendLog", err)
	}
	return nil
}

// CreateHolding inserts a fund holding. A duplicate (fund_id, stock_id)
// pair is rejected rather than merged; each pair carries exactly one
// percentage.
func (r *MarketRepository) CreateHolding(holding *FundHolding) error {
	return r.db.db.Transaction(func(tx *gorm.DB) error {
		return createHolding(tx, holding)
	})
}

// createHolding is the single insert path for holdings; every writer goes
// through it so a duplicate pair surfaces as a ValidationError instead of
// a driver-level key conflict.
func createHolding(tx *gorm.DB, holding *FundHolding) error {
	if holding.Percentage < 0 || holding.Percentage > 100 {
		return NewValidationErrorWithValue("percentage", "must be between 0 and 100", holding.Percentage)
	}

	var existing FundHolding
	err := tx.Where("fund_id = ? AND stock_id = ?", holding.FundID, holding.StockID).
		First(&existing).Error
	if err == nil {
		return NewValidationErrorWithValue("stock_id", "holding already exists for this fund",
			fmt.Sprintf("%s/%s", holding.FundID, holding.StockID))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return WrapDBError("CreateHolding", err)
	}
	if err := tx.Create(holding).Error; err != nil {
		return WrapDBError("CreateHolding", err)
	}
	return nil
}

// ============================================================================
// Bot side effects (simulated scrape results)
// ============================================================================

// AddOrUpdateStock is the nse-bot side effect: inserts the NEWCO stock the
// first time and nudges one random stock price by up to ±5%.
func (r *MarketRepository) AddOrUpdateStock() error {
	var existing Stock
	err := r.db.db.Where("symbol = ?", "NEWCO").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		newStock := Stock{
			ID:        fmt.Sprintf("s%d", time.Now().UnixMilli()),
			Symbol:    "NEWCO",
			Name:      "Newly Scraped Co",
			Price:     500.00,
			MarketCap: 100000,
			Sector:    "Technology",
		}
		if err := r.db.db.Create(&newStock).Error; err != nil {
			return WrapDBError("AddOrUpdateStock", err)
		}
	} else if err != nil {
		return WrapDBError("AddOrUpdateStock", err)
	}

	stocks, err := r.GetStocks()
	if err != nil {
		return err
	}
	if len(stocks) == 0 {
		return nil
	}

	stock := stocks[rand.Intn(len(stocks))]
	stock.Price = round2(stock.Price * (1 + (rand.Float64()-0.5)/10))
	if err := r.db.db.Save(&stock).Error; err != nil {
		return WrapDBError("AddOrUpdateStock", err)
	}
	return nil
}

// AddFundAndHoldings is the amc-bot side effect: ingests the New Vision
// Growth Fund with two holdings the first time, otherwise a no-op.
func (r *MarketRepository) AddFundAndHoldings() error {
	var existing MutualFund
	err := r.db.db.Where("name = ?", "New Vision Growth Fund").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return WrapDBError("AddFundAndHoldings", err)
	}

	fund := MutualFund{
		ID:       fmt.Sprintf("mf%d", time.Now().UnixMilli()),
		Name:     "New Vision Growth Fund",
		AMC:      "New AMC",
		Category: "Flexi Cap",
	}
	return r.db.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fund).Error; err != nil {
			return WrapDBError("AddFundAndHoldings", err)
		}
		holdings := []FundHolding{
			{FundID: fund.ID, StockID: "s1", Percentage: 8.0},
			{FundID: fund.ID, StockID: "s2", Percentage: 7.5},
		}
		for i := range holdings {
			if err := createHolding(tx, &holdings[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateAllIndices is the indices-bot side effect: applies a random walk
// to every index. PercentChange is computed against the value before it
// is overwritten. The walk is floored at 1 so an index can never reach
// zero and poison the next run's percent calculation.
func (r *MarketRepository) UpdateAllIndices() error {
	indices, err := r.GetIndices()
	if err != nil {
		return err
	}

	for i := range indices {
		prev := indices[i].Value
		change := (rand.Float64() - 0.5) * 100
		next := prev + change
		if next < 1 {
			next = 1
			change = next - prev
		}
		indices[i].Value = round2(next)
		indices[i].Change = round2(change)
		if prev != 0 {
			indices[i].PercentChange = round2((change / prev) * 100)
		} else {
			indices[i].PercentChange = 0
		}
	}

	if len(indices) == 0 {
		return nil
	}
	if err := r.db.db.Save(&indices).Error; err != nil {
		return WrapDBError("UpdateAllIndices", err)
	}
	return nil
}

// UpdateRandomStockPrice applies one simulated price tick: picks a random
// stock, moves its price by up to ±2.5%, records which way it moved and
// clears the direction hint on every other stock so only the updated row
// flashes in the UI.
func (r *MarketRepository) UpdateRandomStockPrice() (*Stock, error) {
	stocks, err := r.GetStocks()
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return nil, NewNotFoundErrorWithID("stock", "any")
	}

	stock := stocks[rand.Intn(len(stocks))]
	oldPrice := stock.Price
	newPrice := round2(oldPrice * (1 + (rand.Float64()-0.5)/20))

	stock.Price = newPrice
	switch {
	case newPrice > oldPrice:
		stock.PriceChangeDirection = DirectionUp
	case newPrice < oldPrice:
		stock.PriceChangeDirection = DirectionDown
	default:
		stock.PriceChangeDirection = DirectionNone
	}

	err = r.db.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Stock{}).Where("id <> ?", stock.ID).
			Update("price_change_direction", "").Error; err != nil {
			return err
		}
		return tx.Save(&stock).Error
	})
	if err != nil {
		return nil, WrapDBError("UpdateRandomStockPrice", err)
	}
	return &stock, nil
}

// TableCounts returns per-table row counts for the health endpoint
func (r *MarketRepository) TableCounts() (map[string]int64, error) {
	counts := make(map[string]int64)
	for name, model := range map[string]interface{}{
		"stocks":       &Stock{},
		"mutual_funds": &MutualFund{},
		"holdings":     &FundHolding{},
		"indices":      &Index{},
		"bot_logs":     &BotLog{},
	} {
		var c int64
		if err := r.db.db.Model(model).Count(&c).Error; err != nil {
			return nil, WrapDBError("TableCounts", err)
		}
		counts[name] = c
	}
	return counts, nil
}

// round2 rounds to 2 decimal places, half away from zero
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
