package database

import "time"

// Bot log status values. "In Progress" is the transient state shown in the
// admin panel while a run is still executing; only "Success" rows feed the
// per-bot last-updated map.
const (
	StatusSuccess    = "Success"
	StatusFailure    = "Failure"
	StatusInProgress = "In Progress"
)

// Price change direction hints for the UI flash animation. Overwritten on
// every tick; only the most recently updated stock carries a direction.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = "none"
)

// Stock represents a listed equity tracked by the application.
//
// Key Fields:
//   - Symbol/Name/Sector: immutable descriptive fields from the data load
//   - Price: mutated by price-tick operations only
//   - PriceChangeDirection: transient UI hint, cleared on every tick
type Stock struct {
	ID                   string  `gorm:"primaryKey;size:32" json:"id"`
	Symbol               string  `gorm:"size:20;uniqueIndex;not null" json:"symbol"`
	Name                 string  `gorm:"size:100;not null" json:"name"`
	Price                float64 `gorm:"type:decimal(15,2);not null" json:"price"`
	MarketCap            float64 `gorm:"type:decimal(20,2);not null" json:"market_cap"`
	Sector               string  `gorm:"size:50" json:"sector"`
	PriceChangeDirection string  `gorm:"size:5" json:"price_change_direction,omitempty"` // up, down, none
}

// TableName specifies the table name for Stock
func (Stock) TableName() string {
	return "stocks"
}

// MutualFund represents a mutual fund scheme. Immutable after creation.
type MutualFund struct {
	ID       string `gorm:"primaryKey;size:32" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	AMC      string `gorm:"size:50;not null" json:"amc"` // Asset Management Company
	Category string `gorm:"size:50" json:"category"`
}

// TableName specifies the table name for MutualFund
func (MutualFund) TableName() string {
	return "mutual_funds"
}

// FundHolding is the many-to-many join between a fund and a stock, carrying
// the portfolio weight. The composite primary key guarantees at most one
// percentage per (fund, stock) pair; a duplicate insert is rejected.
type FundHolding struct {
	FundID     string  `gorm:"primaryKey;size:32" json:"fund_id"`
	StockID    string  `gorm:"primaryKey;size:32" json:"stock_id"`
	Percentage float64 `gorm:"type:decimal(5,2);not null" json:"percentage"` // 0..100
}

// TableName specifies the table name for FundHolding
func (FundHolding) TableName() string {
	return "fund_holdings"
}

// Index represents a market index snapshot.
//
// PercentChange is computed against the value before the refresh
// overwrites it (change / previous value * 100).
type Index struct {
	ID            string  `gorm:"primaryKey;size:32" json:"id"`
	Name          string  `gorm:"size:50;not null" json:"name"`
	Value         float64 `gorm:"type:decimal(15,2);not null" json:"value"`
	Change        float64 `gorm:"type:decimal(15,2)" json:"change"`
	PercentChange float64 `gorm:"type:decimal(10,2)" json:"percent_change"`
}

// TableName specifies the table name for Index
func (Index) TableName() string {
	return "market_indices"
}

// BotLog is one append-only record of a bot execution.
//
// BotName is free text, not a foreign key; the admin panel groups runs by
// a normalized form of it. ExecutionTime is wall-clock seconds rounded to
// two decimals. Result carries either the run summary or the failure
// message verbatim.
type BotLog struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	BotName       string    `gorm:"size:100;index;not null" json:"botName"`
	Status        string    `gorm:"size:20;not null" json:"status"` // Success, Failure, In Progress
	ExecutionTime float64   `gorm:"type:decimal(10,2);not null" json:"executionTime"`
	Timestamp     time.Time `gorm:"index;not null" json:"timestamp"`
	Result        string    `gorm:"type:text" json:"result,omitempty"`
}

// TableName specifies the table name for BotLog
func (BotLog) TableName() string {
	return "bot_logs"
}
