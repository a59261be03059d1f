package database

import (
	"time"

	"gorm.io/gorm"
)

// Seed loads the demo dataset: ten NSE large caps, four mutual funds with
// five holdings each, four indices and a couple of historical bot runs so
// the admin panel is populated on first boot.
func (r *MarketRepository) Seed() error {
	now := time.Now()

	stocks := []Stock{
		{ID: "s1", Symbol: "RELIANCE", Name: "Reliance Industries", Price: 2850.50, MarketCap: 1928000, Sector: "Energy"},
		{ID: "s2", Symbol: "TCS", Name: "Tata Consultancy Services", Price: 3850.75, MarketCap: 1395000, Sector: "Technology"},
		{ID: "s3", Symbol: "HDFCBANK", Name: "HDFC Bank", Price: 1680.20, MarketCap: 1280000, Sector: "Finance"},
		{ID: "s4", Symbol: "INFY", Name: "Infosys", Price: 1650.00, MarketCap: 685000, Sector: "Technology"},
		{ID: "s5", Symbol: "ICICIBANK", Name: "ICICI Bank", Price: 1150.45, MarketCap: 805000, Sector: "Finance"},
		{ID: "s6", Symbol: "BHARTIARTL", Name: "Bharti Airtel", Price: 1380.10, MarketCap: 780000, Sector: "Telecommunication"},
		{ID: "s7", Symbol: "SBIN", Name: "State Bank of India", Price: 835.60, MarketCap: 745000, Sector: "Finance"},
		{ID: "s8", Symbol: "LICI", Name: "Life Insurance Corporation", Price: 980.00, MarketCap: 620000, Sector: "Finance"},
		{ID: "s9", Symbol: "ITC", Name: "ITC Limited", Price: 430.25, MarketCap: 537000, Sector: "Consumer Goods"},
		{ID: "s10", Symbol: "HINDUNILVR", Name: "Hindustan Unilever", Price: 2550.80, MarketCap: 600000, Sector: "Consumer Goods"},
	}

	funds := []MutualFund{
		{ID: "mf1", Name: "SBI Bluechip Fund", AMC: "SBI", Category: "Large Cap"},
		{ID: "mf2", Name: "HDFC Flexi Cap Fund", AMC: "HDFC", Category: "Flexi Cap"},
		{ID: "mf3", Name: "ICICI Pru Bluechip Fund", AMC: "ICICI", Category: "Large Cap"},
		{ID: "mf4", Name: "Axis Long Term Equity", AMC: "Axis", Category: "ELSS"},
	}

	holdings := []FundHolding{
		// SBI Bluechip Fund
		{FundID: "mf1", StockID: "s3", Percentage: 9.5},
		{FundID: "mf1", StockID: "s5", Percentage: 8.2},
		{FundID: "mf1", StockID: "s1", Percentage: 7.1},
		{FundID: "mf1", StockID: "s4", Percentage: 6.5},
		{FundID: "mf1", StockID: "s7", Percentage: 4.3},

		// HDFC Flexi Cap Fund
		{FundID: "mf2", StockID: "s3", Percentage: 8.8},
		{FundID: "mf2", StockID: "s5", Percentage: 7.9},
		{FundID: "mf2", StockID: "s7", Percentage: 6.2},
		{FundID: "mf2", StockID: "s2", Percentage: 5.5},
		{FundID: "mf2", StockID: "s6", Percentage: 5.1},

		// ICICI Pru Bluechip Fund
		{FundID: "mf3", StockID: "s5", Percentage: 10.1},
		{FundID: "mf3", StockID: "s1", Percentage: 9.2},
		{FundID: "mf3", StockID: "s4", Percentage: 8.5},
		{FundID: "mf3", StockID: "s2", Percentage: 7.3},
		{FundID: "mf3", StockID: "s6", Percentage: 4.8},

		// Axis Long Term Equity
		{FundID: "mf4", StockID: "s2", Percentage: 9.8},
		{FundID: "mf4", StockID: "s3", Percentage: 8.1},
		{FundID: "mf4", StockID: "s4", Percentage: 7.6},
		{FundID: "mf4", StockID: "s10", Percentage: 6.2},
		{FundID: "mf4", StockID: "s9", Percentage: 5.4},
	}

	indices := []Index{
		{ID: "idx1", Name: "NIFTY 50", Value: 23501.10, Change: 183.45, PercentChange: 0.79},
		{ID: "idx2", Name: "SENSEX", Value: 77209.90, Change: -270.97, PercentChange: -0.35},
		{ID: "idx3", Name: "NIFTY BANK", Value: 50002.00, Change: 450.80, PercentChange: 0.91},
		{ID: "idx4", Name: "NIFTY IT", Value: 35467.55, Change: -120.10, PercentChange: -0.34},
	}

	logs := []BotLog{
		{
			ID:            "log1",
			BotName:       "NSE Stock Information Bot",
			Status:        StatusSuccess,
			ExecutionTime: 125.5,
			Timestamp:     now.Add(-24 * time.Hour),
		},
		{
			ID:            "log2",
			BotName:       "AMC Portfolio Disclosure Bot",
			Status:        StatusSuccess,
			ExecutionTime: 3600.2,
			Timestamp:     now.Add(-48 * time.Hour),
		},
		{
			ID:            "log3",
			BotName:       "Indices Data Bot",
			Status:        StatusFailure,
			ExecutionTime: 30.1,
			Timestamp:     now.Add(-3 * time.Hour),
			Result:        "Connection timeout while fetching index data.",
		},
	}

	return r.db.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&stocks).Error; err != nil {
			return WrapDBError("Seed stocks", err)
		}
		if err := tx.Create(&funds).Error; err != nil {
			return WrapDBError("Seed funds", err)
		}
		if err := tx.Create(&holdings).Error; err != nil {
			return WrapDBError("Seed holdings", err)
		}
		if err := tx.Create(&indices).Error; err != nil {
			return WrapDBError("Seed indices", err)
		}
		if err := tx.Create(&logs).Error; err != nil {
			return WrapDBError("Seed logs", err)
		}
		return nil
	})
}
