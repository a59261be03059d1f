// Package overlap computes portfolio overlap between two mutual funds.
//
// The engine is a pure function over snapshots handed to it by the caller;
// it never touches the store and never mutates its inputs, which keeps it
// trivially testable against fixture data.
package overlap

import (
	"github.com/shopspring/decimal"

	"fundlens/database"
)

// OverlappingStock is one stock held by both compared funds, with each
// fund's respective weight.
type OverlappingStock struct {
	Stock       database.Stock `json:"stock"`
	Percentage1 float64        `json:"percentage1"`
	Percentage2 float64        `json:"percentage2"`
}

// Result is the outcome of comparing two funds. The totals sum only the
// weights of overlapping stocks, not the funds' full portfolios, and are
// rounded to two decimals.
type Result struct {
	OverlappingStocks       []OverlappingStock `json:"overlappingStocks"`
	TotalOverlapPercentage1 float64            `json:"totalOverlapPercentage1"`
	TotalOverlapPercentage2 float64            `json:"totalOverlapPercentage2"`
	Fund1Name               string             `json:"fund1Name"`
	Fund2Name               string             `json:"fund2Name"`
}

// Compute intersects the holdings of fund1ID and fund2ID over the given
// snapshots. It returns a NotFoundError when either fund id is unknown.
//
// Duplicate (fund, stock) rows within one fund's holdings resolve
// last-write-wins; the store rejects them on insert, so hitting that path
// means upstream data needs attention. A holding whose stock record is
// missing is dropped from both the overlap list and the totals.
//
// Comparing a fund to itself is not rejected here; that guard belongs to
// the caller.
func Compute(fund1ID, fund2ID string, funds []database.MutualFund, holdings []database.FundHolding, stocks []database.Stock) (*Result, error) {
	fund1 := findFund(funds, fund1ID)
	if fund1 == nil {
		return nil, database.NewNotFoundErrorWithID("fund", fund1ID)
	}
	fund2 := findFund(funds, fund2ID)
	if fund2 == nil {
		return nil, database.NewNotFoundErrorWithID("fund", fund2ID)
	}

	// Keep fund 1's holding order for a deterministic output sequence.
	var fund1Order []string
	fund1Weights := make(map[string]float64)
	fund2Weights := make(map[string]float64)
	for _, h := range holdings {
		if h.FundID == fund1ID {
			if _, seen := fund1Weights[h.StockID]; !seen {
				fund1Order = append(fund1Order, h.StockID)
			}
			fund1Weights[h.StockID] = h.Percentage
		}
		// Not an else branch: when fund1ID == fund2ID both maps fill.
		if h.FundID == fund2ID {
			fund2Weights[h.StockID] = h.Percentage
		}
	}

	stocksByID := make(map[string]database.Stock, len(stocks))
	for _, s := range stocks {
		stocksByID[s.ID] = s
	}

	overlapping := []OverlappingStock{}
	total1 := decimal.Zero
	total2 := decimal.Zero

	for _, stockID := range fund1Order {
		percentage2, held := fund2Weights[stockID]
		if !held {
			continue
		}
		stock, ok := stocksByID[stockID]
		if !ok {
			// Dangling holding reference: excluded from the list and
			// from both totals.
			continue
		}
		percentage1 := fund1Weights[stockID]
		overlapping = append(overlapping, OverlappingStock{
			Stock:       stock,
			Percentage1: percentage1,
			Percentage2: percentage2,
		})
		total1 = total1.Add(decimal.NewFromFloat(percentage1))
		total2 = total2.Add(decimal.NewFromFloat(percentage2))
	}

	return &Result{
		OverlappingStocks:       overlapping,
		TotalOverlapPercentage1: total1.Round(2).InexactFloat64(),
		TotalOverlapPercentage2: total2.Round(2).InexactFloat64(),
		Fund1Name:               fund1.Name,
		Fund2Name:               fund2.Name,
	}, nil
}

func findFund(funds []database.MutualFund, id string) *database.MutualFund {
	for i := range funds {
		if funds[i].ID == id {
			return &funds[i]
		}
	}
	return nil
}
