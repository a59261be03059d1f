package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"fundlens/overlap"
)

// How long a computed overlap stays valid in Redis. Short on purpose: the
// amc-bot can ingest new holdings at any time.
const overlapCacheTTL = 30 * time.Second

func (s *Server) handleGetFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.repo.GetFunds()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, funds)
}

// StockHolderInfo is one fund's position in a given stock.
type StockHolderInfo struct {
	FundName   string  `json:"fundName"`
	AMC        string  `json:"amc"`
	Percentage float64 `json:"percentage"`
}

// handleGetHoldingsForStock lists every fund holding the given stock,
// heaviest position first.
func (s *Server) handleGetHoldingsForStock(w http.ResponseWriter, r *http.Request) {
	stockID := r.PathValue("stockId")

	holdings, err := s.repo.GetHoldings()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	funds, err := s.repo.GetFunds()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	fundsByID := make(map[string]int, len(funds))
	for i, f := range funds {
		fundsByID[f.ID] = i
	}

	holders := []StockHolderInfo{}
	for _, h := range holdings {
		if h.StockID != stockID {
			continue
		}
		info := StockHolderInfo{
			FundName:   "Unknown Fund",
			AMC:        "Unknown AMC",
			Percentage: h.Percentage,
		}
		if i, ok := fundsByID[h.FundID]; ok {
			info.FundName = funds[i].Name
			info.AMC = funds[i].AMC
		}
		holders = append(holders, info)
	}

	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].Percentage > holders[j].Percentage
	})

	respondJSON(w, http.StatusOK, holders)
}

// handleCompareFunds computes the portfolio overlap between two funds.
// Identical or missing ids are rejected here; the engine itself stays
// permissive.
func (s *Server) handleCompareFunds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fund1ID := query.Get("fund1")
	fund2ID := query.Get("fund2")

	if fund1ID == "" || fund2ID == "" {
		respondWithError(w, http.StatusBadRequest, "fund1 and fund2 query parameters are required", nil)
		return
	}
	if fund1ID == fund2ID {
		respondWithError(w, http.StatusBadRequest, "cannot compare a fund with itself", nil)
		return
	}

	cacheKey := fmt.Sprintf("overlap:%s:%s", fund1ID, fund2ID)
	if s.redis != nil {
		var cached overlap.Result
		if err := s.redis.Get(r.Context(), cacheKey, &cached); err == nil {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	funds, err := s.repo.GetFunds()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	holdings, err := s.repo.GetHoldings()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	stocks, err := s.repo.GetStocks()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result, err := overlap.Compute(fund1ID, fund2ID, funds, holdings, stocks)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if s.redis != nil {
		_ = s.redis.Set(r.Context(), cacheKey, result, overlapCacheTTL)
	}

	respondJSON(w, http.StatusOK, result)
}
