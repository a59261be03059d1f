package api

import (
	"net/http"

	"fundlens/realtime"
)

func (s *Server) handleGetStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := s.repo.GetStocks()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stocks)
}

func (s *Server) handleGetIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := s.repo.GetIndices()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, indices)
}

// handleUpdateRandomStock applies one manual price tick and pushes the
// updated stock to both realtime channels, same as the background ticker.
func (s *Server) handleUpdateRandomStock(w http.ResponseWriter, r *http.Request) {
	stock, err := s.repo.UpdateRandomStockPrice()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.broker.Broadcast(realtime.EventStockTick, stock)
	s.wsHub.Broadcast(realtime.EventStockTick, stock)

	respondJSON(w, http.StatusOK, stock)
}
