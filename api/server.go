package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"fundlens/auth"
	"fundlens/botrun"
	"fundlens/cache"
	"fundlens/database"
	"fundlens/notifications"
	"fundlens/realtime"
	"fundlens/websocket"
)

// Server handles HTTP API requests
type Server struct {
	repo      *database.MarketRepository
	pool      *database.Pool
	redis     *cache.RedisClient
	sessions  *auth.SessionManager
	runner    *botrun.Runner
	simulator *botrun.Simulator
	webhooks  *notifications.WebhookManager
	broker    *realtime.Broker
	wsHub     *websocket.Hub
}

// Options carries the collaborators the server routes requests to.
type Options struct {
	Repo      *database.MarketRepository
	Pool      *database.Pool
	Redis     *cache.RedisClient
	Sessions  *auth.SessionManager
	Runner    *botrun.Runner
	Simulator *botrun.Simulator
	Webhooks  *notifications.WebhookManager
	Broker    *realtime.Broker
	WSHub     *websocket.Hub
}

// NewServer creates a new API server instance
func NewServer(opts Options) *Server {
	return &Server{
		repo:      opts.Repo,
		pool:      opts.Pool,
		redis:     opts.Redis,
		sessions:  opts.Sessions,
		runner:    opts.Runner,
		simulator: opts.Simulator,
		webhooks:  opts.Webhooks,
		broker:    opts.Broker,
		wsHub:     opts.WSHub,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Market data
	mux.HandleFunc("GET /api/stocks", s.handleGetStocks)
	mux.HandleFunc("POST /api/stocks/update-random", s.handleUpdateRandomStock)
	mux.HandleFunc("GET /api/funds", s.handleGetFunds)
	mux.HandleFunc("GET /api/funds/holdings/{stockId}", s.handleGetHoldingsForStock)
	mux.HandleFunc("GET /api/funds/compare", s.handleCompareFunds)
	mux.HandleFunc("GET /api/indices", s.handleGetIndices)

	// Admin panel
	mux.HandleFunc("GET /api/bots/logs", s.handleGetBotLogs)
	mux.HandleFunc("POST /api/bots/{id}/run", s.handleRunBot)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/session", s.handleSessionCheck)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("POST /api/upload", s.handleUploadCSV)

	// Realtime feeds
	mux.Handle("GET /api/events", s.broker) // SSE endpoint
	mux.Handle("GET /ws", s.wsHub)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Serve Static Files (Public UI)
	fs := http.FileServer(http.Dir("./public"))
	mux.Handle("GET /", fs)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handlers are distributed across multiple files:
// - handlers_market.go: stocks, indices and the manual price tick
// - handlers_funds.go: fund listing, per-stock holdings and overlap comparison
// - handlers_bots.go: bot run log summary and bot execution
// - handlers_admin.go: login, session check, CSV upload, health check
