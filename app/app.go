// Package app wires the fundlens service together: database, cache,
// realtime channels, the simulated price feed and the HTTP API.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fundlens/api"
	"fundlens/auth"
	"fundlens/botrun"
	"fundlens/cache"
	"fundlens/config"
	"fundlens/database"
	"fundlens/notifications"
	"fundlens/realtime"
	"fundlens/websocket"
)

// App represents the main application
type App struct {
	config   *config.Config
	db       *database.Database
	pool     *database.Pool
	redis    *cache.RedisClient
	repo     *database.MarketRepository
	sessions *auth.SessionManager
	webhooks *notifications.WebhookManager
	broker   *realtime.Broker
	wsHub    *websocket.Hub
	ticker   *PriceTicker
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// Raw pool for health checks
	pool, err := database.NewPool(database.PoolConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("database pool failed: %w", err)
	}
	a.pool = pool

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 3. Schema + seed
	a.repo = database.NewMarketRepository(a.db)
	if err := a.repo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 4. Sessions, webhooks, realtime channels
	a.sessions = auth.NewSessionManager(
		a.config.AdminUsername,
		a.config.AdminPassword,
		a.config.SessionTTL,
		a.redis,
	)
	a.webhooks = notifications.NewWebhookManager(a.config.WebhookURLs)

	a.broker = realtime.NewBroker()
	go a.broker.Run()

	a.wsHub = websocket.NewHub()

	// 5. Bot runner over the shared store
	runner := botrun.NewRunner(a.repo)
	simulator := botrun.NewSimulator(
		a.repo,
		a.config.Bots.FailureRate,
		a.config.Bots.MinDurationSeconds,
		a.config.Bots.MaxDurationSeconds,
	)

	// 6. Simulated price feed
	if a.config.Ticker.Enabled {
		a.ticker = NewPriceTicker(a.repo, a.broker, a.wsHub, a.config.Ticker.Interval)
		go a.ticker.Start()
		log.Printf("✅ Price ticker started (interval: %v)", a.config.Ticker.Interval)
	} else {
		log.Println("ℹ️  Price ticker DISABLED")
	}

	// 7. API server
	apiServer := api.NewServer(api.Options{
		Repo:      a.repo,
		Pool:      a.pool,
		Redis:     a.redis,
		Sessions:  a.sessions,
		Runner:    runner,
		Simulator: simulator,
		Webhooks:  a.webhooks,
		Broker:    a.broker,
		WSHub:     a.wsHub,
	})
	go func() {
		if err := apiServer.Start(a.config.ServerPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	// 8. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown()
}

// gracefulShutdown handles graceful shutdown with timeout
func (a *App) gracefulShutdown() error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt
	fmt.Println("\n🛑 Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	shutdownComplete := make(chan struct{})
	go func() {
		if a.ticker != nil {
			fmt.Println("📈 Stopping price ticker...")
			a.ticker.Stop()
		}

		fmt.Println("📡 Closing realtime channels...")
		a.broker.Stop()
		a.wsHub.Stop()

		if a.pool != nil {
			if err := a.pool.Close(); err != nil {
				log.Printf("Error closing database pool: %v", err)
			}
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			} else {
				fmt.Println("✅ Database connection closed")
			}
		}
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			} else {
				fmt.Println("✅ Redis connection closed")
			}
		}

		close(shutdownComplete)
	}()

	select {
	case <-shutdownComplete:
		fmt.Println("✅ Graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		fmt.Println("⚠️  Shutdown timeout exceeded, forcing exit")
		return fmt.Errorf("shutdown timeout")
	}
}
