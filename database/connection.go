package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Pool wraps a raw database/sql connection used by the health endpoint for
// liveness pings and pool statistics, independent of the GORM session.
type Pool struct {
	conn *sql.DB
}

// PoolConfig holds raw pool configuration
type PoolConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewPool creates a new raw database connection pool
func NewPool(cfg PoolConfig) (*Pool, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Modest pool for a demo workload; the GORM session carries the
	// request traffic, this pool only serves health checks.
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(2 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")

	return &Pool{conn: conn}, nil
}

// Close closes the raw connection pool
func (p *Pool) Close() error {
	if p.conn != nil {
		log.Println("📡 Closing database connection pool...")
		return p.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (p *Pool) Ping() error {
	return p.conn.Ping()
}

// Stats returns the sql.DB pool statistics for the health endpoint
func (p *Pool) Stats() sql.DBStats {
	return p.conn.Stats()
}
