// Package database provides persistence for the fundlens market tracker.
//
// This package includes:
//   - Database connection management using GORM and PostgreSQL
//   - The MarketRepository covering stocks, mutual funds, fund holdings,
//     market indices and bot run logs
//   - Error taxonomy shared across the API layer (not found, validation,
//     wrapped database errors)
//
// All entities are plain relational rows; the only composite key is the
// fund holding (fund_id, stock_id), which also enforces the
// one-percentage-per-pair invariant at the schema level.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance for the repository.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
