package database

import (
	"database/sql"
	"time"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

// ConnectionStats represents statistics for the Firebird pool
type ConnectionStats struct {
	OpenConnections   int           `json:"openConnections"`
	InUse             int           `json:"inUse"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"waitCount"`
	WaitDuration      time.Duration `json:"waitDuration"`
	MaxIdleClosed     int64         `json:"maxIdleClosed"`
	MaxLifetimeClosed int64         `json:"maxLifetimeClosed"`
}

// ConfigureConnectionPool configures the connection pool settings
func ConfigureConnectionPool(db *sql.DB, config *model.DataSourceConfig) {
	// Set connection pool size
	maxOpenConns := config.MaxPoolSize
	if maxOpenConns <= 0 {
		maxOpenConns = 10 // Default
	}
	db.SetMaxOpenConns(maxOpenConns)

	// Set maximum idle connections
	maxIdleConns := maxOpenConns / 2
	if maxIdleConns < 2 {
		maxIdleConns = 2
	}
	db.SetMaxIdleConns(maxIdleConns)

	// Set connection lifetime
	maxLifetime := time.Duration(config.MaxLifetime) * time.Second
	if maxLifetime <= 0 {
		maxLifetime = 30 * time.Minute // Default
	}
	db.SetConnMaxLifetime(maxLifetime)

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second // Default
	}
	db.SetConnMaxIdleTime(timeout)
}

// GetStats returns pool statistics
func GetStats(db *sql.DB) ConnectionStats {
	dbStats := db.Stats()
	return ConnectionStats{
		OpenConnections:   dbStats.OpenConnections,
		InUse:             dbStats.InUse,
		Idle:              dbStats.Idle,
		WaitCount:         dbStats.WaitCount,
		WaitDuration:      dbStats.WaitDuration,
		MaxIdleClosed:     dbStats.MaxIdleClosed,
		MaxLifetimeClosed: dbStats.MaxLifetimeClosed,
	}
}
