package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const engineVersionQuery = `SELECT rdb$get_context('SYSTEM', 'ENGINE_VERSION') FROM rdb$database`

// HealthChecker performs health checks on the Firebird connection
type HealthChecker struct {
	db   *sql.DB
	conn Connection
}

// NewHealthChecker creates a new HealthChecker instance
func NewHealthChecker(db *sql.DB, conn Connection) *HealthChecker {
	return &HealthChecker{db: db, conn: conn}
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status        string          `json:"status"`
	Message       string          `json:"message,omitempty"`
	EngineVersion string          `json:"engineVersion,omitempty"`
	Latency       time.Duration   `json:"latency"`
	CheckedAt     time.Time       `json:"checkedAt"`
	Pool          ConnectionStats `json:"pool"`
}

// CheckHealth pings the server and reads its engine version
func (hc *HealthChecker) CheckHealth(ctx context.Context) *HealthCheckResult {
	startTime := time.Now()

	result := &HealthCheckResult{
		CheckedAt: startTime,
		Pool:      GetStats(hc.db),
	}

	if err := hc.db.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Message = fmt.Sprintf("Connection test failed: %v", err)
		result.Latency = time.Since(startTime)
		return result
	}

	rows, err := hc.conn.Query(ctx, engineVersionQuery)
	result.Latency = time.Since(startTime)
	if err != nil {
		// Firebird 2.0 and older have no ENGINE_VERSION context variable
		result.Status = "healthy"
		result.Message = "Connection successful"
		return result
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		result.EngineVersion = AsString(rows[0][0])
	}
	result.Status = "healthy"
	result.Message = "Connection successful"
	return result
}
