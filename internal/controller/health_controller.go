package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kecicz/activerecord-fb-adapter/internal/database"
)

const serviceName = "fb-schema-adapter"

type HealthResponse struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Service   string                      `json:"service"`
	Version   string                      `json:"version"`
	Database  *database.HealthCheckResult `json:"database"`
}

// HealthChecker is satisfied by database.HealthChecker
type HealthChecker interface {
	CheckHealth(ctx context.Context) *database.HealthCheckResult
}

type HealthController struct {
	checker HealthChecker
	version string
}

func NewHealthController(checker HealthChecker, version string) *HealthController {
	return &HealthController{
		checker: checker,
		version: version,
	}
}

func (hc *HealthController) HealthCheck(c *gin.Context) {
	result := hc.checker.CheckHealth(c.Request.Context())

	resp := HealthResponse{
		Status:    result.Status,
		Timestamp: time.Now(),
		Service:   serviceName,
		Version:   hc.version,
		Database:  result,
	}

	// Set HTTP status based on health
	statusCode := http.StatusOK
	if resp.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, resp)
}
