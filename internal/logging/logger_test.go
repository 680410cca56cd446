package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/kecicz/activerecord-fb-adapter/internal/config"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("table", "users").Info("created")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["table"] != "users" || line["msg"] != "created" {
		t.Errorf("Unexpected log line %v", line)
	}
}

func TestNewTextLoggerFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LoggingConfig{Level: "loud", Format: "text"}, &buf)

	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level fallback, got %s", logger.GetLevel())
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("Expected text output, got %q", buf.String())
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("correlation_id", "abc")
		c.Next()
	})
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a request log entry")
	}
	if entry.Data["status"] != http.StatusOK || entry.Data["correlation_id"] != "abc" {
		t.Errorf("Unexpected fields %v", entry.Data)
	}
}
