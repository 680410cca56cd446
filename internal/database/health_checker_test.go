package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

func TestCheckHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true), sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectQuery(utils.SquishSQL(engineVersionQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"RDB$GET_CONTEXT"}).AddRow("3.0.10"))

	checker := NewHealthChecker(db, NewSQLConnection(db, NewFirebirdDialect(model.DefaultBooleanDomain)))
	result := checker.CheckHealth(context.Background())

	if result.Status != "healthy" {
		t.Errorf("Expected healthy, got %s (%s)", result.Status, result.Message)
	}
	if result.EngineVersion != "3.0.10" {
		t.Errorf("Expected engine version 3.0.10, got %s", result.EngineVersion)
	}
}

func TestCheckHealthOldServer(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true), sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectQuery(utils.SquishSQL(engineVersionQuery)).WillReturnError(errors.New("Context variable ENGINE_VERSION is not found"))

	checker := NewHealthChecker(db, NewSQLConnection(db, NewFirebirdDialect(model.DefaultBooleanDomain)))
	result := checker.CheckHealth(context.Background())

	if result.Status != "healthy" || result.EngineVersion != "" {
		t.Errorf("Expected healthy without version, got %+v", result)
	}
}

func TestCheckHealthPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	checker := NewHealthChecker(db, NewSQLConnection(db, NewFirebirdDialect(model.DefaultBooleanDomain)))
	result := checker.CheckHealth(context.Background())

	if result.Status != "unhealthy" {
		t.Errorf("Expected unhealthy, got %s", result.Status)
	}
}
