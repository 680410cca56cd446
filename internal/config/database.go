package config

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/database"
	"github.com/kecicz/activerecord-fb-adapter/internal/database/drivers/traditional"
)

// InitDatabase opens and verifies the Firebird connection pool
func InitDatabase(cfg *Config, logger logrus.FieldLogger) (*sql.DB, error) {
	driver := traditional.NewFirebirdDriver()
	if err := driver.ValidateConfig(&cfg.Firebird); err != nil {
		return nil, err
	}

	db, err := driver.Open(driver.BuildDSN(&cfg.Firebird))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database.ConfigureConnectionPool(db, &cfg.Firebird)

	// Test the connection
	if err := driver.TestConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Firebird.Host,
		"database": cfg.Firebird.Database,
	}).Info("Database connection established successfully")
	return db, nil
}
