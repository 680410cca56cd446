package drivers

import (
	"database/sql"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

// DriverCategory categorizes drivers by their type
type DriverCategory string

const (
	CategoryRelational DriverCategory = "relational"
)

// DriverCapabilities defines what operations a driver supports
type DriverCapabilities struct {
	SupportsSQL             bool
	SupportsTransaction     bool
	SupportsSchemaDiscovery bool
	SupportsNativeBoolean   bool
	SupportsSequences       bool
	SupportsRenameTable     bool
}

// DriverBase provides common functionality for all drivers
type DriverBase struct {
	dbType   model.DatabaseType
	category DriverCategory
}

func NewDriverBase(dbType model.DatabaseType, category DriverCategory) *DriverBase {
	return &DriverBase{dbType: dbType, category: category}
}

func (db *DriverBase) GetDatabaseTypeName() string {
	return string(db.dbType)
}

func (db *DriverBase) GetCategory() DriverCategory {
	return db.category
}

// Driver interface
type Driver interface {
	// Open opens a database connection
	Open(dsn string) (*sql.DB, error)

	// ValidateDSN validates the connection string
	ValidateDSN(dsn string) error

	// ValidateConfig validates a data source configuration
	ValidateConfig(config *model.DataSourceConfig) error

	// GetDefaultPort returns the default port for the database
	GetDefaultPort() int

	// BuildDSN builds a connection string from configuration
	BuildDSN(config *model.DataSourceConfig) string

	// GetDatabaseTypeName returns the database type name
	GetDatabaseTypeName() string

	// TestConnection tests if the connection is working
	TestConnection(db *sql.DB) error

	// GetDriverName returns the underlying SQL driver name
	GetDriverName() string

	// GetCategory returns the driver category
	GetCategory() DriverCategory

	// GetCapabilities returns driver capabilities
	GetCapabilities() DriverCapabilities
}
