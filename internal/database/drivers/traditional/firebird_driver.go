package traditional

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/nakagami/firebirdsql"

	"github.com/kecicz/activerecord-fb-adapter/internal/database/drivers"
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

const defaultFirebirdPort = 3050

// FirebirdDriver implements Driver for Firebird 2.5+
type FirebirdDriver struct {
	*drivers.DriverBase
	validate *validator.Validate
}

func NewFirebirdDriver() *FirebirdDriver {
	return &FirebirdDriver{
		DriverBase: drivers.NewDriverBase(model.DatabaseTypeFirebird, drivers.CategoryRelational),
		validate:   validator.New(),
	}
}

func (d *FirebirdDriver) Open(dsn string) (*sql.DB, error) {
	if err := d.ValidateDSN(dsn); err != nil {
		return nil, err
	}
	return sql.Open(d.GetDriverName(), dsn)
}

func (d *FirebirdDriver) ValidateDSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("DSN cannot be empty")
	}
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return fmt.Errorf("DSN must have the form user:password@host[:port]/database")
	}
	if !strings.Contains(dsn[at:], "/") {
		return fmt.Errorf("DSN is missing the database path")
	}
	return nil
}

func (d *FirebirdDriver) ValidateConfig(config *model.DataSourceConfig) error {
	if config.Port <= 0 {
		config.Port = d.GetDefaultPort()
	}
	if err := d.validate.Struct(config); err != nil {
		return fmt.Errorf("invalid firebird configuration: %w", err)
	}
	return d.ValidateDSN(d.BuildDSN(config))
}

func (d *FirebirdDriver) GetDefaultPort() int {
	return defaultFirebirdPort
}

// BuildDSN renders user:password@host:port/database?params
func (d *FirebirdDriver) BuildDSN(config *model.DataSourceConfig) string {
	port := config.Port
	if port <= 0 {
		port = d.GetDefaultPort()
	}

	// an absolute server path yields "host:port//path", which the driver strips to "/path"
	dsn := fmt.Sprintf("%s:%s@%s:%d/%s",
		url.QueryEscape(config.Username),
		url.QueryEscape(config.Password),
		config.Host,
		port,
		config.Database,
	)

	params := url.Values{}
	if config.Role != "" {
		params.Set("role", config.Role)
	}
	if config.Charset != "" {
		params.Set("charset", config.Charset)
	}
	params.Set("wire_crypt", strconv.FormatBool(config.WireCrypt))

	return dsn + "?" + params.Encode()
}

func (d *FirebirdDriver) TestConnection(db *sql.DB) error {
	return db.Ping()
}

func (d *FirebirdDriver) GetDriverName() string {
	return "firebirdsql"
}

func (d *FirebirdDriver) GetCapabilities() drivers.DriverCapabilities {
	return drivers.DriverCapabilities{
		SupportsSQL:             true,
		SupportsTransaction:     true,
		SupportsSchemaDiscovery: true,
		SupportsNativeBoolean:   false,
		SupportsSequences:       true,
		SupportsRenameTable:     false,
	}
}
