package model

type DatabaseType string

const (
	DatabaseTypeFirebird DatabaseType = "firebird"
)

// DataSourceConfig holds the connection configuration for a Firebird database
type DataSourceConfig struct {
	Host        string `json:"host" mapstructure:"host" validate:"required"`
	Port        int    `json:"port" mapstructure:"port" validate:"required,min=1,max=65535"`
	Database    string `json:"database" mapstructure:"database" validate:"required"` // alias or path on the server
	Username    string `json:"username" mapstructure:"username" validate:"required"`
	Password    string `json:"password" mapstructure:"password"`
	Role        string `json:"role,omitempty" mapstructure:"role"`
	Charset     string `json:"charset,omitempty" mapstructure:"charset"`
	WireCrypt   bool   `json:"wireCrypt" mapstructure:"wire_crypt"`
	Timeout     int    `json:"timeout" mapstructure:"timeout"`         // Connection timeout in seconds, default 30
	MaxPoolSize int    `json:"maxPoolSize" mapstructure:"max_pool_size"` // Maximum pool size, default 10
	MaxLifetime int    `json:"maxLifetime" mapstructure:"max_lifetime"`  // Max connection lifetime in seconds, default 1800
}

// Redacted returns a copy safe for logging and API responses
func (dsc DataSourceConfig) Redacted() DataSourceConfig {
	if dsc.Password != "" {
		dsc.Password = "******"
	}
	return dsc
}
