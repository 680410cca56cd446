package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

const envPrefix = "FB"

type Config struct {
	Server   ServerConfig           `mapstructure:"server"`
	Firebird model.DataSourceConfig `mapstructure:"firebird"`
	Schema   SchemaConfig           `mapstructure:"schema"`
	Security SecurityConfig         `mapstructure:"security"`
	Logging  LoggingConfig          `mapstructure:"logging"`
	Metrics  MetricsConfig          `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"`
	Host string `mapstructure:"host"`
}

// SchemaConfig controls the objects the schema statements create
type SchemaConfig struct {
	BooleanDomain       model.BooleanDomain `mapstructure:"boolean_domain"`
	SequenceSuffix      string              `mapstructure:"sequence_suffix" validate:"required"`
	MaxIdentifierLength int                 `mapstructure:"max_identifier_length" validate:"min=8,max=63"`
	// ProvisionOnStartup creates the boolean domain when the server starts
	ProvisionOnStartup  bool                `mapstructure:"provision_on_startup"`
}

type SecurityConfig struct {
	RateLimitPerMinute int  `mapstructure:"rate_limit_per_minute" validate:"min=0"`
	RateLimitBurst     int  `mapstructure:"rate_limit_burst" validate:"min=0"`
	EnableRateLimit    bool `mapstructure:"enable_rate_limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Load reads configuration from path, or from ./configs/config.yaml and
// ./config.yaml when path is empty. FB_* environment variables override
// file values, e.g. FB_FIREBIRD_HOST for firebird.host.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set default values
	setDefaults(v)

	// Enable environment variable support
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logrus.Info("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the struct tags of the whole configuration
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.host", "0.0.0.0")

	// Firebird defaults
	v.SetDefault("firebird.host", "localhost")
	v.SetDefault("firebird.port", 3050)
	v.SetDefault("firebird.database", "employee")
	v.SetDefault("firebird.username", "sysdba")
	v.SetDefault("firebird.password", "")
	v.SetDefault("firebird.role", "")
	v.SetDefault("firebird.charset", "UTF8")
	v.SetDefault("firebird.wire_crypt", false)
	v.SetDefault("firebird.timeout", 30)
	v.SetDefault("firebird.max_pool_size", 10)
	v.SetDefault("firebird.max_lifetime", 1800)

	// Schema defaults
	v.SetDefault("schema.boolean_domain.name", model.DefaultBooleanDomain.Name)
	v.SetDefault("schema.boolean_domain.type", model.DefaultBooleanDomain.Type)
	v.SetDefault("schema.boolean_domain.true", model.DefaultBooleanDomain.True)
	v.SetDefault("schema.boolean_domain.false", model.DefaultBooleanDomain.False)
	v.SetDefault("schema.sequence_suffix", "_seq")
	v.SetDefault("schema.max_identifier_length", 31)
	v.SetDefault("schema.provision_on_startup", false)

	// Security defaults
	v.SetDefault("security.rate_limit_per_minute", 60)
	v.SetDefault("security.rate_limit_burst", 10)
	v.SetDefault("security.enable_rate_limit", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
