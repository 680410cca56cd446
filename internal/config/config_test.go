package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  mode: release\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Mode != "release" {
		t.Errorf("Expected mode release, got %s", cfg.Server.Mode)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Firebird.Port != 3050 {
		t.Errorf("Expected default Firebird port 3050, got %d", cfg.Firebird.Port)
	}
	if cfg.Schema.BooleanDomain.Name != "d_boolean" || cfg.Schema.BooleanDomain.Type != "smallint" {
		t.Errorf("Expected default boolean domain, got %+v", cfg.Schema.BooleanDomain)
	}
	if cfg.Schema.SequenceSuffix != "_seq" || cfg.Schema.MaxIdentifierLength != 31 {
		t.Errorf("Unexpected sequence naming %q/%d", cfg.Schema.SequenceSuffix, cfg.Schema.MaxIdentifierLength)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
firebird:
  host: fb.internal
  database: /data/app.fdb
  username: app
schema:
  boolean_domain:
    name: t_flag
    type: char(1)
    "true": "'T'"
    "false": "'F'"
logging:
  format: text
`)
	t.Setenv("FB_FIREBIRD_PASSWORD", "secret")
	t.Setenv("FB_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Firebird.Host != "fb.internal" || cfg.Firebird.Database != "/data/app.fdb" {
		t.Errorf("Unexpected firebird config %+v", cfg.Firebird.Redacted())
	}
	if cfg.Firebird.Password != "secret" {
		t.Error("Expected password from FB_FIREBIRD_PASSWORD")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Schema.BooleanDomain.True != "'T'" {
		t.Errorf("Expected true literal 'T', got %s", cfg.Schema.BooleanDomain.True)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"logging format": "logging:\n  format: xml\n",
		"server mode":    "server:\n  mode: production\n",
		"identifier":     "schema:\n  max_identifier_length: 2\n",
		"metrics path":   "metrics:\n  path: metrics\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
