package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXPORTGEN_BLUEPRINTS_DIR", "")
	t.Setenv("EXPORTGEN_LOG_LEVEL", "")

	cfg := Load()
	if cfg.BlueprintsDir != "./blueprints" {
		t.Fatalf("unexpected blueprints dir: %q", cfg.BlueprintsDir)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXPORTGEN_BLUEPRINTS_DIR", "/etc/exportgen/blueprints")
	t.Setenv("EXPORTGEN_RUNS_DB", "postgres://u:p@localhost/exportgen")
	t.Setenv("EXPORTGEN_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.BlueprintsDir != "/etc/exportgen/blueprints" {
		t.Fatalf("unexpected blueprints dir: %q", cfg.BlueprintsDir)
	}
	if cfg.RunsDBPath != "postgres://u:p@localhost/exportgen" {
		t.Fatalf("unexpected runs db: %q", cfg.RunsDBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}
