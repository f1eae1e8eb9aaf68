package config

import (
	"os"
)

type Config struct {
	BlueprintsDir string
	RunsDBPath    string
	OutDir        string
	LogLevel      string
}

func Load() *Config {
	return &Config{
		BlueprintsDir: getEnv("EXPORTGEN_BLUEPRINTS_DIR", "./blueprints"),
		RunsDBPath:    getEnv("EXPORTGEN_RUNS_DB", "./exportgen-runs.sqlite"),
		OutDir:        getEnv("EXPORTGEN_OUT_DIR", "./out"),
		LogLevel:      getEnv("EXPORTGEN_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
