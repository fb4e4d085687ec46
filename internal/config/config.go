package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends selectable via config.
const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Addr      string `yaml:"addr"`
	Storage   string `yaml:"storage"`
	DataPath  string `yaml:"data_path"` // csv backend
	DBPath    string `yaml:"db_path"`   // sqlite backend
	MinCohort int    `yaml:"min_cohort"`
}

// Load reads config.yaml (or CONFIG_PATH), applies environment overrides,
// fills defaults and validates. A missing config file is not an error;
// defaults and env vars alone are enough to run.
func Load() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	envOverride(&cfg.Addr, "PULSECHECK_ADDR")
	envOverride(&cfg.Storage, "PULSECHECK_STORAGE")
	envOverride(&cfg.DataPath, "PULSECHECK_DATA_PATH")
	envOverride(&cfg.DBPath, "PULSECHECK_DB_PATH")
	if err := envOverrideInt(&cfg.MinCohort, "PULSECHECK_MIN_COHORT"); err != nil {
		return Config{}, err
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageCSV
	}
	if cfg.DataPath == "" {
		cfg.DataPath = "./data/checkins.csv"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./pulsecheck.db"
	}
	if cfg.MinCohort == 0 {
		cfg.MinCohort = 5
	}

	switch cfg.Storage {
	case StorageCSV, StorageSQLite, StorageMemory:
	default:
		return Config{}, fmt.Errorf("storage must be one of csv, sqlite, memory; got %q", cfg.Storage)
	}
	if cfg.MinCohort < 1 {
		return Config{}, fmt.Errorf("min_cohort must be >= 1, got %d", cfg.MinCohort)
	}
	return cfg, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}
