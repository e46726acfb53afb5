package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultSlotKey      = "studyBuddyData"
	DefaultTimerMinutes = 25
)

type Config struct {
	DataDir  string        `yaml:"-"`
	Storage  StorageConfig `yaml:"storage"`
	Timer    TimerConfig   `yaml:"timer"`
	Timezone string        `yaml:"timezone"`
	Log      LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
}

type TimerConfig struct {
	Minutes int `yaml:"minutes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// New builds the configuration for dataDir. Defaults are applied first, then
// the YAML file at configPath (or <dataDir>/config.yaml when empty, if it
// exists), then STUDYBUDDY_* environment overrides:
//
//	STUDYBUDDY_STORAGE_BACKEND, STUDYBUDDY_STORAGE_KEY,
//	STUDYBUDDY_TIMER_MINUTES, STUDYBUDDY_TIMEZONE, STUDYBUDDY_LOG_LEVEL
func New(dataDir, configPath string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Default(dataDir)

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(dataDir, "config.yaml")
	}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func Default(dataDir string) Config {
	return Config{
		DataDir:  dataDir,
		Storage:  StorageConfig{Backend: BackendFile, Key: DefaultSlotKey},
		Timer:    TimerConfig{Minutes: DefaultTimerMinutes},
		Timezone: "Local",
		Log:      LogConfig{Level: "info"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STUDYBUDDY_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STUDYBUDDY_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("STUDYBUDDY_TIMER_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			cfg.Timer.Minutes = minutes
		}
	}
	if v := os.Getenv("STUDYBUDDY_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("STUDYBUDDY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.Timer.Minutes <= 0 {
		return fmt.Errorf("timer.minutes must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty and "Local" both mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) SlotPath() string {
	return filepath.Join(c.DataDir, c.Storage.Key+".json")
}

func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "studybuddy.db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "studybuddy.log")
}
