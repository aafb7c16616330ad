// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a dotenv file into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnvConfig applies configuration from environment variables.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("LISTEN_HOST"), &cfg.Host)
	s.setString("db-type", os.Getenv("DB_TYPE"), &cfg.DatabaseType)
	s.setString("db-host", os.Getenv("DB_HOST"), &cfg.DatabaseHost)
	s.setString("db-user", os.Getenv("DB_USER"), &cfg.DatabaseUser)
	s.setString("db-password", os.Getenv("DB_PASSWORD"), &cfg.DatabasePassword)
	s.setString("db-name", os.Getenv("DB_NAME"), &cfg.DatabaseName)
	s.setString("table", os.Getenv("TABLE_NAME"), &cfg.TableName)
	s.setString("sslmode", os.Getenv("DB_SSLMODE"), &cfg.SSLMode)
	s.setString("log-level", os.Getenv("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setIntFromString("port", os.Getenv("PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("db-port", os.Getenv("DB_PORT"), &cfg.DatabasePort); err != nil {
		return err
	}

	if err := s.setBoolFromString("redact-errors", os.Getenv("REDACT_ERRORS"), &cfg.RedactErrors); err != nil {
		return err
	}
	if err := s.setBoolFromString("bootstrap", os.Getenv("BOOTSTRAP_ON_START"), &cfg.Bootstrap); err != nil {
		return err
	}

	return nil
}

// configSetter applies values only where the flag was not explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
