// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config as it appears in a TOML file.
// Pointer fields distinguish "unset" from false.
type FileConfig struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	DatabaseType     string `toml:"db_type"`
	DatabaseHost     string `toml:"db_host"`
	DatabasePort     int    `toml:"db_port"`
	DatabaseUser     string `toml:"db_user"`
	DatabasePassword string `toml:"db_password"`
	DatabaseName     string `toml:"db_name"`
	TableName        string `toml:"table_name"`
	SSLMode          string `toml:"sslmode"`
	RedactErrors     *bool  `toml:"redact_errors"`
	Bootstrap        *bool  `toml:"bootstrap"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig copies file values into cfg, skipping flags set on the command line.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setString("db-type", fc.DatabaseType, &cfg.DatabaseType)
	s.setString("db-host", fc.DatabaseHost, &cfg.DatabaseHost)
	s.setInt("db-port", fc.DatabasePort, &cfg.DatabasePort)
	s.setString("db-user", fc.DatabaseUser, &cfg.DatabaseUser)
	s.setString("db-password", fc.DatabasePassword, &cfg.DatabasePassword)
	s.setString("db-name", fc.DatabaseName, &cfg.DatabaseName)
	s.setString("table", fc.TableName, &cfg.TableName)
	s.setString("sslmode", fc.SSLMode, &cfg.SSLMode)
	s.setBool("redact-errors", fc.RedactErrors, &cfg.RedactErrors)
	s.setBool("bootstrap", fc.Bootstrap, &cfg.Bootstrap)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
}
