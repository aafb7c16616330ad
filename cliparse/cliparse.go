package cliparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

// Supported database types
const (
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// DefaultPort is the port the service has always listened on
const DefaultPort = 5000

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Config struct {
	Host string
	Port int

	DatabaseType     string
	DatabaseHost     string
	DatabasePort     int
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	TableName        string
	SSLMode          string

	RedactErrors bool
	Bootstrap    bool

	LogLevel  string
	LogFormat string

	ConfigFile string
	EnvFile    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         DefaultPort,
		DatabaseType: DatabaseMySQL,
		DatabaseHost: "localhost",
		SSLMode:      "disable",
		LogLevel:     "info",
		LogFormat:    "text",
		EnvFile:      ".env",
	}
}

// BindFlags registers every setting on fs, writing parsed values into cfg
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML config file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file loaded into the environment if present")

	// Network config
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen address")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Server port")

	// Database config
	fs.StringVarP(&cfg.DatabaseType, "db-type", "t", cfg.DatabaseType, "Database type (mysql, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseHost, "db-host", cfg.DatabaseHost, "Database host")
	fs.IntVar(&cfg.DatabasePort, "db-port", cfg.DatabasePort, "Database port (0 uses the driver default)")
	fs.StringVar(&cfg.DatabaseUser, "db-user", cfg.DatabaseUser, "Database user")
	fs.StringVar(&cfg.DatabasePassword, "db-password", cfg.DatabasePassword, "Database password (prefer env)")
	fs.StringVar(&cfg.DatabaseName, "db-name", cfg.DatabaseName, "Database name (file path for sqlite)")
	fs.StringVar(&cfg.TableName, "table", cfg.TableName, "Table holding the items")
	fs.StringVar(&cfg.SSLMode, "sslmode", cfg.SSLMode, "PostgreSQL sslmode")

	// Behaviour
	fs.BoolVar(&cfg.RedactErrors, "redact-errors", cfg.RedactErrors, "Hide driver error text from clients")
	fs.BoolVar(&cfg.Bootstrap, "bootstrap", cfg.Bootstrap, "Create database and table before serving")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
}

// ParseFlags parses args and layers the config file and environment beneath them
func ParseFlags(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := pflag.NewFlagSet("item-service", pflag.ContinueOnError)
	BindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := Resolve(fs, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Resolve applies the config file, then the environment, to every setting
// whose flag was not given explicitly on fs, and validates the result.
func Resolve(fs *pflag.FlagSet, cfg *Config) error {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfg.ConfigFile != "" {
		fc, err := LoadFileConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ApplyFileConfig(cfg, fc, changed)
	}

	if err := LoadEnvFile(cfg.EnvFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}

// Validate checks the configuration for errors and normalizes case-insensitive values
func (c *Config) Validate() error {
	c.DatabaseType = strings.ToLower(c.DatabaseType)
	switch c.DatabaseType {
	case DatabaseMySQL, DatabasePostgres, DatabaseSQLite:
	default:
		return fmt.Errorf("unsupported database type %q (use mysql, postgres or sqlite)", c.DatabaseType)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabasePort < 0 || c.DatabasePort > 65535 {
		return fmt.Errorf("invalid database port %d", c.DatabasePort)
	}

	// Names - MUST be provided
	if c.DatabaseName == "" {
		return errors.New("DB_NAME required (use --db-name or DB_NAME env)")
	}
	if c.TableName == "" {
		return errors.New("TABLE_NAME required (use --table or TABLE_NAME env)")
	}
	if !identifierPattern.MatchString(c.TableName) {
		return fmt.Errorf("table name %q must be a plain SQL identifier", c.TableName)
	}
	// sqlite treats the name as a file path, the server databases need an identifier
	if c.DatabaseType != DatabaseSQLite && !identifierPattern.MatchString(c.DatabaseName) {
		return fmt.Errorf("database name %q must be a plain SQL identifier", c.DatabaseName)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format %q (use text or json)", c.LogFormat)
	}

	return nil
}

// Redacted returns a copy safe to log
func (c Config) Redacted() Config {
	if c.DatabasePassword != "" {
		c.DatabasePassword = "*****"
	}
	return c
}
