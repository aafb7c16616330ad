// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

When flags live on a cobra command, bind and resolve them separately:

	cfg := cliparse.DefaultConfig()
	cliparse.BindFlags(cmd.Flags(), &cfg)
	// after parsing
	err := cliparse.Resolve(cmd.Flags(), &cfg)

# Precedence

Lowest to highest:

  - DefaultConfig values
  - TOML file given with --config
  - dotenv file (--env-file, default .env) and the process environment
  - command-line flags

The dotenv file never overrides a variable already present in the
environment.

# Environment Variables

	PORT               → -p, --port (default 5000)
	LISTEN_HOST        → --host (default 0.0.0.0)
	DB_TYPE            → -t, --db-type (mysql, postgres, sqlite; default mysql)
	DB_HOST            → --db-host
	DB_PORT            → --db-port
	DB_USER            → --db-user
	DB_PASSWORD        → --db-password
	DB_NAME            → --db-name
	TABLE_NAME         → --table
	DB_SSLMODE         → --sslmode
	REDACT_ERRORS      → --redact-errors
	BOOTSTRAP_ON_START → --bootstrap
	LOG_LEVEL          → --log-level
	LOG_FORMAT         → --log-format

# Config File

Keys use snake_case:

	db_type = "postgres"
	db_host = "db.internal"
	db_name = "inventory"
	table_name = "items"
	redact_errors = true

# Validation

ParseFlags returns an error if:

  - DB_NAME or TABLE_NAME is missing
  - TABLE_NAME is not a plain SQL identifier
  - DB_NAME is not a plain identifier (mysql and postgres only; sqlite takes a path)
  - the database type, port, log level or log format is invalid
*/
package cliparse
