// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres, or memory
  - DatabaseURL: Journal connection string (required unless memory)
  - AdminAccount: The ballot administrator (required)
  - AccountSalt: Secret for account signatures (required)
  - PublicReads: Let anyone read voters and proposals
  - LogLevel: debug, info (default), warn, error

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--admin         Administrator account
	--account-salt  Account signature salt
	--public-reads  true/false
	--log-level     Log level
	--env-file      Env file to load

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_ACCOUNT → --admin
	ACCOUNT_SALT  → --account-salt
	PUBLIC_READS  → --public-reads
	LOG_LEVEL     → --log-level

A .env file in the working directory (or the one named by --env-file) is
loaded first. It never overrides variables that are already set.
*/
package cliparse
