// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Ballot API server.

Quickly Ballot runs a single administrator-driven ballot: the administrator
registers voters, voters register proposals, each voter casts one vote, and
the proposal that first reaches the highest count wins.

# Starting the Server

	ADMIN_ACCOUNT=0xAdmin ACCOUNT_SALT=... DATABASE_URL=ballot.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin 0xAdmin

# Configuration

Required settings:

  - ADMIN_ACCOUNT (--admin): The ballot administrator
  - ACCOUNT_SALT (--account-salt): Secret for account signatures
  - DATABASE_URL (-d): Journal location, unless DATABASE_TYPE=memory

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default), postgres, or memory
  - PUBLIC_READS (--public-reads): Open registry reads to everyone
  - LOG_LEVEL (--log-level): debug, info, warn, error

# Persistence

Every command is written to an event journal before it takes effect. If the
write fails, the command fails and the ballot is unchanged. On startup the
journal is replayed through the engine, so a restarted server resumes the
same ballot. A journal written for one administrator refuses to open for
another.

# Architecture

  - ballot: The engine (workflow, registries, tally)
  - events: Event bus between the engine and its subscribers
  - journal: SQL event journal and replay
  - metrics: Prometheus collectors
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, caller identity, JSON helpers
  - models: Request/response types
  - auth: Account signatures
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
