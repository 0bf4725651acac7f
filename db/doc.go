// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the journal database and creates its schema.

# Drivers

Open picks the driver from the configured database type:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open("sqlite", "file:ballot.db")

SQLite connections are limited to one, which also keeps ":memory:" databases
alive for the lifetime of the pool.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - ballot_meta: single row holding the administrator the journal belongs to
  - journal_event: every applied engine event, keyed by sequence number
*/
package db
