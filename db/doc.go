// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and manages the schema.

# Connections

Open connects, pings and migrates in one step:

	conn, dialect, err := db.Open(ctx, "sqlite", "file:votes.db")

Supported drivers:

  - sqlite: modernc.org/sqlite (pure Go)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

# Schema Creation

CreateSchema runs the goose migrations embedded from migrations/.
Safe to call multiple times - applied versions are recorded by goose.

# Tables

  - app_user: registered users, in registration order
  - vote: polls; options stored as a JSON array
  - vote_response: responses, ordered per vote

# Relationships

	vote 1──* vote_response

Responses cascade with their vote. Users and votes are siblings with no
foreign key between them.

# Queries

Queries are written with ? placeholders and passed through Rebind, which
turns them into $1, $2, ... for postgres.

# Transactions

	err := db.WithTx(ctx, conn, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM vote")
		return err
	})

The transaction commits when fn returns nil and rolls back otherwise.
*/
package db
