// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote is a small polling service. Users register, create votes
with a fixed or open number of selections and an optional "other" free
text option, respond once per vote, and browse votes by search, filter
and sort.

# Starting the Server

Only the session secret is required; everything else has a default:

	SESSION_SECRET=dev go run .

Or with flags:

	go run . -p 3318 -s sqlite -data ./data -session-secret dev

A .env file in the working directory is loaded first.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-s): memory, file, sqlite, postgres or s3 (default: file)
  - DATA_DIR (-data): Directory for the file and sqlite stores (default: data)
  - DATABASE_URL (-d), DATABASE_DRIVER (-driver): SQL connection
  - SESSION_SECRET (-session-secret), SESSION_TTL (-session-ttl)
  - LOCALE (-locale): Collation for alphabetical sorting (default: en)
  - S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PREFIX, S3_ACCESS_KEY, S3_SECRET_KEY

# Architecture

  - handlers: HTTP request handlers (users, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, sessions, logging, JSON helpers
  - services: Register, login, create, respond and results
  - rules: Response eligibility and draft validation
  - tally: Result aggregation
  - listing: Search, filters and sorting
  - store: Memory, file, SQL and S3 persistence
  - db: Connections and migrations
  - auth: IDs and session tokens
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
