// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file can be loaded first; variables already in the environment win:

	if err := cliparse.LoadEnvFile(".env"); err != nil { ... }

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: memory, file, sqlite, postgres or s3 (default: file)
  - DataDir: directory for the file and sqlite stores (default: data)
  - DatabaseURL: connection string (required for postgres)
  - DatabaseDriver: postgres (lib/pq) or pgx for the postgres store
  - SessionSecret: secret for signing session tokens (required)
  - SessionTTL: session token lifetime (default: 168h)
  - Locale: collation locale for a-z sorting (default: en)
  - S3Bucket, S3Region, S3Endpoint, S3Prefix: s3 store settings

# CLI Flags

	-p               Server port
	-s               Store type
	-data            Data directory
	-d               Database URL
	-driver          Postgres driver
	--session-secret Session secret
	--session-ttl    Session lifetime
	--locale         Sort locale
	--s3-bucket      S3 bucket
	--s3-region      S3 region
	--s3-endpoint    S3 endpoint
	--s3-prefix      S3 key prefix

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	STORE_TYPE      → -s
	DATA_DIR        → -data
	DATABASE_URL    → -d
	DATABASE_DRIVER → -driver
	SESSION_SECRET  → --session-secret
	SESSION_TTL     → --session-ttl
	LOCALE          → --locale
	S3_BUCKET       → --s3-bucket
	S3_REGION       → --s3-region
	S3_ENDPOINT     → --s3-endpoint
	S3_PREFIX       → --s3-prefix

S3 credentials are read only from S3_ACCESS_KEY and S3_SECRET_KEY; without
them the default AWS credential chain is used.
*/
package cliparse
