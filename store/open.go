// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielhkuo/quickly-vote/cliparse"
)

// Open builds the store selected by cfg.StoreType
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.StoreType {
	case TypeMemory:
		s = NewMemoryStore()
	case TypeFile:
		s, err = NewFileStore(cfg.DataDir)
	case TypeSQLite:
		if dir := sqliteDir(cfg.DatabaseURL); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, storageError("create data dir", err)
			}
		}
		s, err = OpenSQLStore(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	case TypePostgres:
		s, err = OpenSQLStore(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	case TypeS3:
		client, cerr := NewS3Client(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if cerr != nil {
			return nil, cerr
		}
		s = NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("store ready", "type", cfg.StoreType)
	return s, nil
}

// sqliteDir returns the directory holding the database file named by url,
// or "" for in-memory databases and files in the working directory.
func sqliteDir(url string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(url, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	if dir := filepath.Dir(path); dir != "." {
		return dir
	}
	return ""
}
