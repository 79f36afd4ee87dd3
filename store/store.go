// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
)

// Store persists the two collections. Every Save replaces the whole
// collection; there is no locking, so concurrent writers race and the
// last one wins.
type Store interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	GetVotes(ctx context.Context) ([]models.Vote, error)
	SaveVotes(ctx context.Context, votes []models.Vote) error
	Close() error
}

// Store types
const (
	TypeMemory   = "memory"
	TypeFile     = "file"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeS3       = "s3"
)

// Document names shared by the file and s3 backends
const (
	usersDocument = "users.json"
	votesDocument = "votes.json"
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStorage, op, err)
}

// encodeCollection renders a collection as an indented JSON array
func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// decodeCollection parses a JSON array; empty input is an empty collection
func decodeCollection[T any](data []byte) ([]T, error) {
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func cloneUsers(users []models.User) []models.User {
	return append([]models.User{}, users...)
}

func cloneVotes(votes []models.Vote) []models.Vote {
	out := make([]models.Vote, len(votes))
	for i, v := range votes {
		out[i] = v.Clone()
	}
	return out
}
