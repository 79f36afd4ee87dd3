// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// FileStore keeps users.json and votes.json in a directory.
// Each save rewrites the whole file through a temp file and rename, so a
// failed write leaves the previous file in place.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageError("create data dir", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) GetUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.read(usersDocument)
	if err != nil {
		return nil, err
	}
	users, err := decodeCollection[models.User](data)
	if err != nil {
		return nil, storageError("decode users", err)
	}
	return users, nil
}

func (s *FileStore) SaveUsers(ctx context.Context, users []models.User) error {
	data, err := encodeCollection(users)
	if err != nil {
		return storageError("encode users", err)
	}
	return s.write(usersDocument, data)
}

func (s *FileStore) GetVotes(ctx context.Context) ([]models.Vote, error) {
	data, err := s.read(votesDocument)
	if err != nil {
		return nil, err
	}
	votes, err := decodeCollection[models.Vote](data)
	if err != nil {
		return nil, storageError("decode votes", err)
	}
	return votes, nil
}

func (s *FileStore) SaveVotes(ctx context.Context, votes []models.Vote) error {
	data, err := encodeCollection(votes)
	if err != nil {
		return storageError("encode votes", err)
	}
	return s.write(votesDocument, data)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("read "+name, err)
	}
	return data, nil
}

func (s *FileStore) write(name string, data []byte) error {
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return storageError("write "+name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return storageError("write "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return storageError("write "+name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return storageError("write "+name, fmt.Errorf("rename: %w", err))
	}

	slog.Info("collection saved", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
