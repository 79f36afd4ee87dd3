// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-vote/models"
)

// MemoryStore keeps both collections in process memory.
// The mutex only guards the slice headers; it does not serialize
// read-modify-write sequences done by callers.
type MemoryStore struct {
	mu    sync.RWMutex
	users []models.User
	votes []models.Vote
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: []models.User{}, votes: []models.Vote{}}
}

func (s *MemoryStore) GetUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users), nil
}

func (s *MemoryStore) SaveUsers(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = cloneUsers(users)
	return nil
}

func (s *MemoryStore) GetVotes(ctx context.Context) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneVotes(s.votes), nil
}

func (s *MemoryStore) SaveVotes(ctx context.Context, votes []models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = cloneVotes(votes)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
