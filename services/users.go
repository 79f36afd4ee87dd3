// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// UserService handles registration, login and user lookups.
// Passwords are stored and compared as plain strings.
type UserService struct {
	store store.Store
	now   func() time.Time
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, now: time.Now}
}

// Register creates a user. A taken username is common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return models.User{}, err
	}

	// Check-then-write: a concurrent registration can pass this check too
	for _, u := range users {
		if u.Username == username {
			return models.User{}, fmt.Errorf("%w: username already taken", common.ErrConflict)
		}
	}

	user := models.User{
		ID:       auth.GenerateID(),
		Username: username,
		Password: password,
		JoinDate: s.now(),
	}
	if err := s.store.SaveUsers(ctx, append(users, user)); err != nil {
		return models.User{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login returns the user whose username and password match. The username
// is trimmed the same way Register trims it; the password must match exactly.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
}

// List returns every user without passwords, in registration order
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]models.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return public, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user %s", common.ErrNotFound, id)
}
