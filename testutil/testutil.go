// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// TestSessionSecret signs session tokens in tests
const TestSessionSecret = "test-session-secret"

// SetupTestStore opens a private in-memory sqlite store with the full schema
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	url := "file:" + name + "_" + auth.GenerateID() + "?mode=memory&cache=shared"

	s, err := store.OpenSQLStore(context.Background(), "sqlite", url)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		StoreType:     store.TypeMemory,
		SessionSecret: TestSessionSecret,
		SessionTTL:    time.Hour,
		Locale:        "en",
	}
}

// CreateTestUser stores a user directly and returns it
func CreateTestUser(t *testing.T, s store.Store, username string) models.User {
	t.Helper()

	ctx := context.Background()
	users, err := s.GetUsers(ctx)
	if err != nil {
		t.Fatalf("Failed to load users: %v", err)
	}

	user := models.User{
		ID:       auth.GenerateID(),
		Username: username,
		Password: "password",
		JoinDate: time.Now(),
	}
	if err := s.SaveUsers(ctx, append(users, user)); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestVote stores a vote with the given options and returns it.
// deadline may be nil for an open-ended vote.
func CreateTestVote(t *testing.T, s store.Store, creatorID, question string, options []string, selection models.Selection, deadline *time.Time) models.Vote {
	t.Helper()

	ctx := context.Background()
	votes, err := s.GetVotes(ctx)
	if err != nil {
		t.Fatalf("Failed to load votes: %v", err)
	}

	vote := models.Vote{
		ID:        auth.GenerateID(),
		CreatorID: creatorID,
		Question:  question,
		Options:   options,
		Selection: selection,
		Deadline:  deadline,
		CreatedAt: time.Now(),
		Responses: []models.VoteResponse{},
	}
	if err := s.SaveVotes(ctx, append(votes, vote)); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return vote
}

// SessionHeader returns an Authorization header for user
func SessionHeader(t *testing.T, user models.User) map[string]string {
	t.Helper()

	token, err := auth.IssueSessionToken(auth.Session{UserID: user.ID, Username: user.Username},
		TestSessionSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
