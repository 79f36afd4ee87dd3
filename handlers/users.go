// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/services"
)

type UserHandler struct {
	users *services.UserService
	votes *services.VoteService
	cfg   cliparse.Config
}

func NewUserHandler(users *services.UserService, votes *services.VoteService, cfg cliparse.Config) *UserHandler {
	return &UserHandler{users: users, votes: votes, cfg: cfg}
}

// Register handles POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "Failed to register")
		return
	}

	h.respondWithSession(w, user)
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "Failed to login")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	h.respondWithSession(w, user)
}

// List handles GET /users
// Passwords are never included
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch users")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UsersResponse{Users: users})
}

// CreatedVotes handles GET /users/{id}/votes
// Lists the votes the user created, with the same query parameters as GET /votes/view
func (h *UserHandler) CreatedVotes(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id is required")
		return
	}

	if _, err := h.users.Get(r.Context(), userID); err != nil {
		writeError(w, err, "Failed to fetch user")
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, err, "Invalid query")
		return
	}
	if q.Viewer == "" {
		q.Viewer = userID
	}

	votes, err := h.votes.CreatedBy(r.Context(), userID, q)
	if err != nil {
		writeError(w, err, "Failed to fetch votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{Votes: votes})
}

func (h *UserHandler) respondWithSession(w http.ResponseWriter, user models.User) {
	token, err := auth.IssueSessionToken(auth.Session{UserID: user.ID, Username: user.Username},
		h.cfg.SessionSecret, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserResponse{
		User:  user.Public(),
		Token: token,
	})
}
