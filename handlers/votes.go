// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/listing"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/services"
	"github.com/danielhkuo/quickly-vote/tally"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// List handles GET /votes
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.List(r.Context())
	if err != nil {
		writeError(w, err, "Failed to fetch votes")
		return
	}

	if votes == nil {
		votes = []models.Vote{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{Votes: votes})
}

// Create handles POST /votes
// The creator comes from the body; a session, when present, must agree with it
func (h *VoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.VoteDraft
	if err := middleware.ParseJSONBody(r, &draft); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	creatorID, err := actingUser(r, draft.CreatorID)
	if err != nil {
		writeError(w, err, "Failed to create vote")
		return
	}
	draft.CreatorID = creatorID

	vote, err := h.votes.Create(r.Context(), draft)
	if err != nil {
		writeError(w, err, "Failed to create vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteEnvelope{Vote: vote})
}

// Respond handles POST /votes/respond
func (h *VoteHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.RespondRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voteId is required")
		return
	}

	userID, err := actingUser(r, req.UserID)
	if err != nil {
		writeError(w, err, "Failed to record response")
		return
	}
	req.UserID = userID

	if err := h.votes.Respond(r.Context(), req); err != nil {
		writeError(w, err, "Failed to record response")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondResponse{Success: true})
}

// Get handles GET /votes/{id}
func (h *VoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	vote, err := h.votes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Failed to fetch vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteEnvelope{Vote: vote})
}

// Stats handles GET /votes/{id}/stats
// The viewer is the session user, or the userId query parameter without a session
func (h *VoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	viewer := r.URL.Query().Get("userId")
	if s, ok := auth.SessionFromContext(r.Context()); ok {
		viewer = s.UserID
	}

	vote, stats, err := h.votes.Results(r.Context(), r.PathValue("id"), viewer)
	if err != nil {
		writeError(w, err, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		VoteID:  vote.ID,
		Stats:   stats,
		Leading: tally.Leading(stats),
	})
}

// View handles GET /votes/view?q=...&filter=...&sort=...
func (h *VoteHandler) View(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, err, "Invalid query")
		return
	}

	votes, err := h.votes.View(r.Context(), q)
	if err != nil {
		writeError(w, err, "Failed to fetch votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{Votes: votes})
}

// parseListQuery reads q, repeated filter and sort. The viewer is the
// session user, or the userId query parameter without a session.
func parseListQuery(r *http.Request) (listing.Query, error) {
	values := r.URL.Query()

	filters, err := listing.ParseFilters(values["filter"])
	if err != nil {
		return listing.Query{}, err
	}
	sort, err := listing.ParseSortKey(values.Get("sort"))
	if err != nil {
		return listing.Query{}, err
	}

	viewer := values.Get("userId")
	if s, ok := auth.SessionFromContext(r.Context()); ok {
		viewer = s.UserID
	}

	return listing.Query{
		Search:  values.Get("q"),
		Filters: filters,
		Sort:    sort,
		Viewer:  viewer,
	}, nil
}

// actingUser resolves who performs a request. Without a session the body
// value is trusted; with one, the body must be empty or name the same user.
func actingUser(r *http.Request, bodyUserID string) (string, error) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return bodyUserID, nil
	}
	if bodyUserID != "" && bodyUserID != s.UserID {
		return "", fmt.Errorf("%w: session user does not match request", common.ErrForbidden)
	}
	return s.UserID, nil
}
