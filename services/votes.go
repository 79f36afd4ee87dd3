// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/listing"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/rules"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/tally"
)

// VoteService creates votes, records responses and builds result views
type VoteService struct {
	store  store.Store
	locale language.Tag
	now    func() time.Time
}

func NewVoteService(s store.Store, locale language.Tag) *VoteService {
	return &VoteService{store: s, locale: locale, now: time.Now}
}

func (s *VoteService) List(ctx context.Context) ([]models.Vote, error) {
	return s.store.GetVotes(ctx)
}

func (s *VoteService) Get(ctx context.Context, id string) (models.Vote, error) {
	votes, err := s.store.GetVotes(ctx)
	if err != nil {
		return models.Vote{}, err
	}
	idx := indexOf(votes, id)
	if idx < 0 {
		return models.Vote{}, fmt.Errorf("%w: vote %s", common.ErrNotFound, id)
	}
	return votes[idx], nil
}

// Create validates the draft and stores it with a fresh id, createdAt
// and no responses
func (s *VoteService) Create(ctx context.Context, draft models.VoteDraft) (models.Vote, error) {
	vote, err := rules.ValidateDraft(draft)
	if err != nil {
		return models.Vote{}, err
	}

	votes, err := s.store.GetVotes(ctx)
	if err != nil {
		return models.Vote{}, err
	}

	vote.ID = auth.GenerateID()
	vote.CreatedAt = s.now()
	vote.Responses = []models.VoteResponse{}

	if err := s.store.SaveVotes(ctx, append(votes, vote)); err != nil {
		return models.Vote{}, err
	}

	slog.Info("vote created", "vote_id", vote.ID, "creator_id", vote.CreatorID, "options", len(vote.Options))
	return vote, nil
}

// Respond appends the user's response to a vote.
//
// The eligibility check and the save are not atomic: two concurrent
// submissions can both pass the check, and concurrent writers of the vote
// list overwrite each other.
func (s *VoteService) Respond(ctx context.Context, req models.RespondRequest) error {
	votes, err := s.store.GetVotes(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(votes, req.VoteID)
	if idx < 0 {
		return fmt.Errorf("%w: vote %s", common.ErrNotFound, req.VoteID)
	}
	vote := votes[idx]

	if req.UserID == "" {
		return fmt.Errorf("%w: userId is required", common.ErrValidation)
	}

	now := s.now()
	selected, otherText := rules.ApplyOther(vote, req.SelectedOptions, req.OtherText)
	response := models.VoteResponse{
		UserID:          req.UserID,
		SelectedOptions: selected,
		OtherText:       otherText,
		Timestamp:       now,
	}
	if err := rules.CheckResponse(vote, response, now); err != nil {
		return err
	}

	votes[idx].Responses = append(votes[idx].Responses, response)
	if err := s.store.SaveVotes(ctx, votes); err != nil {
		return err
	}

	slog.Info("response recorded", "vote_id", vote.ID, "user_id", req.UserID, "selected", len(selected))
	return nil
}

// Results aggregates a vote for viewerID. Results are visible to the
// creator, to anyone who responded, and to everyone once the vote expired.
func (s *VoteService) Results(ctx context.Context, voteID, viewerID string) (models.Vote, models.VoteStats, error) {
	vote, err := s.Get(ctx, voteID)
	if err != nil {
		return models.Vote{}, models.VoteStats{}, err
	}

	if !vote.IsExpired(s.now()) {
		if viewerID == "" {
			return models.Vote{}, models.VoteStats{}, fmt.Errorf("%w: session required", common.ErrUnauthorized)
		}
		if vote.CreatorID != viewerID && !vote.HasResponded(viewerID) {
			return models.Vote{}, models.VoteStats{}, fmt.Errorf("%w: respond to see results", common.ErrForbidden)
		}
	}

	return vote, tally.Aggregate(vote), nil
}

// View filters and sorts every vote. Now and Locale default to the
// service clock and locale.
func (s *VoteService) View(ctx context.Context, q listing.Query) ([]models.Vote, error) {
	votes, err := s.store.GetVotes(ctx)
	if err != nil {
		return nil, err
	}
	return listing.View(votes, s.fill(q)), nil
}

// CreatedBy is View restricted to the votes userID created
func (s *VoteService) CreatedBy(ctx context.Context, userID string, q listing.Query) ([]models.Vote, error) {
	votes, err := s.store.GetVotes(ctx)
	if err != nil {
		return nil, err
	}
	return listing.View(listing.CreatedBy(votes, userID), s.fill(q)), nil
}

func (s *VoteService) fill(q listing.Query) listing.Query {
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	if q.Locale == language.Und {
		q.Locale = s.locale
	}
	return q
}

func indexOf(votes []models.Vote, id string) int {
	for i, v := range votes {
		if v.ID == id {
			return i
		}
	}
	return -1
}
