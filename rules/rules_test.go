// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedVote(count int) models.Vote {
	return models.Vote{
		ID:        "v",
		Options:   []string{"A", "B", "C"},
		Selection: models.FixedSelection{Count: count},
	}
}

func TestApplyOther(t *testing.T) {
	withOther := models.Vote{Options: []string{"A", "B"}, HasOther: true}
	without := models.Vote{Options: []string{"A", "B"}}

	tests := []struct {
		name     string
		vote     models.Vote
		selected []int
		text     string
		wantSel  []int
		wantText string
	}{
		{"text adds other index", withOther, []int{0}, "C", []int{0, 2}, "C"},
		{"other already selected", withOther, []int{2, 0}, "C", []int{2, 0}, "C"},
		{"blank text removes other index", withOther, []int{0, 2}, "   ", []int{0}, ""},
		{"duplicates collapse", withOther, []int{1, 1, 0}, "", []int{1, 0}, ""},
		{"text only", withOther, nil, "D", []int{2}, "D"},
		{"vote without other keeps text for rejection", without, []int{0}, "D", []int{0}, "D"},
		{"vote without other keeps indices", without, []int{0, 2}, "", []int{0, 2}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, text := ApplyOther(tt.vote, tt.selected, tt.text)
			assert.Equal(t, tt.wantSel, sel)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestCheckResponse(t *testing.T) {
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	answered := fixedVote(1)
	answered.Responses = []models.VoteResponse{{UserID: "u1", SelectedOptions: []int{0}}}

	expired := fixedVote(1)
	expired.Deadline = &past

	open := fixedVote(2)
	open.Deadline = &future

	other := models.Vote{Options: []string{"A", "B"}, HasOther: true, Selection: models.MultipleSelection{}}

	tests := []struct {
		name    string
		vote    models.Vote
		resp    models.VoteResponse
		wantErr error
	}{
		{"valid fixed", open, models.VoteResponse{UserID: "u1", SelectedOptions: []int{0, 2}}, nil},
		{"valid other", other, models.VoteResponse{UserID: "u1", SelectedOptions: []int{2}, OtherText: "C"}, nil},
		{"expired", expired, models.VoteResponse{UserID: "u2", SelectedOptions: []int{0}}, ErrExpired},
		{"already responded", answered, models.VoteResponse{UserID: "u1", SelectedOptions: []int{1}}, ErrAlreadyResponded},
		{"other text not allowed", fixedVote(1), models.VoteResponse{UserID: "u1", SelectedOptions: []int{0}, OtherText: "x"}, ErrOtherNotAllowed},
		{"index past options", fixedVote(1), models.VoteResponse{UserID: "u1", SelectedOptions: []int{3}}, ErrOptionRange},
		{"negative index", fixedVote(1), models.VoteResponse{UserID: "u1", SelectedOptions: []int{-1}}, ErrOptionRange},
		{"empty selection", fixedVote(1), models.VoteResponse{UserID: "u1"}, ErrEmptySelection},
		{"too few for fixed", fixedVote(2), models.VoteResponse{UserID: "u1", SelectedOptions: []int{0}}, ErrSelectionSize},
		{"too many for fixed", fixedVote(1), models.VoteResponse{UserID: "u1", SelectedOptions: []int{0, 1}}, ErrSelectionSize},
		{"expired beats already responded", func() models.Vote { v := answered; v.Deadline = &past; return v }(),
			models.VoteResponse{UserID: "u1", SelectedOptions: []int{0}}, ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResponse(tt.vote, tt.resp, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckResponse_ErrorKinds(t *testing.T) {
	answered := fixedVote(1)
	answered.Responses = []models.VoteResponse{{UserID: "u1", SelectedOptions: []int{0}}}

	err := CheckResponse(answered, models.VoteResponse{UserID: "u1", SelectedOptions: []int{1}}, now)
	assert.True(t, errors.Is(err, common.ErrConflict))

	err = CheckResponse(fixedVote(2), models.VoteResponse{UserID: "u2", SelectedOptions: []int{1}}, now)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "exactly 2 required, got 1")
}

func TestCanSubmit(t *testing.T) {
	v := fixedVote(1)
	assert.True(t, CanSubmit(v, "u1", []int{0}, now))
	assert.False(t, CanSubmit(v, "u1", []int{0, 1}, now))

	v.Responses = []models.VoteResponse{{UserID: "u1", SelectedOptions: []int{0}}}
	assert.False(t, CanSubmit(v, "u1", []int{1}, now))
	assert.True(t, CanSubmit(v, "u2", []int{1}, now))
}

func TestValidateDraft(t *testing.T) {
	two := 2
	five := 5
	zero := 0

	base := models.VoteDraft{
		CreatorID:     "c",
		Question:      " Where? ",
		Options:       []string{" Park ", "", "Beach"},
		SelectionType: models.SelectionMultiple,
	}

	t.Run("valid draft is normalized", func(t *testing.T) {
		v, err := ValidateDraft(base)
		require.NoError(t, err)
		assert.Equal(t, "Where?", v.Question)
		assert.Equal(t, []string{"Park", "Beach"}, v.Options)
		assert.Equal(t, models.MultipleSelection{}, v.Selection)
		assert.Nil(t, v.Deadline)
		assert.Empty(t, v.ID)
	})

	t.Run("fixed with count", func(t *testing.T) {
		d := base
		d.SelectionType = models.SelectionFixed
		d.SelectionCount = &two
		d.Deadline = "2030-01-01"

		v, err := ValidateDraft(d)
		require.NoError(t, err)
		assert.Equal(t, models.FixedSelection{Count: 2}, v.Selection)
		require.NotNil(t, v.Deadline)
		assert.Equal(t, 2030, v.Deadline.Year())
	})

	tests := []struct {
		name    string
		mutate  func(d *models.VoteDraft)
		wantErr error
	}{
		{"missing creator", func(d *models.VoteDraft) { d.CreatorID = " " }, ErrMissingCreator},
		{"blank question", func(d *models.VoteDraft) { d.Question = "" }, ErrEmptyQuestion},
		{"one real option", func(d *models.VoteDraft) { d.Options = []string{"A", "  "} }, ErrTooFewOptions},
		{"fixed without count", func(d *models.VoteDraft) { d.SelectionType = models.SelectionFixed }, ErrSelectionCount},
		{"fixed count zero", func(d *models.VoteDraft) { d.SelectionType = models.SelectionFixed; d.SelectionCount = &zero }, ErrSelectionCount},
		{"fixed count above options", func(d *models.VoteDraft) { d.SelectionType = models.SelectionFixed; d.SelectionCount = &five }, ErrSelectionCount},
		{"unknown type", func(d *models.VoteDraft) { d.SelectionType = "ranked" }, ErrSelectionType},
		{"bad deadline", func(d *models.VoteDraft) { d.Deadline = "soon" }, ErrInvalidDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Options = append([]string(nil), base.Options...)
			tt.mutate(&d)

			_, err := ValidateDraft(d)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}
