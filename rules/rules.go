// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrAlreadyResponded = fmt.Errorf("%w: user has already responded to this vote", common.ErrConflict)
	ErrExpired          = fmt.Errorf("%w: vote deadline has passed", common.ErrValidation)
	ErrEmptySelection   = fmt.Errorf("%w: at least one option must be selected", common.ErrValidation)
	ErrSelectionSize    = fmt.Errorf("%w: wrong number of selected options", common.ErrValidation)
	ErrOptionRange      = fmt.Errorf("%w: selected option does not exist", common.ErrValidation)
	ErrOtherNotAllowed  = fmt.Errorf("%w: vote does not accept other answers", common.ErrValidation)

	ErrMissingCreator  = fmt.Errorf("%w: creatorId is required", common.ErrValidation)
	ErrEmptyQuestion   = fmt.Errorf("%w: question is required", common.ErrValidation)
	ErrTooFewOptions   = fmt.Errorf("%w: at least 2 options are required", common.ErrValidation)
	ErrSelectionCount  = fmt.Errorf("%w: selectionCount out of range", common.ErrValidation)
	ErrSelectionType   = fmt.Errorf("%w: selectionType must be fixed or multiple", common.ErrValidation)
	ErrInvalidDeadline = fmt.Errorf("%w: invalid deadline", common.ErrValidation)
)

// ApplyOther folds the free-text answer into a selection.
// Duplicate indices collapse. When the vote accepts other answers, non-blank
// text adds the other index and blank text removes it.
func ApplyOther(v models.Vote, selected []int, otherText string) ([]int, string) {
	out := make([]int, 0, len(selected)+1)
	for _, idx := range selected {
		if !slices.Contains(out, idx) {
			out = append(out, idx)
		}
	}

	if strings.TrimSpace(otherText) == "" {
		otherText = ""
	}
	if !v.HasOther {
		return out, otherText
	}

	other := v.OtherIndex()
	if otherText != "" {
		if !slices.Contains(out, other) {
			out = append(out, other)
		}
	} else {
		out = slices.DeleteFunc(out, func(idx int) bool { return idx == other })
	}
	return out, otherText
}

// CheckResponse returns the first reason r may not be recorded on v, or nil.
// r is expected to have gone through ApplyOther.
func CheckResponse(v models.Vote, r models.VoteResponse, now time.Time) error {
	if v.IsExpired(now) {
		return ErrExpired
	}
	if v.HasResponded(r.UserID) {
		return ErrAlreadyResponded
	}
	if r.OtherText != "" && !v.HasOther {
		return ErrOtherNotAllowed
	}

	for _, idx := range r.SelectedOptions {
		valid := idx >= 0 && idx < len(v.Options)
		if v.HasOther && idx == v.OtherIndex() {
			valid = true
		}
		if !valid {
			return fmt.Errorf("%w: index %d", ErrOptionRange, idx)
		}
	}

	if len(r.SelectedOptions) == 0 {
		return ErrEmptySelection
	}
	if !selectionOf(v).Accepts(len(r.SelectedOptions)) {
		if fixed, ok := v.Selection.(models.FixedSelection); ok {
			return fmt.Errorf("%w: exactly %d required, got %d", ErrSelectionSize, fixed.Count, len(r.SelectedOptions))
		}
		return ErrSelectionSize
	}
	return nil
}

// CanSubmit reports whether userID may submit selection on v at time now
func CanSubmit(v models.Vote, userID string, selection []int, now time.Time) bool {
	return CheckResponse(v, models.VoteResponse{UserID: userID, SelectedOptions: selection}, now) == nil
}

// ValidateDraft checks a creation draft and returns the vote it describes,
// with trimmed question and options. Blank options are dropped.
// ID, CreatedAt and Responses are left for the caller to assign.
func ValidateDraft(d models.VoteDraft) (models.Vote, error) {
	if strings.TrimSpace(d.CreatorID) == "" {
		return models.Vote{}, ErrMissingCreator
	}

	question := strings.TrimSpace(d.Question)
	if question == "" {
		return models.Vote{}, ErrEmptyQuestion
	}

	options := make([]string, 0, len(d.Options))
	for _, opt := range d.Options {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return models.Vote{}, ErrTooFewOptions
	}

	var selection models.Selection
	switch d.SelectionType {
	case models.SelectionFixed:
		if d.SelectionCount == nil || *d.SelectionCount < 1 || *d.SelectionCount > len(options) {
			return models.Vote{}, fmt.Errorf("%w: must be between 1 and %d", ErrSelectionCount, len(options))
		}
		selection = models.FixedSelection{Count: *d.SelectionCount}
	case models.SelectionMultiple:
		selection = models.MultipleSelection{}
	default:
		return models.Vote{}, ErrSelectionType
	}

	deadline, err := models.ParseDeadline(d.Deadline)
	if err != nil {
		return models.Vote{}, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
	}

	return models.Vote{
		CreatorID: d.CreatorID,
		Question:  question,
		Options:   options,
		HasOther:  d.HasOther,
		Selection: selection,
		Deadline:  deadline,
	}, nil
}

func selectionOf(v models.Vote) models.Selection {
	if v.Selection == nil {
		return models.MultipleSelection{}
	}
	return v.Selection
}
