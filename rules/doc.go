// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules decides who may respond to a vote, what a valid selection
is, and whether a creation draft is acceptable.

# Submissions

A response is rejected when:

  - the vote has a deadline strictly before now (ErrExpired)
  - the user already has a response on the vote (ErrAlreadyResponded)
  - an index is neither a listed option nor the enabled other slot
  - a fixed vote gets anything but exactly Count choices
  - a multiple vote gets no choice at all

Free-text answers are folded in first:

	selected, text := rules.ApplyOther(vote, req.SelectedOptions, req.OtherText)
	err := rules.CheckResponse(vote, models.VoteResponse{...}, time.Now())

# Drafts

ValidateDraft trims the question and options, drops blank options and
requires at least two, and checks 1 <= selectionCount <= len(options) for
fixed votes.

All errors wrap common.ErrValidation or common.ErrConflict.
*/
package rules
