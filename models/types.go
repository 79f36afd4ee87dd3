// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Selection type constants
const (
	SelectionFixed    = "fixed"
	SelectionMultiple = "multiple"
)

// Selection describes how many options a response must pick.
// It is either FixedSelection or MultipleSelection.
type Selection interface {
	Type() string
	// Accepts reports whether a selection of size n is allowed.
	Accepts(n int) bool
}

// FixedSelection requires exactly Count choices.
type FixedSelection struct {
	Count int
}

func (FixedSelection) Type() string { return SelectionFixed }

func (s FixedSelection) Accepts(n int) bool { return n == s.Count }

// MultipleSelection requires at least one choice.
type MultipleSelection struct{}

func (MultipleSelection) Type() string { return SelectionMultiple }

func (MultipleSelection) Accepts(n int) bool { return n >= 1 }

// NewSelection builds a Selection from its flattened wire form.
// count is only consulted for fixed selections.
func NewSelection(selectionType string, count *int) (Selection, error) {
	switch selectionType {
	case SelectionFixed:
		if count == nil {
			return nil, fmt.Errorf("selectionCount is required for fixed selection")
		}
		return FixedSelection{Count: *count}, nil
	case SelectionMultiple:
		return MultipleSelection{}, nil
	default:
		return nil, fmt.Errorf("unknown selectionType %q", selectionType)
	}
}

// Domain types

type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	JoinDate time.Time `json:"joinDate"`
}

// PublicUser is a User without its password
type PublicUser struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	JoinDate time.Time `json:"joinDate"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, JoinDate: u.JoinDate}
}

// Vote is a poll: a question, its options and the responses collected so far.
// An option index equal to len(Options) denotes the "other" slot when HasOther is set.
type Vote struct {
	ID        string
	CreatorID string
	Question  string
	Options   []string
	HasOther  bool
	Selection Selection
	Deadline  *time.Time
	CreatedAt time.Time
	Responses []VoteResponse
}

type VoteResponse struct {
	UserID          string    `json:"userId"`
	SelectedOptions []int     `json:"selectedOptions"`
	OtherText       string    `json:"otherText,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type voteJSON struct {
	ID             string         `json:"id"`
	CreatorID      string         `json:"creatorId"`
	Question       string         `json:"question"`
	Options        []string       `json:"options"`
	HasOther       bool           `json:"hasOther"`
	SelectionType  string         `json:"selectionType"`
	SelectionCount *int           `json:"selectionCount,omitempty"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	Responses      []VoteResponse `json:"responses"`
}

// OtherIndex is the synthetic option index used for free-text answers
func (v Vote) OtherIndex() int {
	return len(v.Options)
}

// HasResponded reports whether userID already has a response on the vote
func (v Vote) HasResponded(userID string) bool {
	for _, r := range v.Responses {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// IsExpired reports whether the deadline is strictly before now
func (v Vote) IsExpired(now time.Time) bool {
	return v.Deadline != nil && v.Deadline.Before(now)
}

// SelectionFields flattens the selection into its wire form
func (v Vote) SelectionFields() (string, *int) {
	switch s := v.Selection.(type) {
	case FixedSelection:
		count := s.Count
		return SelectionFixed, &count
	default:
		return SelectionMultiple, nil
	}
}

func (v Vote) MarshalJSON() ([]byte, error) {
	selectionType, selectionCount := v.SelectionFields()
	responses := v.Responses
	if responses == nil {
		responses = []VoteResponse{}
	}
	return json.Marshal(voteJSON{
		ID:             v.ID,
		CreatorID:      v.CreatorID,
		Question:       v.Question,
		Options:        v.Options,
		HasOther:       v.HasOther,
		SelectionType:  selectionType,
		SelectionCount: selectionCount,
		Deadline:       v.Deadline,
		CreatedAt:      v.CreatedAt,
		Responses:      responses,
	})
}

func (v *Vote) UnmarshalJSON(data []byte) error {
	var w voteJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	selection, err := NewSelection(w.SelectionType, w.SelectionCount)
	if err != nil {
		return err
	}
	*v = Vote{
		ID:        w.ID,
		CreatorID: w.CreatorID,
		Question:  w.Question,
		Options:   w.Options,
		HasOther:  w.HasOther,
		Selection: selection,
		Deadline:  w.Deadline,
		CreatedAt: w.CreatedAt,
		Responses: w.Responses,
	}
	return nil
}

// Clone returns a deep copy so stores never share slices with callers
func (v Vote) Clone() Vote {
	c := v
	c.Options = append([]string(nil), v.Options...)
	if v.Deadline != nil {
		d := *v.Deadline
		c.Deadline = &d
	}
	c.Responses = make([]VoteResponse, len(v.Responses))
	for i, r := range v.Responses {
		r.SelectedOptions = append([]int(nil), r.SelectedOptions...)
		c.Responses[i] = r
	}
	return c
}

// VoteStats is the aggregated view of a vote's responses
type VoteStats struct {
	OptionCounts   []int    `json:"optionCounts"`
	OtherResponses []string `json:"otherResponses"`
	TotalVotes     int      `json:"totalVotes"`
}

// Request types

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VoteDraft is the body of POST /votes: a vote without id, createdAt and responses
type VoteDraft struct {
	CreatorID      string   `json:"creatorId"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	HasOther       bool     `json:"hasOther"`
	SelectionType  string   `json:"selectionType"`
	SelectionCount *int     `json:"selectionCount,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
}

type RespondRequest struct {
	VoteID          string `json:"voteId"`
	UserID          string `json:"userId"`
	SelectedOptions []int  `json:"selectedOptions"`
	OtherText       string `json:"otherText,omitempty"`
}

// Response types

type UserResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token,omitempty"`
}

type UsersResponse struct {
	Users []PublicUser `json:"users"`
}

type VoteEnvelope struct {
	Vote Vote `json:"vote"`
}

type VotesResponse struct {
	Votes []Vote `json:"votes"`
}

type RespondResponse struct {
	Success bool `json:"success"`
}

type StatsResponse struct {
	VoteID  string    `json:"voteId"`
	Stats   VoteStats `json:"stats"`
	Leading []int     `json:"leading"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
