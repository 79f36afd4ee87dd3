// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - User: registered account (id, username, password, joinDate)
  - PublicUser: User without the password, safe to return
  - Vote: a poll with ordered options and its responses
  - VoteResponse: one user's answer to a vote
  - VoteStats: per-option counts, free-text answers and total

# Selection

A vote's Selection is one of two variants:

	FixedSelection{Count: 2} // exactly two choices
	MultipleSelection{}      // one or more choices

On the wire the variant is flattened to selectionType ("fixed" or
"multiple") and selectionCount, which is present only for fixed votes:

	{"selectionType": "fixed", "selectionCount": 2}

# Other Answers

When HasOther is set, the index len(Options) stands for the free-text
"other" slot. OtherIndex returns it.

# Request Types

  - CredentialsRequest: username, password
  - VoteDraft: a vote without id, createdAt and responses
  - RespondRequest: voteId, userId, selectedOptions, otherText

Draft deadlines are parsed with ParseDeadline, which accepts RFC 3339 as
well as the zone-less forms produced by HTML date inputs.

# Response Types

  - UserResponse: user, token
  - UsersResponse: users
  - VoteEnvelope: vote
  - VotesResponse: votes
  - RespondResponse: success
  - StatsResponse: voteId, stats
  - ErrorResponse: error (readable reason), message (HTTP status text)
*/
package models
