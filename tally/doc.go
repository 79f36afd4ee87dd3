// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes vote results.

Aggregate is a pure function of a vote's current responses:

	stats := tally.Aggregate(vote)
	// stats.OptionCounts[i]  responses that chose option i
	// stats.OtherResponses   non-empty free-text answers, in order
	// stats.TotalVotes       number of responses

The synthetic "other" index (len(vote.Options)) is never counted in
OptionCounts. Results are recomputed on every call, so a tally can never
drift from the stored responses.
*/
package tally
