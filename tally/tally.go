// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/danielhkuo/quickly-vote/models"

// Aggregate counts how often each listed option was chosen and collects
// the free-text "other" answers in response order.
// It always rescans every response; nothing is cached between calls.
func Aggregate(v models.Vote) models.VoteStats {
	counts := make([]int, len(v.Options))
	others := []string{}

	for _, r := range v.Responses {
		for _, idx := range r.SelectedOptions {
			// The other slot and anything past it is not a listed option
			if idx >= 0 && idx < len(counts) {
				counts[idx]++
			}
		}
		if r.OtherText != "" {
			others = append(others, r.OtherText)
		}
	}

	return models.VoteStats{
		OptionCounts:   counts,
		OtherResponses: others,
		TotalVotes:     len(v.Responses),
	}
}

// Leading returns the indices of the listed options with the highest count.
// It is empty when no listed option has been chosen yet.
func Leading(stats models.VoteStats) []int {
	best := 0
	for _, c := range stats.OptionCounts {
		if c > best {
			best = c
		}
	}
	if best == 0 {
		return []int{}
	}

	leaders := []int{}
	for i, c := range stats.OptionCounts {
		if c == best {
			leaders = append(leaders, i)
		}
	}
	return leaders
}
