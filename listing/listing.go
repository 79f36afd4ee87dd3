// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
)

type SortKey string

const (
	SortPopular SortKey = "popular"
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortAZ      SortKey = "a-z"
	SortZA      SortKey = "z-a"
)

// ParseSortKey accepts one of the sort keys. Empty means newest first.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	switch k := SortKey(s); k {
	case SortPopular, SortNewest, SortOldest, SortAZ, SortZA:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", common.ErrValidation, s)
}

type Query struct {
	Search  string
	Filters Filters
	Sort    SortKey
	// Viewer decides participated / not-participated; empty means nobody
	Viewer string
	Now    time.Time
	// Locale drives the a-z / z-a collation
	Locale language.Tag
}

// View returns the votes that match q, sorted by q.Sort.
// votes is not modified. Sorting is stable, so ties keep their input order.
func View(votes []models.Vote, q Query) []models.Vote {
	search := strings.ToLower(q.Search)

	result := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		if search != "" && !strings.Contains(strings.ToLower(v.Question), search) {
			continue
		}
		if !q.Filters.IsAll() && !matchesAny(v, q) {
			continue
		}
		result = append(result, v)
	}

	sortVotes(result, q)
	return result
}

// CreatedBy returns the votes whose creator is userID, in input order
func CreatedBy(votes []models.Vote, userID string) []models.Vote {
	result := []models.Vote{}
	for _, v := range votes {
		if v.CreatorID == userID {
			result = append(result, v)
		}
	}
	return result
}

// matchesAny ORs the active filters
func matchesAny(v models.Vote, q Query) bool {
	participated := q.Viewer != "" && v.HasResponded(q.Viewer)
	expired := v.IsExpired(q.Now)

	for _, f := range q.Filters {
		switch f {
		case FilterParticipated:
			if participated {
				return true
			}
		case FilterNotParticipated:
			if !participated {
				return true
			}
		case FilterActive:
			if !expired {
				return true
			}
		case FilterExpired:
			if expired {
				return true
			}
		}
	}
	return false
}

func sortVotes(votes []models.Vote, q Query) {
	switch q.Sort {
	case SortPopular:
		slices.SortStableFunc(votes, func(a, b models.Vote) int {
			return cmp.Compare(len(b.Responses), len(a.Responses))
		})
	case SortOldest:
		slices.SortStableFunc(votes, func(a, b models.Vote) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortAZ, SortZA:
		// Collators keep internal buffers, so each view gets its own
		c := collate.New(q.Locale)
		sign := 1
		if q.Sort == SortZA {
			sign = -1
		}
		slices.SortStableFunc(votes, func(a, b models.Vote) int {
			return sign * c.CompareString(a.Question, b.Question)
		})
	default:
		slices.SortStableFunc(votes, func(a, b models.Vote) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
