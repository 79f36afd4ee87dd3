// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"fmt"
	"slices"

	"github.com/danielhkuo/quickly-vote/common"
)

type Filter string

const (
	FilterAll             Filter = "all"
	FilterParticipated    Filter = "participated"
	FilterNotParticipated Filter = "not-participated"
	FilterActive          Filter = "active"
	FilterExpired         Filter = "expired"
)

// Filters is an ordered set of filters. It holds either exactly FilterAll
// or one or more of the other filters, never both.
type Filters []Filter

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterParticipated, FilterNotParticipated, FilterActive, FilterExpired:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown filter %q", common.ErrValidation, s)
}

// ParseFilters builds a filter set from query values.
// No values, or any "all", yields the all set.
func ParseFilters(values []string) (Filters, error) {
	set := Filters{}
	for _, v := range values {
		f, err := ParseFilter(v)
		if err != nil {
			return nil, err
		}
		if f == FilterAll {
			return Filters{FilterAll}, nil
		}
		if !set.Has(f) {
			set = append(set, f)
		}
	}
	if len(set) == 0 {
		return Filters{FilterAll}, nil
	}
	return set, nil
}

func (fs Filters) Has(f Filter) bool {
	return slices.Contains(fs, f)
}

// IsAll reports whether the set lets every vote through
func (fs Filters) IsAll() bool {
	return len(fs) == 0 || fs.Has(FilterAll)
}

// Toggle flips f in the set. Selecting all clears everything else,
// selecting anything else clears all, and an emptied set falls back to all.
func (fs Filters) Toggle(f Filter) Filters {
	if f == FilterAll {
		return Filters{FilterAll}
	}

	var next Filters
	switch {
	case fs.IsAll():
		next = Filters{f}
	case fs.Has(f):
		next = slices.DeleteFunc(slices.Clone(fs), func(x Filter) bool { return x == f })
	default:
		next = append(slices.Clone(fs), f)
	}

	if len(next) == 0 {
		return Filters{FilterAll}
	}
	return next
}
