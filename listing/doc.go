// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package listing filters and sorts vote lists for display.

# Filters

	all               every vote (exclusive with the others)
	participated      the viewer has responded
	not-participated  the viewer has not responded
	active            no deadline, or deadline not yet passed
	expired           deadline strictly before now

Several non-all filters are combined with OR. Filters.Toggle reproduces the
filter chips of the web client: picking all clears the rest, picking any
other filter clears all, and removing the last one brings all back.

# Sorting

	popular   most responses first
	newest    latest createdAt first (default)
	oldest    earliest createdAt first
	a-z, z-a  question text, collated for Query.Locale

Sorting runs after filtering and is stable.

# Search

Query.Search is a case-insensitive substring match on the question.
*/
package listing
