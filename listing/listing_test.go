// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return now.Add(time.Duration(minutes) * time.Minute)
}

func vote(question string, created time.Time, deadline *time.Time, responders ...string) models.Vote {
	v := models.Vote{ID: question, Question: question, CreatedAt: created, Deadline: deadline}
	for _, u := range responders {
		v.Responses = append(v.Responses, models.VoteResponse{UserID: u, SelectedOptions: []int{0}})
	}
	return v
}

func questions(votes []models.Vote) []string {
	out := make([]string, len(votes))
	for i, v := range votes {
		out[i] = v.Question
	}
	return out
}

func fixture() []models.Vote {
	past := at(-10)
	future := at(10)
	return []models.Vote{
		vote("banana bread", at(-300), nil, "me", "x"),
		vote("Apple pie", at(-200), &past, "x", "y", "z"),
		vote("cherry tart", at(-100), &future),
		vote("Éclair", at(-50), nil, "me"),
	}
}

func TestParseFilters(t *testing.T) {
	fs, err := ParseFilters(nil)
	require.NoError(t, err)
	assert.Equal(t, Filters{FilterAll}, fs)

	fs, err = ParseFilters([]string{"active", "participated", "active"})
	require.NoError(t, err)
	assert.Equal(t, Filters{FilterActive, FilterParticipated}, fs)

	fs, err = ParseFilters([]string{"expired", "all"})
	require.NoError(t, err)
	assert.True(t, fs.IsAll())
	assert.Len(t, fs, 1)

	_, err = ParseFilters([]string{"hot"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestFiltersToggle(t *testing.T) {
	all := Filters{FilterAll}

	fs := all.Toggle(FilterActive)
	assert.Equal(t, Filters{FilterActive}, fs, "selecting a filter clears all")

	fs = fs.Toggle(FilterParticipated)
	assert.Equal(t, Filters{FilterActive, FilterParticipated}, fs)

	fs = fs.Toggle(FilterActive)
	assert.Equal(t, Filters{FilterParticipated}, fs)

	fs = fs.Toggle(FilterParticipated)
	assert.Equal(t, all, fs, "an emptied set falls back to all")

	fs = Filters{FilterExpired, FilterActive}.Toggle(FilterAll)
	assert.Equal(t, all, fs, "selecting all clears everything else")

	original := Filters{FilterExpired}
	_ = original.Toggle(FilterActive)
	assert.Equal(t, Filters{FilterExpired}, original, "toggle does not modify the receiver")
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, k)

	for _, s := range []string{"popular", "newest", "oldest", "a-z", "z-a"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err = ParseSortKey("random")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestView(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "default is newest first",
			query: Query{},
			want:  []string{"Éclair", "cherry tart", "Apple pie", "banana bread"},
		},
		{
			name:  "oldest",
			query: Query{Sort: SortOldest},
			want:  []string{"banana bread", "Apple pie", "cherry tart", "Éclair"},
		},
		{
			name:  "popular is most responses first",
			query: Query{Sort: SortPopular},
			want:  []string{"Apple pie", "banana bread", "Éclair", "cherry tart"},
		},
		{
			name:  "a-z collates case and accents",
			query: Query{Sort: SortAZ},
			want:  []string{"Apple pie", "banana bread", "cherry tart", "Éclair"},
		},
		{
			name:  "z-a",
			query: Query{Sort: SortZA},
			want:  []string{"Éclair", "cherry tart", "banana bread", "Apple pie"},
		},
		{
			name:  "search is a case-insensitive substring",
			query: Query{Search: "PIE", Sort: SortAZ},
			want:  []string{"Apple pie"},
		},
		{
			name:  "participated",
			query: Query{Filters: Filters{FilterParticipated}, Viewer: "me", Sort: SortAZ},
			want:  []string{"banana bread", "Éclair"},
		},
		{
			name:  "not participated",
			query: Query{Filters: Filters{FilterNotParticipated}, Viewer: "me", Sort: SortAZ},
			want:  []string{"Apple pie", "cherry tart"},
		},
		{
			name:  "no viewer has participated in nothing",
			query: Query{Filters: Filters{FilterParticipated}},
			want:  []string{},
		},
		{
			name:  "active",
			query: Query{Filters: Filters{FilterActive}, Sort: SortAZ},
			want:  []string{"banana bread", "cherry tart", "Éclair"},
		},
		{
			name:  "expired",
			query: Query{Filters: Filters{FilterExpired}},
			want:  []string{"Apple pie"},
		},
		{
			name:  "filters are OR'ed",
			query: Query{Filters: Filters{FilterExpired, FilterParticipated}, Viewer: "me", Sort: SortOldest},
			want:  []string{"banana bread", "Apple pie", "Éclair"},
		},
		{
			name:  "search and filter compose",
			query: Query{Search: "a", Filters: Filters{FilterActive}, Sort: SortZA},
			want:  []string{"Éclair", "cherry tart", "banana bread"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.query
			q.Now = now
			q.Locale = language.English

			got := questions(View(fixture(), q))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("View() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func ids(votes []models.Vote) []string {
	out := make([]string, len(votes))
	for i, v := range votes {
		out[i] = v.ID
	}
	return out
}

func TestView_StableForEqualKeys(t *testing.T) {
	named := func(id string, v models.Vote) models.Vote {
		v.ID = id
		return v
	}

	tests := []struct {
		name  string
		votes []models.Vote
		sort  SortKey
	}{
		{
			name: "popular with equal response counts",
			votes: []models.Vote{
				named("v1", vote("tea", at(-30), nil, "a")),
				named("v2", vote("coffee", at(-10), nil, "b")),
				named("v3", vote("juice", at(-20), nil, "c")),
			},
			sort: SortPopular,
		},
		{
			name: "newest with equal createdAt",
			votes: []models.Vote{
				named("v1", vote("tea", at(-30), nil)),
				named("v2", vote("coffee", at(-30), nil)),
				named("v3", vote("juice", at(-30), nil)),
			},
			sort: SortNewest,
		},
		{
			name: "oldest with equal createdAt",
			votes: []models.Vote{
				named("v1", vote("tea", at(-30), nil)),
				named("v2", vote("coffee", at(-30), nil)),
				named("v3", vote("juice", at(-30), nil)),
			},
			sort: SortOldest,
		},
		{
			name: "a-z with identical questions",
			votes: []models.Vote{
				named("v1", vote("lunch?", at(-10), nil)),
				named("v2", vote("lunch?", at(-30), nil)),
				named("v3", vote("lunch?", at(-20), nil)),
			},
			sort: SortAZ,
		},
		{
			name: "z-a with identical questions",
			votes: []models.Vote{
				named("v1", vote("lunch?", at(-10), nil)),
				named("v2", vote("lunch?", at(-30), nil)),
				named("v3", vote("lunch?", at(-20), nil)),
			},
			sort: SortZA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(View(tt.votes, Query{Sort: tt.sort, Now: now, Locale: language.English}))
			if diff := cmp.Diff([]string{"v1", "v2", "v3"}, got); diff != "" {
				t.Errorf("View() reordered equal keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestView_DoesNotMutateInput(t *testing.T) {
	votes := fixture()
	before := questions(votes)

	_ = View(votes, Query{Sort: SortAZ, Now: now, Locale: language.English})

	if diff := cmp.Diff(before, questions(votes)); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
}

func TestView_DeadlineBoundary(t *testing.T) {
	deadline := now
	votes := []models.Vote{vote("edge", at(-5), &deadline)}

	active := View(votes, Query{Filters: Filters{FilterActive}, Now: now})
	assert.Len(t, active, 1, "a vote is still active at its deadline instant")

	expired := View(votes, Query{Filters: Filters{FilterExpired}, Now: now.Add(time.Nanosecond)})
	assert.Len(t, expired, 1)
}

func TestCreatedBy(t *testing.T) {
	votes := []models.Vote{
		{ID: "1", CreatorID: "a"},
		{ID: "2", CreatorID: "b"},
		{ID: "3", CreatorID: "a"},
	}

	got := CreatedBy(votes, "a")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Empty(t, CreatedBy(votes, "nobody"))
	assert.NotNil(t, CreatedBy(nil, "a"))
}
