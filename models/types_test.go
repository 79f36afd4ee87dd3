// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionAccepts(t *testing.T) {
	fixed := FixedSelection{Count: 2}
	assert.False(t, fixed.Accepts(1))
	assert.True(t, fixed.Accepts(2))
	assert.False(t, fixed.Accepts(3))

	multiple := MultipleSelection{}
	assert.False(t, multiple.Accepts(0))
	assert.True(t, multiple.Accepts(1))
	assert.True(t, multiple.Accepts(10))
}

func TestNewSelection(t *testing.T) {
	two := 2

	s, err := NewSelection(SelectionFixed, &two)
	require.NoError(t, err)
	assert.Equal(t, FixedSelection{Count: 2}, s)

	s, err = NewSelection(SelectionMultiple, &two)
	require.NoError(t, err)
	assert.Equal(t, MultipleSelection{}, s)

	_, err = NewSelection(SelectionFixed, nil)
	assert.Error(t, err)

	_, err = NewSelection("ranked", nil)
	assert.Error(t, err)
}

func TestVoteJSONWireForm(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("fixed selection carries its count", func(t *testing.T) {
		v := Vote{ID: "v1", Question: "Q", Options: []string{"a", "b"},
			Selection: FixedSelection{Count: 1}, CreatedAt: created}

		data, err := json.Marshal(v)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, "fixed", raw["selectionType"])
		assert.EqualValues(t, 1, raw["selectionCount"])
		assert.Equal(t, []any{}, raw["responses"], "nil responses are written as an empty array")
		assert.NotContains(t, raw, "deadline")
	})

	t.Run("multiple selection omits the count", func(t *testing.T) {
		v := Vote{ID: "v2", Selection: MultipleSelection{}, CreatedAt: created}

		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "selectionCount")
		assert.Contains(t, string(data), `"selectionType":"multiple"`)
	})

	t.Run("decoding rebuilds the variant", func(t *testing.T) {
		var v Vote
		err := json.Unmarshal([]byte(`{"id":"v3","question":"Q","options":["a","b","c"],
			"hasOther":true,"selectionType":"fixed","selectionCount":2,
			"createdAt":"2025-03-01T10:00:00Z","responses":[{"userId":"u","selectedOptions":[0,3],"otherText":"x","timestamp":"2025-03-01T11:00:00Z"}]}`), &v)
		require.NoError(t, err)
		assert.Equal(t, FixedSelection{Count: 2}, v.Selection)
		assert.Equal(t, 3, v.OtherIndex())
		assert.True(t, v.HasResponded("u"))
		assert.False(t, v.HasResponded("someone-else"))
	})

	t.Run("fixed without count is rejected", func(t *testing.T) {
		var v Vote
		err := json.Unmarshal([]byte(`{"id":"v4","selectionType":"fixed"}`), &v)
		assert.Error(t, err)
	})
}

func TestVoteIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	after := now.Add(time.Second)

	assert.False(t, Vote{}.IsExpired(now), "no deadline never expires")
	assert.True(t, Vote{Deadline: &before}.IsExpired(now))
	assert.False(t, Vote{Deadline: &now}.IsExpired(now), "the deadline instant itself is still open")
	assert.False(t, Vote{Deadline: &after}.IsExpired(now))
}

func TestVoteClone(t *testing.T) {
	deadline := time.Now()
	v := Vote{
		Options:   []string{"a", "b"},
		Deadline:  &deadline,
		Responses: []VoteResponse{{UserID: "u", SelectedOptions: []int{0}}},
	}

	c := v.Clone()
	c.Options[0] = "changed"
	c.Responses[0].SelectedOptions[0] = 1
	*c.Deadline = deadline.Add(time.Hour)

	assert.Equal(t, "a", v.Options[0])
	assert.Equal(t, 0, v.Responses[0].SelectedOptions[0])
	assert.Equal(t, deadline, *v.Deadline)
}

func TestUserPublicDropsPassword(t *testing.T) {
	u := User{ID: "1", Username: "alice", Password: "secret"}

	data, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "empty", input: "", wantNil: true},
		{name: "blank", input: "  ", wantNil: true},
		{name: "rfc3339", input: "2025-05-01T10:30:00Z", want: time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)},
		{name: "datetime-local", input: "2025-05-01T10:30", want: time.Date(2025, 5, 1, 10, 30, 0, 0, time.Local)},
		{name: "with seconds", input: "2025-05-01T10:30:15", want: time.Date(2025, 5, 1, 10, 30, 15, 0, time.Local)},
		{name: "date only", input: "2025-05-01", want: time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)},
		{name: "garbage", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadline(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s, got %s", tt.want, got)
		})
	}
}
