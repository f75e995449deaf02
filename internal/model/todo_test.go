package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoPatch_UnmarshalDistinguishesOmittedFromNull(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(*testing.T, TodoPatch)
	}{
		{
			name: "omitted fields stay unset",
			body: `{"title":"x"}`,
			check: func(t *testing.T, p TodoPatch) {
				require.NotNil(t, p.Title)
				assert.Equal(t, "x", *p.Title)
				assert.False(t, p.DescriptionSet)
				assert.False(t, p.EndDateSet)
				assert.False(t, p.TagsSet)
				assert.Nil(t, p.IsCompleted)
			},
		},
		{
			name: "explicit null clears",
			body: `{"endDate":null,"description":null}`,
			check: func(t *testing.T, p TodoPatch) {
				assert.True(t, p.EndDateSet)
				assert.Nil(t, p.EndDate)
				assert.True(t, p.DescriptionSet)
				assert.Nil(t, p.Description)
				assert.Nil(t, p.Title)
			},
		},
		{
			name: "set values carry through",
			body: `{"isCompleted":true,"isPinned":false,"endDate":"2024-05-01","tags":["Work"]}`,
			check: func(t *testing.T, p TodoPatch) {
				require.NotNil(t, p.IsCompleted)
				assert.True(t, *p.IsCompleted)
				require.NotNil(t, p.IsPinned)
				assert.False(t, *p.IsPinned)
				require.True(t, p.EndDateSet)
				assert.Equal(t, NewDate(2024, time.May, 1), *p.EndDate)
				assert.True(t, p.TagsSet)
				assert.Equal(t, []string{"Work"}, p.Tags)
			},
		},
		{
			name: "empty object is an empty patch",
			body: `{}`,
			check: func(t *testing.T, p TodoPatch) {
				assert.True(t, p.Empty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p TodoPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			tt.check(t, p)
		})
	}
}

func TestTodoPatch_ApplyTo(t *testing.T) {
	end := NewDate(2024, time.May, 1)
	stored := Todo{
		Title:       "original",
		Description: "long text",
		EndDate:     &end,
		IsCompleted: false,
		IsPinned:    true,
		Tags:        []string{"Work"},
	}

	newTitle := "changed"
	done := true
	patch := TodoPatch{
		Title:       &newTitle,
		IsCompleted: &done,
		EndDateSet:  true, // null → clear
	}

	merged := patch.ApplyTo(stored)

	assert.Equal(t, "changed", merged.Title)
	assert.True(t, merged.IsCompleted)
	assert.Nil(t, merged.EndDate)
	// Untouched fields keep stored values.
	assert.Equal(t, "long text", merged.Description)
	assert.True(t, merged.IsPinned)
	assert.Equal(t, []string{"Work"}, merged.Tags)
	// Input is not mutated.
	assert.Equal(t, "original", stored.Title)
	assert.NotNil(t, stored.EndDate)
}
