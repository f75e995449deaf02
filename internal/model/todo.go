package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   *Date     `json:"startDate,omitempty"`
	EndDate     *Date     `json:"endDate,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	IsPinned    bool      `json:"isPinned"`
	Tags        []string  `json:"tags,omitempty"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoInput carries the client-settable fields of a new todo. Completion and
// pin state always start false.
type TodoInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   *Date    `json:"startDate"`
	EndDate     *Date    `json:"endDate"`
	Tags        []string `json:"tags"`
}

// TodoPatch is a partial update. A nil pointer with a false Set flag means
// the field was omitted and keeps its stored value; nullable fields carry a
// Set flag so "set to null" can be told apart from "omitted".
type TodoPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	StartDate      *Date
	StartDateSet   bool
	EndDate        *Date
	EndDateSet     bool
	IsCompleted    *bool
	IsPinned       *bool
	Tags           []string
	TagsSet        bool
}

func (p *TodoPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var fields struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		StartDate   *Date    `json:"startDate"`
		EndDate     *Date    `json:"endDate"`
		IsCompleted *bool    `json:"isCompleted"`
		IsPinned    *bool    `json:"isPinned"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = TodoPatch{
		Title:          fields.Title,
		Description:    fields.Description,
		DescriptionSet: hasField(raw, "description"),
		StartDate:      fields.StartDate,
		StartDateSet:   hasField(raw, "startDate"),
		EndDate:        fields.EndDate,
		EndDateSet:     hasField(raw, "endDate"),
		IsCompleted:    fields.IsCompleted,
		IsPinned:       fields.IsPinned,
		Tags:           fields.Tags,
		TagsSet:        hasField(raw, "tags"),
	}
	return nil
}

func (p TodoPatch) Empty() bool {
	return p.Title == nil &&
		!p.DescriptionSet &&
		!p.StartDateSet &&
		!p.EndDateSet &&
		p.IsCompleted == nil &&
		p.IsPinned == nil &&
		!p.TagsSet
}

// ApplyTo merges the patch into a copy of t. Omitted fields are untouched;
// fields set to null clear the stored value.
func (p TodoPatch) ApplyTo(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DescriptionSet {
		if p.Description != nil {
			t.Description = *p.Description
		} else {
			t.Description = ""
		}
	}
	if p.StartDateSet {
		t.StartDate = p.StartDate
	}
	if p.EndDateSet {
		t.EndDate = p.EndDate
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.IsPinned != nil {
		t.IsPinned = *p.IsPinned
	}
	if p.TagsSet {
		t.Tags = p.Tags
	}
	return t
}

func hasField(raw map[string]json.RawMessage, name string) bool {
	_, ok := raw[name]
	return ok
}
