// Package organizer turns a user's full todo collection into the ordered,
// grouped view the client renders: filter, split pinned from unpinned, sort
// each group with the same comparator.
package organizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/BuzzLyutic/todo-api/internal/model"
)

type Filter string

const (
	FilterAll        Filter = "all"
	FilterPinned     Filter = "pinned"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// ParseFilter maps the query-string value to a Filter; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPinned, FilterCompleted, FilterIncomplete:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

func (f Filter) matches(t model.Todo) bool {
	switch f {
	case FilterPinned:
		return t.IsPinned
	case FilterCompleted:
		return t.IsCompleted
	case FilterIncomplete:
		return !t.IsCompleted
	}
	return true
}

type Groups struct {
	Pinned   []model.Todo `json:"pinned"`
	Unpinned []model.Todo `json:"unpinned"`
}

// Organize filters the collection, partitions it by pin state and sorts each
// partition. The input slice is never mutated; both output groups are fresh
// slices, empty (not nil) when nothing matches.
func Organize(todos []model.Todo, filter Filter) Groups {
	g := Groups{
		Pinned:   []model.Todo{},
		Unpinned: []model.Todo{},
	}
	for _, t := range todos {
		if !filter.matches(t) {
			continue
		}
		if t.IsPinned {
			g.Pinned = append(g.Pinned, t)
		} else {
			g.Unpinned = append(g.Unpinned, t)
		}
	}

	now := time.Now()
	sortTodos(g.Pinned, now)
	sortTodos(g.Unpinned, now)
	return g
}

// sortTodos orders a group: incomplete before completed, then dated before
// undated, then earlier deadline first, then newer first. A zero CreatedAt
// is treated as "now" so records missing the timestamp sort as most recent.
func sortTodos(todos []model.Todo, now time.Time) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]

		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}

		aDated, bDated := a.EndDate != nil, b.EndDate != nil
		if aDated != bDated {
			return aDated
		}
		if aDated && bDated && *a.EndDate != *b.EndDate {
			return a.EndDate.Before(*b.EndDate)
		}

		return createdAtOrNow(a, now).After(createdAtOrNow(b, now))
	})
}

func createdAtOrNow(t model.Todo, now time.Time) time.Time {
	if t.CreatedAt.IsZero() {
		return now
	}
	return t.CreatedAt
}
