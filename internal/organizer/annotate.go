package organizer

import (
	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/tags"
)

// descriptionLimit is the display cutoff; longer descriptions are truncated
// and flagged so the client can offer an expand toggle.
const descriptionLimit = 100

// AnnotatedTodo is a todo plus the derived state the client renders:
// urgency class, the truncated description preview, and the resolved
// catalog entries for its tags (unknown labels are skipped).
type AnnotatedTodo struct {
	model.Todo
	Urgency              Urgency    `json:"urgency"`
	DisplayDescription   string     `json:"displayDescription"`
	DescriptionTruncated bool       `json:"descriptionTruncated"`
	ResolvedTags         []tags.Tag `json:"resolvedTags"`
}

type AnnotatedGroups struct {
	Pinned   []AnnotatedTodo `json:"pinned"`
	Unpinned []AnnotatedTodo `json:"unpinned"`
}

// Annotate derives display state for every todo in the groups, classifying
// deadlines against the injected today.
func Annotate(g Groups, today model.Date) AnnotatedGroups {
	return AnnotatedGroups{
		Pinned:   annotateAll(g.Pinned, today),
		Unpinned: annotateAll(g.Unpinned, today),
	}
}

func annotateAll(todos []model.Todo, today model.Date) []AnnotatedTodo {
	out := make([]AnnotatedTodo, 0, len(todos))
	for _, t := range todos {
		preview, truncated := truncateDescription(t.Description)
		out = append(out, AnnotatedTodo{
			Todo:                 t,
			Urgency:              Classify(t.EndDate, t.IsCompleted, today),
			DisplayDescription:   preview,
			DescriptionTruncated: truncated,
			ResolvedTags:         tags.Resolve(t.Tags),
		})
	}
	return out
}

func truncateDescription(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s, false
	}
	return string(runes[:descriptionLimit]), true
}
