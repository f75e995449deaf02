package organizer

import "github.com/BuzzLyutic/todo-api/internal/model"

// Urgency classifies how close a todo is to its due date.
type Urgency string

const (
	UrgencyNone    Urgency = "none"
	UrgencyWarning Urgency = "warning"
	UrgencyDanger  Urgency = "danger"
	UrgencyOverdue Urgency = "overdue"
)

// Classify maps the deadline of an open todo to an urgency bucket. Completed
// todos and todos without a deadline are never urgent. The comparison is
// date-only: both values are plain calendar dates, so no timezone offset can
// move a task across a day boundary. "today" is injected by the caller.
func Classify(end *model.Date, isCompleted bool, today model.Date) Urgency {
	if end == nil || isCompleted {
		return UrgencyNone
	}

	days := today.DaysUntil(*end)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 2:
		return UrgencyDanger
	case days <= 5:
		return UrgencyWarning
	}
	return UrgencyNone
}
