// Package tags holds the static catalog of labels a todo may carry. The
// catalog is compiled in and immutable; tasks reference entries by label.
package tags

type Tag struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Group string `json:"group"`
}

// Group clusters catalog entries for the selection UI, in catalog order.
type Group struct {
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

var catalog = []Tag{
	{Label: "Work", Color: "#2563eb", Icon: "💼", Group: "Category"},
	{Label: "Study", Color: "#22c55e", Icon: "📚", Group: "Category"},
	{Label: "Personal", Color: "#f59e42", Icon: "👤", Group: "Category"},
	{Label: "Home", Color: "#fbbf24", Icon: "🏠", Group: "Category"},
	{Label: "Health", Color: "#ef4444", Icon: "💊", Group: "Category"},
	{Label: "Projects", Color: "#a21caf", Icon: "🗂️", Group: "Category"},
	{Label: "Travel", Color: "#0ea5e9", Icon: "✈️", Group: "Category"},
	{Label: "Shopping", Color: "#f472b6", Icon: "🛒", Group: "Category"},
	{Label: "Finance", Color: "#16a34a", Icon: "💰", Group: "Category"},
	{Label: "Leisure", Color: "#f43f5e", Icon: "🎉", Group: "Category"},

	{Label: "Today", Color: "#f59e42", Icon: "⏰", Group: "Deadline"},
	{Label: "This Week", Color: "#0ea5e9", Icon: "📅", Group: "Deadline"},
	{Label: "This Month", Color: "#6366f1", Icon: "🗓️", Group: "Deadline"},
	{Label: "No Deadline", Color: "#64748b", Icon: "🕓", Group: "Deadline"},
	{Label: "Urgent", Color: "#ef4444", Icon: "🔥", Group: "Deadline"},

	{Label: "High Priority", Color: "#ef4444", Icon: "⬆️", Group: "Priority"},
	{Label: "Medium Priority", Color: "#f59e42", Icon: "⬆️", Group: "Priority"},
	{Label: "Low Priority", Color: "#22c55e", Icon: "⬇️", Group: "Priority"},

	{Label: "In Progress", Color: "#2563eb", Icon: "⚙️", Group: "Status"},
	{Label: "Pending", Color: "#f59e42", Icon: "⏳", Group: "Status"},
	{Label: "Done", Color: "#22c55e", Icon: "✅", Group: "Status"},
	{Label: "On Hold", Color: "#64748b", Icon: "⏸️", Group: "Status"},

	{Label: "Online", Color: "#2563eb", Icon: "🌐", Group: "Context"},
	{Label: "Offline", Color: "#64748b", Icon: "📴", Group: "Context"},
	{Label: "At the Office", Color: "#0ea5e9", Icon: "🏢", Group: "Context"},
	{Label: "At Home", Color: "#fbbf24", Icon: "🏠", Group: "Context"},
	{Label: "Errand", Color: "#f43f5e", Icon: "🚶", Group: "Context"},

	{Label: "Quick (5 min)", Color: "#22c55e", Icon: "⚡", Group: "Effort"},
	{Label: "Time-consuming", Color: "#6366f1", Icon: "⏱️", Group: "Effort"},
	{Label: "Needs Focus", Color: "#a21caf", Icon: "🧠", Group: "Effort"},
	{Label: "Recurring", Color: "#f59e42", Icon: "🔁", Group: "Effort"},

	{Label: "Ideas", Color: "#0ea5e9", Icon: "💡", Group: "Extra"},
	{Label: "Important", Color: "#ef4444", Icon: "⭐", Group: "Extra"},
	{Label: "Delegated", Color: "#fbbf24", Icon: "🤝", Group: "Extra"},
	{Label: "Scheduled", Color: "#2563eb", Icon: "📅", Group: "Extra"},
}

var byLabel = func() map[string]Tag {
	m := make(map[string]Tag, len(catalog))
	for _, t := range catalog {
		m[t.Label] = t
	}
	return m
}()

// All returns the catalog in its fixed order.
func All() []Tag {
	out := make([]Tag, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(label string) (Tag, bool) {
	t, ok := byLabel[label]
	return t, ok
}

func Valid(label string) bool {
	_, ok := byLabel[label]
	return ok
}

// Resolve maps labels to catalog entries, skipping labels the catalog does
// not know. Order of the input is preserved.
func Resolve(labels []string) []Tag {
	out := make([]Tag, 0, len(labels))
	for _, label := range labels {
		if t, ok := byLabel[label]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Grouped clusters the catalog by group, groups and members in catalog order.
func Grouped() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, t := range catalog {
		i, ok := index[t.Group]
		if !ok {
			i = len(groups)
			index[t.Group] = i
			groups = append(groups, Group{Name: t.Group})
		}
		groups[i].Tags = append(groups[i].Tags, t)
	}
	return groups
}
