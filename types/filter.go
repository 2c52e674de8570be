package types

import "strings"

// Filter selects records by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the accepted filter values in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter returns the Filter named by value.
// The second result is false for anything outside all, active and completed.
func ParseFilter(value string) (Filter, bool) {
	switch Filter(value) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(value), true
	}
	return "", false
}

// Matches reports whether t belongs to the filter's status group.
func (f Filter) Matches(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterAll:
		return true
	default:
		return false
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// MatchesKeyword reports whether text contains keyword, ignoring case and
// surrounding whitespace on both sides. An empty keyword matches everything.
func MatchesKeyword(text, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(text)), keyword)
}

// View is the view state applied to the canonical list.
type View struct {
	Filter  Filter
	Keyword string
}

// Includes reports whether t is visible under the view.
func (v View) Includes(t Todo) bool {
	return v.Filter.Matches(t) && MatchesKeyword(t.Text, v.Keyword)
}

// Apply returns the records of todos visible under the view, in order.
func (v View) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if v.Includes(t) {
			out = append(out, t)
		}
	}
	return out
}

// Indices returns the canonical index of every visible record, in order.
// Position i of the result is the canonical index of filtered-view position i.
func (v View) Indices(todos []Todo) []int {
	out := make([]int, 0, len(todos))
	for i, t := range todos {
		if v.Includes(t) {
			out = append(out, i)
		}
	}
	return out
}
