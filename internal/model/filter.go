package model

import "fmt"

// Filter selects which tasks are shown based on completion
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter converts a filter name, rejecting unknown values
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s), nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Valid reports whether f is one of the known filters
func (f Filter) Valid() bool {
	_, err := ParseFilter(string(f))
	return err == nil
}

// Allows returns true if a task passes the filter
func (f Filter) Allows(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f, wrapping around
func (f Filter) Next() Filter {
	all := Filters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// Label returns the display name for a filter
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
