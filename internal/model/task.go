package model

import (
	"time"
)

// Priority represents task priority level (1 is the most pressing)
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// DefaultPriority is the priority a new task starts with in the form
const DefaultPriority = PriorityLow

// Valid reports whether p is within [PriorityHigh, PriorityLow]
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// String returns a short label for the priority
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Stars renders the priority the way the entry form does: one star per
// step of importance, so priority 1 shows three filled stars.
func (p Priority) Stars() string {
	if !p.Valid() {
		return "☆☆☆"
	}
	filled := 4 - int(p)
	s := ""
	for i := 0; i < 3; i++ {
		if i < filled {
			s += "★"
		} else {
			s += "☆"
		}
	}
	return s
}

// Task represents a todo item
type Task struct {
	ID       string
	Name     string
	IsDone   bool
	Priority Priority
	Deadline *time.Time // nil means no deadline
	Category string     // category name, empty when unset
}

// IsOverdue returns true if the task is still open and its deadline has passed.
// An overdue task is an ordinary state, not an error.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.IsDone {
		return false
	}
	return now.After(*t.Deadline)
}

// IsDueToday returns true if the deadline falls on the same calendar day as now
func (t *Task) IsDueToday(now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	d := t.Deadline.In(now.Location())
	return d.Year() == now.Year() && d.YearDay() == now.YearDay()
}

// Clone returns a copy that shares no memory with t
func (t Task) Clone() Task {
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}
