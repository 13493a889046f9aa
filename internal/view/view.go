// Package view derives filtered, sorted and summarized views of a task list.
// Nothing here mutates its input; every function returns a fresh slice.
package view

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/model"
)

// AllCategories disables category filtering
const AllCategories = "all"

// Status selects tasks by completion
type Status int

const (
	StatusAll Status = iota
	StatusActive
	StatusCompleted
)

var statusNames = []string{"all", "active", "completed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Next cycles all → active → completed → all
func (s Status) Next() Status {
	return (s + 1) % Status(len(statusNames))
}

// ParseStatus accepts "all", "active" or "completed"
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if strings.EqualFold(s, name) {
			return Status(i), nil
		}
	}
	return StatusAll, fmt.Errorf("unknown status %q (want all, active or completed)", s)
}

// SortKey names the field a list is ordered by
type SortKey int

const (
	SortNone SortKey = iota
	SortDeadline
	SortPriority
)

var sortKeyNames = []string{"none", "deadline", "priority"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "unknown"
	}
	return sortKeyNames[k]
}

// Next cycles none → deadline → priority → none
func (k SortKey) Next() SortKey {
	return (k + 1) % SortKey(len(sortKeyNames))
}

// ParseSortKey accepts "none", "deadline" or "priority"
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNone, nil
	}
	for i, name := range sortKeyNames {
		if strings.EqualFold(s, name) {
			return SortKey(i), nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort key %q (want none, deadline or priority)", s)
}

// Order is the sort direction
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction
func (o Order) Toggle() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

// ParseOrder accepts "asc" or "desc"
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, fmt.Errorf("unknown order %q (want asc or desc)", s)
}

// FilterBySearch keeps tasks whose name contains term, ignoring case.
// An empty term keeps everything.
func FilterBySearch(tasks []model.Task, term string) []model.Task {
	if term == "" {
		return slices.Clone(tasks)
	}
	needle := strings.ToLower(term)
	return filter(tasks, func(t model.Task) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	})
}

// FilterByStatus keeps active, completed or all tasks
func FilterByStatus(tasks []model.Task, status Status) []model.Task {
	switch status {
	case StatusActive:
		return filter(tasks, func(t model.Task) bool { return !t.IsDone })
	case StatusCompleted:
		return filter(tasks, func(t model.Task) bool { return t.IsDone })
	default:
		return slices.Clone(tasks)
	}
}

// FilterByCategory keeps tasks whose category equals name exactly.
// AllCategories keeps everything.
func FilterByCategory(tasks []model.Task, name string) []model.Task {
	if name == AllCategories {
		return slices.Clone(tasks)
	}
	return filter(tasks, func(t model.Task) bool { return t.Category == name })
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortBy returns a stably sorted copy. Tasks without a deadline sort as
// if due at positive infinity: last ascending, first descending.
func SortBy(tasks []model.Task, key SortKey, order Order) []model.Task {
	out := slices.Clone(tasks)

	var cmp func(a, b model.Task) int
	switch key {
	case SortDeadline:
		cmp = compareDeadline
	case SortPriority:
		cmp = func(a, b model.Task) int { return int(a.Priority) - int(b.Priority) }
	default:
		return out
	}

	if order == Desc {
		asc := cmp
		cmp = func(a, b model.Task) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareDeadline(a, b model.Task) int {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		return 0
	case a.Deadline == nil:
		return 1
	case b.Deadline == nil:
		return -1
	}
	return a.Deadline.Compare(*b.Deadline)
}

// ProgressPercent is the rounded share of completed tasks, 0 for none
func ProgressPercent(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := len(tasks) - CountRemaining(tasks)
	return int(math.Round(100 * float64(done) / float64(len(tasks))))
}

// CountRemaining counts tasks not yet done
func CountRemaining(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone {
			n++
		}
	}
	return n
}

// Query bundles the list controls shown in the UI and CLI
type Query struct {
	Search   string
	Status   Status
	Category string
	Sort     SortKey
	Order    Order
}

// DefaultQuery shows every task in stored order
func DefaultQuery() Query {
	return Query{Status: StatusAll, Category: AllCategories}
}

// Apply runs the filters, then the sort
func (q Query) Apply(tasks []model.Task) []model.Task {
	category := q.Category
	if category == "" {
		category = AllCategories
	}
	out := FilterBySearch(tasks, q.Search)
	out = FilterByStatus(out, q.Status)
	out = FilterByCategory(out, category)
	return SortBy(out, q.Sort, q.Order)
}

// FormatDeadline renders a deadline relative to now for list display
func FormatDeadline(d *time.Time, now time.Time) string {
	if d == nil {
		return ""
	}
	t := d.In(now.Location())

	clock := ""
	if t.Hour() != 23 || t.Minute() != 59 {
		clock = t.Format(" 15:04")
	}

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "today" + clock
	}

	tomorrow := now.AddDate(0, 0, 1)
	if t.Year() == tomorrow.Year() && t.YearDay() == tomorrow.YearDay() {
		return "tomorrow" + clock
	}

	if t.Year() == now.Year() {
		return t.Format("Mon, Jan 2") + clock
	}

	return t.Format("Jan 2, 2006") + clock
}
