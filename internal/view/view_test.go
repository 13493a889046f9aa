package view

import (
	"testing"
	"time"

	"github.com/dori/tsuzuki/internal/model"
)

func at(day int) *time.Time {
	t := time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sample() []model.Task {
	return []model.Task{
		{ID: "a", Name: "Buy milk", Priority: 2, Category: "Personal"},
		{ID: "b", Name: "Quarterly report", Priority: 1, Deadline: at(20), Category: "Work"},
		{ID: "c", Name: "Read chapter", Priority: 3, Deadline: at(5), IsDone: true, Category: "School"},
		{ID: "d", Name: "Pay rent", Priority: 1, Category: "Personal"},
		{ID: "e", Name: "Submit MILK survey", Priority: 2, Deadline: at(10), Category: "Work"},
	}
}

func TestSortByDeadline(t *testing.T) {
	tests := []struct {
		order Order
		want  []string
	}{
		{Asc, []string{"c", "e", "b", "a", "d"}},
		{Desc, []string{"a", "d", "b", "e", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			got := ids(SortBy(sample(), SortDeadline, tt.order))
			if !equalIDs(got, tt.want) {
				t.Errorf("SortBy(deadline, %s) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}

func TestSortByPriorityIsStable(t *testing.T) {
	got := ids(SortBy(sample(), SortPriority, Asc))
	want := []string{"b", "d", "a", "e", "c"}
	if !equalIDs(got, want) {
		t.Errorf("SortBy(priority, asc) = %v, want %v", got, want)
	}

	got = ids(SortBy(sample(), SortPriority, Desc))
	want = []string{"c", "a", "e", "b", "d"}
	if !equalIDs(got, want) {
		t.Errorf("SortBy(priority, desc) = %v, want %v", got, want)
	}
}

func TestSortNoneKeepsOrder(t *testing.T) {
	got := ids(SortBy(sample(), SortNone, Desc))
	if !equalIDs(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("SortBy(none) reordered tasks: %v", got)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := sample()
	SortBy(in, SortDeadline, Asc)
	FilterByStatus(in, StatusActive)
	if !equalIDs(ids(in), []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("input was reordered: %v", ids(in))
	}
}

func TestFilters(t *testing.T) {
	tasks := sample()

	if got := ids(FilterBySearch(tasks, "milk")); !equalIDs(got, []string{"a", "e"}) {
		t.Errorf("FilterBySearch(milk) = %v", got)
	}
	if got := FilterBySearch(tasks, ""); len(got) != len(tasks) {
		t.Errorf("empty search kept %d of %d", len(got), len(tasks))
	}
	if got := ids(FilterByStatus(tasks, StatusCompleted)); !equalIDs(got, []string{"c"}) {
		t.Errorf("FilterByStatus(completed) = %v", got)
	}
	if got := FilterByStatus(tasks, StatusActive); len(got) != 4 {
		t.Errorf("FilterByStatus(active) kept %d, want 4", len(got))
	}
	if got := ids(FilterByCategory(tasks, "Personal")); !equalIDs(got, []string{"a", "d"}) {
		t.Errorf("FilterByCategory(Personal) = %v", got)
	}
	if got := FilterByCategory(tasks, "personal"); len(got) != 0 {
		t.Errorf("category match should be exact, got %v", ids(got))
	}
	if got := FilterByCategory(tasks, AllCategories); len(got) != len(tasks) {
		t.Errorf("FilterByCategory(all) kept %d", len(got))
	}
}

func TestQueryComposes(t *testing.T) {
	q := Query{Status: StatusActive, Category: "Work", Sort: SortDeadline, Order: Asc}
	got := ids(q.Apply(sample()))
	if !equalIDs(got, []string{"e", "b"}) {
		t.Errorf("Apply = %v, want [e b]", got)
	}

	if got := DefaultQuery().Apply(sample()); len(got) != 5 {
		t.Errorf("default query kept %d of 5", len(got))
	}
}

func TestProgressPercent(t *testing.T) {
	if got := ProgressPercent(nil); got != 0 {
		t.Errorf("ProgressPercent(empty) = %d, want 0", got)
	}

	three := []model.Task{{IsDone: true}, {IsDone: true}, {}}
	if got := ProgressPercent(three); got != 67 {
		t.Errorf("ProgressPercent(2 of 3) = %d, want 67", got)
	}
	if got := CountRemaining(three); got != 1 {
		t.Errorf("CountRemaining = %d, want 1", got)
	}
}

func TestParseAndCycle(t *testing.T) {
	if s, err := ParseStatus("Completed"); err != nil || s != StatusCompleted {
		t.Errorf("ParseStatus = %v, %v", s, err)
	}
	if _, err := ParseStatus("later"); err == nil {
		t.Error("expected error for unknown status")
	}
	if k, err := ParseSortKey("priority"); err != nil || k != SortPriority {
		t.Errorf("ParseSortKey = %v, %v", k, err)
	}
	if o, err := ParseOrder("desc"); err != nil || o != Desc {
		t.Errorf("ParseOrder = %v, %v", o, err)
	}
	if StatusCompleted.Next() != StatusAll {
		t.Error("status should wrap to all")
	}
	if SortPriority.Next() != SortNone {
		t.Error("sort key should wrap to none")
	}
	if Asc.Toggle() != Desc {
		t.Error("toggle should flip order")
	}
}

func TestFormatDeadline(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	endOfDay := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
		return &v
	}
	withClock := time.Date(2025, time.June, 10, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		in   *time.Time
		want string
	}{
		{nil, ""},
		{endOfDay(2025, time.June, 10), "today"},
		{&withClock, "today 17:30"},
		{endOfDay(2025, time.June, 11), "tomorrow"},
		{endOfDay(2025, time.July, 4), "Fri, Jul 4"},
		{endOfDay(2026, time.January, 2), "Jan 2, 2026"},
	}
	for _, tt := range tests {
		if got := FormatDeadline(tt.in, now); got != tt.want {
			t.Errorf("FormatDeadline(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
