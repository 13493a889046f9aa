package persist

import (
	"fmt"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/model"
)

// TaskRecord is the serialized form of a task. Deadline crosses the
// boundary as a timestamp string and must be parsed back on load.
type TaskRecord struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	IsDone   bool    `json:"isDone" yaml:"isDone"`
	Priority int     `json:"priority" yaml:"priority"`
	Deadline *string `json:"deadline" yaml:"deadline"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// CategoryRecord is the serialized form of a category
type CategoryRecord struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// deadlineLayout is the timestamp format written for deadlines
const deadlineLayout = time.RFC3339Nano

func formatDeadline(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.UTC().Format(deadlineLayout)
	return &s
}

func parseDeadline(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline %q: %w", *s, err)
	}
	return &t, nil
}

// TaskRecords converts tasks to their serialized form
func TaskRecords(tasks []model.Task) []TaskRecord {
	out := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		out[i] = TaskRecord{
			ID:       t.ID,
			Name:     t.Name,
			IsDone:   t.IsDone,
			Priority: int(t.Priority),
			Deadline: formatDeadline(t.Deadline),
			Category: t.Category,
		}
	}
	return out
}

// CategoryRecords converts categories to their serialized form
func CategoryRecords(categories []model.Category) []CategoryRecord {
	out := make([]CategoryRecord, len(categories))
	for i, c := range categories {
		out[i] = CategoryRecord{ID: c.ID, Name: c.Name, Icon: c.Icon}
	}
	return out
}

func tasksFromRecords(records []TaskRecord) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("task %d has no id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("task id %s appears twice", r.ID)
		}
		seen[r.ID] = true
		p := model.Priority(r.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("task %s has priority %d outside [1,3]", r.ID, r.Priority)
		}
		deadline, err := parseDeadline(r.Deadline)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		tasks = append(tasks, model.Task{
			ID:       r.ID,
			Name:     r.Name,
			IsDone:   r.IsDone,
			Priority: p,
			Deadline: deadline,
			Category: r.Category,
		})
	}
	return tasks, nil
}

func categoriesFromRecords(records []CategoryRecord) ([]model.Category, error) {
	out := make([]model.Category, 0, len(records))
	names := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("category %d has no id", i)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("category %s has no name", r.ID)
		}
		if names[r.Name] {
			return nil, fmt.Errorf("category name %q appears twice", r.Name)
		}
		names[r.Name] = true
		out = append(out, model.Category{ID: r.ID, Name: r.Name, Icon: r.Icon})
	}
	return out, nil
}
