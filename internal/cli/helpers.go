package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/store"
	"github.com/dori/tsuzuki/internal/view"
)

// shortIDLen is how much of an id the list prints
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// findTask resolves a full id or unique prefix with a user-facing error
func findTask(s *app.Session, ref string) (model.Task, error) {
	task, err := s.FindTask(ref)
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return model.Task{}, fmt.Errorf("task not found: %s", ref)
	case errors.Is(err, store.ErrAmbiguousID):
		return model.Task{}, fmt.Errorf("id prefix %q matches more than one task, type more of it", ref)
	case err != nil:
		return model.Task{}, err
	}
	return task, nil
}

// defaultCategory is the configured default, else the first category
func defaultCategory(configured string, s *app.Session) string {
	if configured != "" {
		return configured
	}
	if names := s.CategoryNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// describeError flattens form validation errors into one line per field
func describeError(err error) error {
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = "  " + f + ": " + verr.Fields[f]
	}
	return fmt.Errorf("task not saved:\n%s", strings.Join(lines, "\n"))
}

func categoryLabel(name string, categories []model.Category) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Label()
		}
	}
	return name
}

func printTask(w io.Writer, t model.Task, categories []model.Category, now time.Time) {
	check := "○"
	if t.IsDone {
		check = "✓"
	}

	line := fmt.Sprintf("  %s %s %s  %s", check, shortID(t.ID), t.Priority.Stars(), t.Name)
	if t.Category != "" {
		line += "  [" + categoryLabel(t.Category, categories) + "]"
	}
	if t.Deadline != nil {
		due := view.FormatDeadline(t.Deadline, now)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		line += "  📅 " + due
	}
	fmt.Fprintln(w, line)
}
