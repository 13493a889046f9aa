// Package quickadd parses one-line task entries such as
//
//	Pay rent !1 #Personal due:friday
package quickadd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/model"
)

// Draft is a parsed entry. Zero Priority and empty Category mean the
// entry did not set them.
type Draft struct {
	Name     string
	Priority model.Priority
	Deadline *time.Time
	Category string
}

var priorityWords = map[string]model.Priority{
	"1":      model.PriorityHigh,
	"high":   model.PriorityHigh,
	"hi":     model.PriorityHigh,
	"h":      model.PriorityHigh,
	"2":      model.PriorityMedium,
	"medium": model.PriorityMedium,
	"med":    model.PriorityMedium,
	"m":      model.PriorityMedium,
	"3":      model.PriorityLow,
	"low":    model.PriorityLow,
	"l":      model.PriorityLow,
}

// Parse splits text into a name and the !priority, #category and due:
// tokens found among its words. A token that does not parse stays part
// of the name.
func Parse(text string, now time.Time) Draft {
	var d Draft
	var name []string

	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		case len(word) > 1 && word[0] == '!':
			p, ok := priorityWords[lower[1:]]
			if !ok {
				name = append(name, word)
				continue
			}
			d.Priority = p

		case len(word) > 1 && word[0] == '#':
			d.Category = word[1:]

		case strings.HasPrefix(lower, "due:"):
			deadline, err := ParseDeadline(word[len("due:"):], now)
			if err != nil || deadline == nil {
				name = append(name, word)
				continue
			}
			d.Deadline = deadline

		default:
			name = append(name, word)
		}
	}

	d.Name = strings.Join(name, " ")
	return d
}

// ParseDeadline understands today, tomorrow, weekday names, nextweek and
// a few absolute layouts. Relative days resolve to the end of that day.
// An empty string means no deadline.
func ParseDeadline(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	switch s {
	case "today":
		return &today, nil
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t, nil
	case "next week", "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t, nil
	}
	if day, ok := weekdays[s]; ok {
		t := nextWeekday(today, day)
		return &t, nil
	}

	// RFC 3339 carries its own zone
	if t, err := time.Parse(time.RFC3339, strings.ToUpper(s)); err == nil {
		return &t, nil
	}

	withTime := []string{
		"2006-01-02 15:04",
		"2006-01-02t15:04",
	}
	for _, layout := range withTime {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return &t, nil
		}
	}

	dateOnly := []string{
		"2006-01-02",
		"01/02/2006",
		"Jan 2, 2006",
		"Jan 2",
	}
	for _, layout := range dateOnly {
		t, err := time.ParseInLocation(layout, capitalize(s), now.Location())
		if err != nil {
			continue
		}
		// No year given: this year
		year := t.Year()
		if year == 0 {
			year = now.Year()
		}
		t = time.Date(year, t.Month(), t.Day(), 23, 59, 59, 0, now.Location())
		return &t, nil
	}

	return nil, fmt.Errorf("could not understand date %q", s)
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// nextWeekday is the next occurrence of day strictly after today
func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// capitalize restores the month abbreviation case the layouts expect
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
