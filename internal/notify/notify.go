package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/model"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	command string
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		command: "notify-send",
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Available reports whether notify-send can be found
func (n *Notifier) Available() bool {
	_, err := exec.LookPath(n.command)
	return err == nil
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	cmd := exec.Command(n.command, buildArgs(notification)...)
	return cmd.Run()
}

func buildArgs(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tsuzuki")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// OverdueReminder builds the reminder for open tasks past their deadline.
// ok is false when nothing is overdue.
func OverdueReminder(tasks []model.Task, now time.Time) (Notification, bool) {
	var overdue []string
	for _, t := range tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t.Name)
		}
	}
	if len(overdue) == 0 {
		return Notification{}, false
	}

	title := "1 task is overdue"
	if len(overdue) > 1 {
		title = fmt.Sprintf("%d tasks are overdue", len(overdue))
	}

	const maxListed = 5
	body := overdue
	if len(body) > maxListed {
		body = append(body[:maxListed:maxListed], fmt.Sprintf("and %d more", len(overdue)-maxListed))
	}

	return Notification{
		Title:   title,
		Body:    strings.Join(body, "\n"),
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	}, true
}

// SendOverdueReminder notifies about overdue tasks and reports whether
// there were any
func (n *Notifier) SendOverdueReminder(tasks []model.Task, now time.Time) (bool, error) {
	notification, ok := OverdueReminder(tasks, now)
	if !ok {
		return false, nil
	}
	return true, n.Send(notification)
}

// DueToday returns the open tasks whose deadline is still ahead but
// falls on the same day as now
func DueToday(tasks []model.Task, now time.Time) []model.Task {
	var due []model.Task
	for _, t := range tasks {
		if t.IsDone || t.IsOverdue(now) || !t.IsDueToday(now) {
			continue
		}
		due = append(due, t)
	}
	return due
}

// DueReminder builds the reminder for a single task
func DueReminder(taskName string, dueIn time.Duration) Notification {
	var body string
	if dueIn <= 0 {
		body = "Task is now overdue!"
	} else if dueIn < time.Hour {
		body = "Task due in less than an hour"
	} else {
		body = "Task due today"
	}

	urgency := UrgencyNormal
	if dueIn <= 0 {
		urgency = UrgencyCritical
	}

	return Notification{
		Title:   taskName,
		Body:    body,
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	}
}

// SendDueReminder sends a reminder for a single task
func (n *Notifier) SendDueReminder(taskName string, dueIn time.Duration) error {
	return n.Send(DueReminder(taskName, dueIn))
}
