package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/ui/theme"
	"github.com/dori/tsuzuki/internal/view"
)

const progressBarWidth = 24

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	var content string
	switch {
	case m.helpVisible:
		content = m.renderHelp()
	case m.mode == ModeForm:
		content = m.editor.view(m.width)
	default:
		content = m.renderList(contentHeight)
	}

	// Ensure content fills available space
	if lines := lipgloss.Height(content); lines < contentHeight {
		content += strings.Repeat("\n", contentHeight-lines)
	}

	return strings.Join([]string{header, content, footer}, "\n")
}

// renderHeader shows the greeting, progress and active list controls
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	all := m.session.Tasks()
	remaining := view.CountRemaining(all)

	title := styles.Header.Render("tsuzuki")
	greeting := styles.Greeting.Render(fmt.Sprintf("Welcome, %s! %s", m.session.UserName(), remainingText(remaining)))
	themeName := styles.Label.Render("theme: " + t.Name)

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, greeting)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(themeName)-1, 1)
	top := left + strings.Repeat(" ", gap) + themeName

	pct := view.ProgressPercent(all)
	progress := " " + progressBar(pct, progressBarWidth) + fmt.Sprintf(" %d%%", pct)

	return strings.Join([]string{top, progress, m.renderFilters()}, "\n")
}

func remainingText(n int) string {
	switch n {
	case 0:
		return "Nothing left to do."
	case 1:
		return "You have 1 task to finish."
	default:
		return fmt.Sprintf("You have %d tasks to finish.", n)
	}
}

func progressBar(pct, width int) string {
	styles := theme.Current.Styles
	filled := pct * width / 100
	return styles.ProgressFull.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

func (m RootModel) renderFilters() string {
	styles := theme.Current.Styles
	arrow := "↑"
	if m.query.Order == view.Desc {
		arrow = "↓"
	}

	parts := []string{
		"status: " + m.query.Status.String(),
		"category: " + orAll(m.query.Category),
		"sort: " + m.query.Sort.String(),
	}
	if m.query.Sort != view.SortNone {
		parts[2] += " " + arrow
	}
	if m.query.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query.Search))
	}
	return styles.Label.Render(" " + strings.Join(parts, "  ·  "))
}

func orAll(category string) string {
	if category == "" {
		return view.AllCategories
	}
	return category
}

func (m RootModel) renderList(height int) string {
	styles := theme.Current.Styles
	if len(m.visible) == 0 {
		msg := "No tasks yet. Press a to add one."
		if len(m.session.Tasks()) > 0 {
			msg = "No tasks match the current filters."
		}
		return "\n" + styles.Label.Render("  "+msg)
	}

	// Keep the cursor row on screen
	rows := max(height-1, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.visible))

	categories := m.session.Categories()
	lines := []string{""}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTask(m.visible[i], i == m.cursor, categories))
	}
	return strings.Join(lines, "\n")
}

func (m RootModel) renderTask(task model.Task, isCursor bool, categories []model.Category) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles
	now := m.now()

	checkbox := "[ ]"
	if task.IsDone {
		checkbox = "[x]"
	}

	priority := lipgloss.NewStyle().Foreground(t.PriorityColor(task.Priority)).Render(task.Priority.Stars())

	titleStyle := styles.TaskNormal
	switch {
	case task.IsDone:
		titleStyle = styles.TaskDone
	case task.IsOverdue(now):
		titleStyle = styles.TaskOverdue
	}
	if isCursor {
		titleStyle = titleStyle.Background(t.Highlight).Bold(true)
	}

	var meta []string
	if task.Category != "" {
		meta = append(meta, styles.Category.Render(categoryLabel(task.Category, categories)))
	}
	if task.Deadline != nil {
		dueStyle := lipgloss.NewStyle().Foreground(t.Subtle)
		if task.IsOverdue(now) {
			dueStyle = lipgloss.NewStyle().Foreground(t.Error)
		} else if task.IsDueToday(now) {
			dueStyle = styles.DueDate
		}
		meta = append(meta, dueStyle.Render(view.FormatDeadline(task.Deadline, now)))
	}

	pointer := " "
	if isCursor {
		pointer = lipgloss.NewStyle().Foreground(t.Primary).Render("›")
	}

	return fmt.Sprintf(" %s %s %s%s %s", pointer, checkbox, priority, titleStyle.Render(task.Name), strings.Join(meta, " "))
}

func categoryLabel(name string, categories []model.Category) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Label()
		}
	}
	return name
}

// renderFooter shows the status line, any prompt, and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var lines []string
	if m.errorMsg != "" {
		lines = append(lines, styles.Error.Render(" "+m.errorMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, styles.Status.Render(" "+m.statusMsg))
	}

	switch m.mode {
	case ModeSearch, ModeNewCategory, ModeRename, ModeQuickAdd:
		lines = append(lines, " "+styles.HelpKey.Render(m.mode.String()+":")+" "+m.input.View())
	case ModeConfirmDelete:
		name := ""
		if task, ok := m.session.Task(m.pendingID); ok {
			name = task.Name
		}
		lines = append(lines, styles.Error.Render(fmt.Sprintf(" Delete %q? (y/n)", name)))
	case ModeConfirmClear:
		lines = append(lines, styles.Error.Render(" Remove all completed tasks? (y/n)"))
	}

	if m.mode == ModeForm {
		lines = append(lines, " "+m.help.ShortHelpView(m.keys.FormHelp()))
	} else {
		lines = append(lines, " "+m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tsuzuki help"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Quick add"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  Words starting with ! set the priority (!1 !high !3 !low),"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  # picks a category (#Work), due: sets a deadline (due:fri)."))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Deadlines"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  today, tomorrow, mon..sun, nextweek, 2025-06-01, 2025-06-01 18:00"))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}
