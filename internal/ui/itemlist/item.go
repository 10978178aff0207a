package itemlist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// Row wraps a model.Item so it can be used in a bubbles/list.
type Row struct {
	Item model.Item
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Item.Title }

// Title returns the item title for the list.
func (r Row) Title() string { return r.Item.Title }

// Description returns a short summary line for the list.
func (r Row) Description() string {
	return fmt.Sprintf(
		"#%d | %s | %s",
		r.Item.ItemNumber,
		r.Item.Status.Label(),
		relativeTime(r.Item.UpdatedAt),
	)
}

// rowDelegate implements list.ItemDelegate for rendering item rows.
// marked is shared by reference with the Model so bulk-selection state
// is visible during render.
type rowDelegate struct {
	marked map[int64]bool
}

// Height returns the number of lines each row takes.
func (d rowDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between rows.
func (d rowDelegate) Spacing() int { return 0 }

// Update handles per-row messages (unused).
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single item row.
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	row, ok := li.(Row)
	if !ok {
		return
	}

	item := row.Item
	isSelected := index == m.Index()
	isMarked := d.marked[item.ID]

	prefix := "○"
	switch {
	case isMarked:
		prefix = "◆"
	case item.Status == model.StatusCompleted:
		prefix = "✓"
	}

	typeBadge := theme.TypeStyle(item.Type).Render(item.Type.Label())
	statusBadge := theme.StatusStyle(item.Status).Render(item.Status.Label())
	priBadge := theme.PriorityStyle(item.Priority).Render(priorityLabel(item.Priority))

	number := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("#%-4d", item.ItemNumber))

	title := item.Title
	if item.IsSubtask() {
		title = "↳ " + title
	}

	dueStr := ""
	if item.DueDate != nil {
		dueStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" " + item.DueDate.Format("Jan 02"))
	}

	overdueStr := ""
	if item.IsOverdue() {
		overdueStr = theme.ErrorStyle.Render(" OVERDUE")
	}

	snoozeStr := ""
	if item.Status == model.StatusSnoozed && item.SnoozedUntil != nil {
		snoozeStr = theme.StaleStyle.Render(
			" zzz " + item.SnoozedUntil.Format("Jan 02 15:04"),
		)
	}

	line := fmt.Sprintf(
		"%s %s %s %s %s %s%s%s%s",
		prefix, number, typeBadge, statusBadge, priBadge,
		title, dueStr, overdueStr, snoozeStr,
	)

	if item.Status == model.StatusCompleted {
		line = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else if isMarked {
		line = theme.MarkedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}

// priorityLabel returns a short badge label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "P1"
	case model.PriorityMedium:
		return "P2"
	case model.PriorityLow:
		return "P3"
	default:
		return "P?"
	}
}
