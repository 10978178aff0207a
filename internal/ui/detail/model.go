package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// LoadedMsg carries a loaded item, its subtasks, and the progress
// sub-collection. Stats and History are empty for items without
// progress tracking.
type LoadedMsg struct {
	Item     *model.Item
	Subtasks []model.Item
	Stats    *model.ProgressStats
	History  []model.Progress
	Err      error
}

// ActionMsg signals the parent to run an action on the current item.
type ActionMsg struct {
	Action string
	ItemID int64
}

// LogProgressMsg asks the parent to open the progress form for the item.
type LogProgressMsg struct {
	Item model.Item
}

// Model is the item detail view component.
type Model struct {
	item     *model.Item
	subtasks []model.Item
	stats    *model.ProgressStats
	history  []model.Progress
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
	errText  string
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.item = msg.Item
		m.subtasks = msg.Subtasks
		m.stats = msg.Stats
		m.history = msg.History
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Complete):
			if m.item != nil {
				id := m.item.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "complete", ItemID: id}
				}
			}

		case key.Matches(msg, m.keys.Snooze):
			if m.item != nil {
				id := m.item.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "snooze", ItemID: id}
				}
			}

		case key.Matches(msg, m.keys.Edit):
			if m.item != nil {
				id := m.item.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "edit", ItemID: id}
				}
			}

		case key.Matches(msg, m.keys.Delete):
			if m.item != nil {
				id := m.item.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "delete", ItemID: id}
				}
			}

		case msg.String() == "p":
			if m.item != nil && m.item.Type == model.ItemTypeHabit {
				item := *m.item
				return m, func() tea.Msg {
					return LogProgressMsg{Item: item}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return centered.Render("Loading item...")
	}
	if m.errText != "" {
		return centered.Render("Could not load item.\n" + m.errText)
	}
	if m.item == nil {
		return centered.Render("No item selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.item == nil {
		return ""
	}

	item := m.item
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(
		fmt.Sprintf("#%d  %s", item.ItemNumber, item.Title),
	))

	typeBadge := theme.TypeStyle(item.Type).Render(item.Type.Label())
	statusBadge := theme.StatusStyle(item.Status).Render(item.Status.Label())
	priBadge := theme.PriorityStyle(item.Priority).Render(item.Priority.Label())
	cpxBadge := theme.ComplexityStyle(item.Complexity).Render(item.Complexity.Label())

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, typeBadge, "  ", statusBadge, "  ", priBadge, "  ", cpxBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	metaLine := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(label), valStyle.Render(value))
	}

	if item.CategoryName != nil {
		sections = append(sections, metaLine("Category:", *item.CategoryName))
	}
	if item.DueDate != nil {
		due := item.DueDate.Format("2006-01-02")
		if item.IsOverdue() {
			due += theme.ErrorStyle.Render("  OVERDUE")
		}
		sections = append(sections, metaLine("Due:     ", due))
	}
	if item.Status == model.StatusSnoozed && item.SnoozedUntil != nil {
		sections = append(sections, metaLine(
			"Snoozed: ", "until "+item.SnoozedUntil.Format("2006-01-02 15:04"),
		))
	}
	if item.EstimatedDuration != nil {
		sections = append(sections, metaLine(
			"Estimate:", fmt.Sprintf("%d min", *item.EstimatedDuration),
		))
	}
	if item.ActualDuration != nil {
		sections = append(sections, metaLine(
			"Actual:  ", fmt.Sprintf("%d min", *item.ActualDuration),
		))
	}
	if item.ParentItemTitle != nil {
		sections = append(sections, metaLine("Parent:  ", *item.ParentItemTitle))
	}
	if !item.CreatedAt.IsZero() {
		sections = append(sections, metaLine(
			"Created: ", item.CreatedAt.Format("2006-01-02 15:04"),
		))
	}
	if item.CompletedAt != nil {
		sections = append(sections, metaLine(
			"Done:    ", item.CompletedAt.Format("2006-01-02 15:04"),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", minInt(m.width-4, 80)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	sections = append(sections, descHeaderStyle.Render("Description"))
	if item.Description != nil && *item.Description != "" {
		sections = append(sections, *item.Description)
	} else {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description"))
	}

	if item.Type == model.ItemTypeHabit {
		sections = append(sections, "", separator, "")
		sections = append(sections, descHeaderStyle.Render("Habit"))
		if item.HabitStage != nil {
			sections = append(sections, metaLine("Stage:   ", *item.HabitStage))
		}
		if item.HabitTargetDays != nil && item.HabitCompletedDays != nil {
			sections = append(sections, metaLine("Days:    ", fmt.Sprintf(
				"%d of %d", *item.HabitCompletedDays, *item.HabitTargetDays,
			)))
		}
		if m.stats != nil {
			sections = append(sections, metaLine("Sessions:", fmt.Sprintf(
				"%d (%d min total)",
				m.stats.TotalSessions, m.stats.TotalDuration,
			)))
			if m.stats.LastSession != nil {
				sections = append(sections, metaLine("Last:    ", *m.stats.LastSession))
			}
		}

		if len(m.history) > 0 {
			sections = append(sections, "")
			sections = append(sections, descHeaderStyle.Render("Recent Sessions"))
			for i, progress := range m.history {
				if i >= recentSessions {
					sections = append(sections, theme.HelpStyle.Render("..."))
					break
				}
				sections = append(sections, renderSession(progress))
			}
		}

		sections = append(sections, "")
		sections = append(sections, theme.HelpStyle.Render("p to log progress"))
	}

	if len(m.subtasks) > 0 {
		sections = append(sections, "", separator, "")
		sections = append(sections, descHeaderStyle.Render(
			fmt.Sprintf("Subtasks (%d)", len(m.subtasks)),
		))
		sections = append(sections, "")
		for _, sub := range m.subtasks {
			prefix := "○"
			if sub.Status == model.StatusCompleted {
				prefix = "✓"
			}
			line := fmt.Sprintf(
				"%s #%d %s %s",
				prefix, sub.ItemNumber,
				theme.StatusStyle(sub.Status).Render(sub.Status.Label()),
				sub.Title,
			)
			sections = append(sections, line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// recentSessions is how many progress entries the habit section lists.
const recentSessions = 5

// renderSession formats one progress history row.
func renderSession(progress model.Progress) string {
	line := "• " + progress.SessionDate

	var parts []string
	if progress.Duration != nil {
		parts = append(parts, fmt.Sprintf("%d min", *progress.Duration))
	}
	if progress.ProgressValue != nil {
		value := fmt.Sprintf("%g", *progress.ProgressValue)
		if progress.ProgressUnit != nil && *progress.ProgressUnit != "" {
			value += " " + *progress.ProgressUnit
		}
		parts = append(parts, value)
	}
	if len(parts) > 0 {
		line += theme.HelpStyle.Render("  " + strings.Join(parts, " · "))
	}
	if progress.Notes != nil && *progress.Notes != "" {
		line += "\n  " + lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render(*progress.Notes)
	}
	return line
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Item returns the displayed item, or nil.
func (m Model) Item() *model.Item {
	return m.item
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
