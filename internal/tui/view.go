package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateOnboarding:
		return m.viewOnboarding()
	case StateAddTracker:
		content = m.form.View()
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, dangerStyle.Render(m.formError))
		}
		return docStyle.Render(content)
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewDay()
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		docStyle.Render(content),
		status,
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	title := m.view.Day
	if wd, err := utils.WeekdayOfDay(m.view.Day); err == nil {
		title = fmt.Sprintf("‹ %s, %s ›", wd.FullName(), m.view.Day)
	}
	if m.view.Day == m.today {
		title += "  today"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(title),
		filterStyle.Render("filter: "+string(m.settings.SelectedFilter)),
	)
	if m.state == StateSearch || m.search.Value() != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, m.search.View())
	}
	return header
}

func (m Model) viewDay() string {
	if !m.view.Scheduled {
		return emptyStyle.Render("Nothing planned for this day. Press a to add a tracker.")
	}
	if len(m.rows) == 0 {
		return emptyStyle.Render("Nothing found.")
	}

	var b strings.Builder
	row := 0
	for _, category := range m.view.Categories {
		b.WriteString(categoryStyle.Render(category.Title))
		b.WriteString("\n")
		for _, t := range category.Trackers {
			cursor := "  "
			if row == m.cursor {
				cursor = selectedStyle.Render("> ")
			}

			check := "[ ]"
			name := t.Name
			if m.view.Done[t.ID] {
				check = "[x]"
				name = doneStyle.Render(name)
			}

			line := fmt.Sprintf("%s%s %s %s %s  %s", cursor, check, cli.Swatch(t.Color), t.Emoji, name,
				countStyle.Render(utils.FormatDays(m.settings.Language, m.completions[t.ID])))
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
	}
	return b.String()
}

func (m Model) viewOnboarding() string {
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			headerStyle.Render("Track your habits"),
			"",
			"Create categories and trackers, then mark them done each day.",
			"Habits follow a weekly schedule; events show up every day.",
			"",
			"[enter] Get started",
			"[q] Quit",
		),
	)
}

func (m Model) viewConfirmDelete() string {
	t, _ := m.selected()
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Delete %q? Its history is kept and it can be restored.", t.Name)),
		"",
		"[y] Yes",
		"[n] No",
	)
}
