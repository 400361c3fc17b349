package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case storeEventMsg:
		logger.Debug("Store event", "event", fmt.Sprintf("%T", msg.event))
		m.refresh()
		return m, waitForEvent(m.events)
	}

	switch m.state {
	case StateAddTracker:
		return m.updateForm(msg)
	case StateSearch:
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateOnboarding:
		return m.updateOnboarding(keyMsg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	default:
		return m.updateDay(keyMsg)
	}
}

// refresh reloads the listing and reports failures in the status line.
func (m *Model) refresh() {
	if err := m.reload(); err != nil {
		m.status = apperrors.Message(err)
	}
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		return m, nil
	}
	m.settings.Onboarded = true
	if err := m.ctx.Store.SaveSettings(m.settings); err != nil {
		m.status = apperrors.Message(err)
		return m, nil
	}
	m.state = StateDay
	return m, nil
}

func (m Model) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevDay), key.Matches(msg, m.keys.NextDay):
		delta := -1
		if key.Matches(msg, m.keys.NextDay) {
			delta = 1
		}
		day, err := utils.AddDays(m.view.Day, delta)
		if err != nil {
			m.status = apperrors.Message(err)
			return m, nil
		}
		m.day = day
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Today):
		m.day = m.today
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		done, err := m.ctx.Service.Records.Toggle(t.ID, m.view.Day)
		if err != nil {
			m.status = apperrors.Message(err)
			return m, nil
		}
		if done {
			m.status = fmt.Sprintf("%s done", t.Name)
		} else {
			m.status = fmt.Sprintf("%s not done", t.Name)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Search):
		m.state = StateSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.settings.SelectedFilter = m.settings.SelectedFilter.Next()
		if err := m.ctx.Store.SaveSettings(m.settings); err != nil {
			m.status = apperrors.Message(err)
			return m, nil
		}
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Add):
		titles, err := m.ctx.Service.Categories.Titles()
		if err != nil {
			m.status = apperrors.Message(err)
			return m, nil
		}
		m.form, m.trackerForm = newTrackerForm(titles)
		m.formError = ""
		m.state = StateAddTracker
		cmd := m.form.Init()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.state = StateConfirmDelete
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.search.Blur()
			m.state = StateDay
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			m.search.Blur()
			m.state = StateDay
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateDay
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveTrackerForm(); err != nil {
			// Stay in the form so the user can correct the value
			m.formError = apperrors.Message(err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.status = fmt.Sprintf("Added %s", m.trackerForm.Name)
		m.state = StateDay
		m.refresh()
	case huh.StateAborted:
		m.state = StateDay
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		t, ok := m.selected()
		if ok {
			m.ctx.PerformAutomaticBackup()
			if err := m.ctx.Service.Trackers.Delete(t); err != nil {
				m.status = apperrors.Message(err)
			} else {
				m.status = fmt.Sprintf("Deleted %s", t.Name)
			}
		}
		m.state = StateDay
		m.refresh()
	case "n", "N", "esc":
		m.state = StateDay
	}
	return m, nil
}
