package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/trackers"
)

type SessionState int

const (
	StateOnboarding SessionState = iota
	StateDay
	StateSearch
	StateAddTracker
	StateConfirmDelete
)

// eventBuffer bounds how many store events queue up between renders.
const eventBuffer = 16

type storeEventMsg struct {
	event events.Event
}

type Model struct {
	ctx         *cli.Context
	state       SessionState
	keys        KeyMap
	help        help.Model
	search      textinput.Model
	form        *huh.Form
	trackerForm *trackerFormModel
	formError   string

	settings    models.Settings
	day         string
	today       string
	view        trackers.DayView
	rows        []models.Tracker
	completions map[string]int
	cursor      int
	status      string

	events  <-chan events.Event
	sub     *events.Subscription
	watcher *fsnotify.Watcher

	quitting bool
	width    int
	height   int
}

func NewModel(ctx *cli.Context) (Model, error) {
	today, err := ctx.Today()
	if err != nil {
		return Model{}, err
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search"
	search.CharLimit = constants.MaxTrackerNameLength

	ch, sub := ctx.Bus.Channel(eventBuffer)
	m := Model{
		ctx:    ctx,
		state:  StateDay,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		search: search,
		day:    today,
		today:  today,
		events: ch,
		sub:    sub,
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok {
		w, err := watchStore(ctx.Store.GetConfigPath(), ctx.Bus)
		if err != nil {
			logger.Warn("Store watcher unavailable", "error", err)
		} else {
			m.watcher = w
		}
	}

	if err := m.reload(); err != nil {
		m.Close()
		return Model{}, err
	}
	if !m.settings.Onboarded {
		m.state = StateOnboarding
	}
	return m, nil
}

// Close detaches the model from the event bus and stops the file watcher.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.Cancel()
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			logger.Warn("Failed to close store watcher", "error", err)
		}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg{event: e}
	}
}

// reload rebuilds the day listing from the store.
func (m *Model) reload() error {
	settings, err := m.ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	m.settings = settings

	today, err := m.ctx.Today()
	if err != nil {
		return err
	}
	m.today = today

	view, err := m.ctx.Service.Day(trackers.Query{
		Day:    m.day,
		Today:  today,
		Search: m.search.Value(),
		Filter: settings.SelectedFilter,
	})
	if err != nil {
		return err
	}
	m.view = view

	rows := make([]models.Tracker, 0)
	completions := make(map[string]int)
	for _, category := range view.Categories {
		for _, t := range category.Trackers {
			n, err := m.ctx.Service.Records.CountCompletions(t.ID)
			if err != nil {
				return err
			}
			completions[t.ID] = n
			rows = append(rows, t)
		}
	}
	m.rows = rows
	m.completions = completions

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

func (m Model) selected() (models.Tracker, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return models.Tracker{}, false
	}
	return m.rows[m.cursor], true
}
