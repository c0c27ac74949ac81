package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/render"
	"github.com/julianstephens/offday/internal/scheduler"
	"github.com/julianstephens/offday/internal/tui/components/courses"
	"github.com/julianstephens/offday/internal/tui/components/schedule"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateCourses
)

var tabTitles = []string{"Grid", "Courses"}

// chromeHeight is the number of lines taken by the tabs, status line and help.
const chromeHeight = 4

// Model browses the solutions of one search, one schedule at a time.
type Model struct {
	result   scheduler.Result
	catalog  models.Catalog
	target   int
	index    int
	state    SessionState
	keys     KeyMap
	help     help.Model
	schedule schedule.Model
	courses  courses.Model
	quitting bool
	width    int
	height   int
}

func NewModel(res scheduler.Result, cat models.Catalog, opts render.GridOptions, target int) Model {
	m := Model{
		result:   res,
		catalog:  cat,
		target:   target,
		state:    StateGrid,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		schedule: schedule.New(cat, opts, 0, 0),
		courses:  courses.New(cat, 0, 0),
	}
	m.show(0)
	return m
}

// Index is the zero-based position of the schedule on screen.
func (m Model) Index() int {
	return m.index
}

func (m Model) State() SessionState {
	return m.state
}

func (m *Model) show(i int) {
	n := len(m.result.Solutions)
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.index = i
	m.schedule.SetSolution(m.result.Solutions[i])
	m.courses.SetSolution(m.result.Solutions[i])
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Prev, m.keys.Next, m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Prev, m.keys.Next, m.keys.First, m.keys.Last},
		{m.keys.Up, m.keys.Down, m.keys.Tab, m.keys.ShiftTab},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the browser on the terminal's alternate screen.
func Run(res scheduler.Result, cat models.Catalog, opts render.GridOptions, target int) error {
	p := tea.NewProgram(NewModel(res, cat, opts, target), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
