package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.schedule.SetSize(msg.Width, max(msg.Height-chromeHeight, 0))
		m.courses.SetSize(msg.Width, max(msg.Height-chromeHeight, 0))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.show(m.index + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show(m.index - 1)
			return m, nil
		case key.Matches(msg, m.keys.First):
			m.show(0)
			return m, nil
		case key.Matches(msg, m.keys.Last):
			m.show(len(m.result.Solutions) - 1)
			return m, nil
		}
	}

	switch m.state {
	case StateGrid:
		m.schedule, cmd = m.schedule.Update(msg)
	case StateCourses:
		m.courses, cmd = m.courses.Update(msg)
	}
	return m, cmd
}
