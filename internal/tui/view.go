package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/offday/internal/constants"
	"github.com/julianstephens/offday/internal/render"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case len(m.result.Solutions) == 0:
		content = m.viewEmpty()
	case m.state == StateCourses:
		content = docStyle.Render(m.courses.View())
	default:
		content = docStyle.Render(m.schedule.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	n := len(m.result.Solutions)
	if n == 0 {
		return statusStyle.Render(fmt.Sprintf("Target: %d OFF days", m.target))
	}
	status := fmt.Sprintf("Schedule %d/%d | OFF Days: %s", m.index+1, n, render.OffDayList(m.result.Solutions[m.index]))
	if m.result.Truncated {
		status += " " + warningStyle.Render("(search stopped early, list may be incomplete)")
	}
	return statusStyle.Render(status)
}

func (m Model) viewEmpty() string {
	msg := constants.NoSolutionMessage
	if m.result.Truncated {
		msg += "\n" + warningStyle.Render("The search stopped early; raising the branch limit or timeout may find more.")
	}
	if m.width == 0 || m.height == 0 {
		return msg
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 1),
		lipgloss.Center, lipgloss.Center, msg)
}
