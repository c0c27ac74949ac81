package schedule

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/offday/internal/models"
	"github.com/julianstephens/offday/internal/render"
)

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Italic(true)

// Model shows one solution's weekly grid in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	Solution *models.Solution
	catalog  models.Catalog
	opts     render.GridOptions
	width    int
	height   int
}

func New(cat models.Catalog, opts render.GridOptions, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		catalog:  cat,
		opts:     opts,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Solution == nil {
		return emptyStyle.Render("No schedule selected.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSolution(sol models.Solution) {
	m.Solution = &sol
	m.Render()
	m.viewport.GotoTop()
}

// Render refreshes the viewport content from the current solution.
func (m *Model) Render() {
	if m.Solution == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(render.Grid(*m.Solution, m.catalog, m.opts))
}
