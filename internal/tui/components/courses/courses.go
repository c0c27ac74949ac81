package courses

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/offday/internal/models"
)

// Item is one course of a solution together with the group chosen for it.
type Item struct {
	Choice models.Choice
	Group  models.Group
}

func (i Item) Title() string {
	return string(i.Choice.Course) + " / " + string(i.Choice.Group)
}

func (i Item) Description() string {
	slots := make([]string, len(i.Group.Slots))
	for j, s := range i.Group.Slots {
		slots[j] = s.String()
	}
	return strings.Join(slots, "; ")
}

func (i Item) FilterValue() string { return string(i.Choice.Course) }

// Items lists the courses of sol in assignment order.
func Items(sol models.Solution, cat models.Catalog) []list.Item {
	items := make([]list.Item, 0, len(sol.Assignment))
	for _, c := range sol.Assignment {
		g, _ := cat.Group(c.Course, c.Group)
		items = append(items, Item{Choice: c, Group: g})
	}
	return items
}

type Model struct {
	list    list.Model
	catalog models.Catalog
}

func New(cat models.Catalog, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Courses"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetFilteringEnabled(false)
	return Model{list: l, catalog: cat}
}

func (m *Model) SetSolution(sol models.Solution) {
	m.list.SetItems(Items(sol, m.catalog))
	m.list.Select(0)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No courses in this schedule."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
