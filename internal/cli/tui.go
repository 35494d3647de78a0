package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FunctionListModel - Interactive function selection
// =============================================================================

// FunctionListModel is the bubbletea model for picking the function to draw.
type FunctionListModel struct {
	Functions []functionInfo
	Cursor    int
	Selected  string
	Height    int
	Offset    int
	filter    string
}

// NewFunctionListModel creates a new function list model.
func NewFunctionListModel(funcs []functionInfo) FunctionListModel {
	return FunctionListModel{Functions: funcs, Height: 15}
}

func (m FunctionListModel) Init() tea.Cmd {
	return nil
}

func (m FunctionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyEnter:
			visible := m.visible()
			if len(visible) > 0 {
				m.Selected = visible[m.Cursor].Name
			}
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.filter != "" {
				r := []rune(m.filter)
				m.filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *FunctionListModel) move(delta int) {
	n := len(m.visible())
	if n == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// visible returns the functions whose name contains the typed filter.
func (m FunctionListModel) visible() []functionInfo {
	if m.filter == "" {
		return m.Functions
	}
	var out []functionInfo
	for _, f := range m.Functions {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(m.filter)) {
			out = append(out, f)
		}
	}
	return out
}

func (m FunctionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Function"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.filter != "" {
		b.WriteString(StyleHighlight.Render("filter: " + m.filter))
	}
	b.WriteString("\n")

	visible := m.visible()
	end := min(m.Offset+m.Height, len(visible))
	if m.Offset < end {
		b.WriteString(functionTable(visible[m.Offset:end], m.Cursor-m.Offset))
	} else {
		b.WriteString(listDimStyle.Render("  no matching functions"))
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(visible)), len(visible))))

	return b.String()
}
