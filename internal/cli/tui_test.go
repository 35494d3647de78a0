package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var sampleFunctions = []functionInfo{
	{Name: "main", Nodes: 3, Edges: 2},
	{Name: "square", Nodes: 1},
	{Name: "sum_squares", Nodes: 4, Edges: 4},
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestFunctionListSelect(t *testing.T) {
	m := press(NewFunctionListModel(sampleFunctions),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown}, // clamps at the last row
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if got := m.(FunctionListModel).Selected; got != "square" {
		t.Errorf("Selected = %q, want square", got)
	}
}

func TestFunctionListFilter(t *testing.T) {
	m := press(NewFunctionListModel(sampleFunctions),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sq")},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if got := m.(FunctionListModel).Selected; got != "sum_squares" {
		t.Errorf("Selected = %q, want sum_squares", got)
	}
}

func TestFunctionListQuitWithoutSelection(t *testing.T) {
	m, cmd := NewFunctionListModel(sampleFunctions).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(FunctionListModel).Selected != "" {
		t.Error("esc should not select")
	}
	if cmd == nil {
		t.Error("esc should quit")
	}
}

func TestFunctionListView(t *testing.T) {
	view := NewFunctionListModel(sampleFunctions).View()
	for _, want := range []string{"Select Function", "main", "square", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m := press(NewFunctionListModel(sampleFunctions), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzz")})
	if !strings.Contains(m.View(), "no matching functions") {
		t.Error("empty filter result should say so")
	}
}
