package view

import "fmt"

// DefaultPaneName is the title prefix of every CFG pane.
const DefaultPaneName = "CFG"

// State is the serializable part of a pane, saved with the workspace layout.
type State struct {
	ID           string `json:"id,omitempty"`
	CompilerID   int    `json:"compilerId"`
	CompilerName string `json:"compilerName,omitempty"`
	EditorID     int    `json:"editorId,omitempty"`
	TreeID       int    `json:"treeId,omitempty"`
	Function     string `json:"selectedFunction,omitempty"`
}

// State returns the pane's current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		ID:           v.id.String(),
		CompilerID:   v.compilerID,
		CompilerName: v.compilerName,
		EditorID:     v.editorID,
		TreeID:       v.treeID,
		Function:     v.function,
	}
}

// Title returns the pane title, for example
// "CFG x86-64 clang 17.0.1 (Editor #1, Compiler #2)".
func (v *View) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return title(v.compilerName, v.compilerID, v.editorID, v.treeID)
}

func title(compiler string, compilerID, editorID, treeID int) string {
	name := DefaultPaneName
	if compiler != "" {
		name += " " + compiler
	}
	source := fmt.Sprintf("Editor #%d", editorID)
	if treeID > 0 {
		source = fmt.Sprintf("Tree #%d", treeID)
	}
	return fmt.Sprintf("%s (%s, Compiler #%d)", name, source, compilerID)
}
