package hub

import "github.com/matzehuels/cfgview/pkg/cfg"

// Compiler describes the compiler a pane is attached to.
type Compiler struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SupportsCFG bool   `json:"supportsCfg"`
}

// CompileResult is the payload of [TopicCompileResult].
type CompileResult struct {
	CompilerID int
	Compiler   *Compiler
	Result     *cfg.CompileResult
}

// CompilerChanged is the payload of [TopicCompiler].
type CompilerChanged struct {
	CompilerID int
	Compiler   *Compiler
	Options    string
	EditorID   int
	TreeID     int
}

// The lifecycle topics [TopicCFGViewOpened], [TopicCFGViewClosed],
// [TopicRequestFilters] and [TopicRequestCompiler] carry the compiler id as
// a plain int.
