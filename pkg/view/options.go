package view

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/render"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// Option configures a [View].
type Option func(*View)

// WithEngine sets the layout engine. Defaults to Graphviz.
func WithEngine(e layout.Engine) Option { return func(v *View) { v.engine = e } }

// WithMeasurer sets how blocks are measured. Defaults to the embedded mono
// font at its default size.
func WithMeasurer(m block.Measurer) Option { return func(v *View) { v.measurer = m } }

// WithSurface sets the drawing surface. Defaults to a raster surface.
func WithSurface(s surface.Surface) Option { return func(v *View) { v.surface = s } }

// WithRenderer sets the drawing parameters.
func WithRenderer(r render.Renderer) Option { return func(v *View) { v.renderer = r } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(v *View) { v.logger = l } }

// WithFunction selects a function by name instead of the first one.
func WithFunction(name string) Option { return func(v *View) { v.function = name } }

// WithState restores a saved pane state. The compiler id passed to [New]
// still wins.
func WithState(s State) Option {
	return func(v *View) {
		v.editorID = s.EditorID
		v.treeID = s.TreeID
		v.function = s.Function
		v.compilerName = s.CompilerName
	}
}
