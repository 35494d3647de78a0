package view

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/fonts"
	"github.com/matzehuels/cfgview/pkg/hub"
	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/observability"
	"github.com/matzehuels/cfgview/pkg/render"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// View is one CFG pane bound to a compiler. It owns its block container and
// drawing surface exclusively.
type View struct {
	id         uuid.UUID
	compilerID int
	scope      *hub.Scope

	engine    layout.Engine
	measurer  block.Measurer
	renderer  render.Renderer
	container *block.Container
	surface   surface.Surface
	logger    *log.Logger

	mu           sync.Mutex
	compilerName string
	editorID     int
	treeID       int
	function     string
	rendered     string
	diagram      *diagram.Diagram
	closed       bool
}

// New creates a pane for compilerID, subscribes it on h and announces it.
func New(ctx context.Context, h *hub.Hub, compilerID int, opts ...Option) (*View, error) {
	v := &View{
		id:         uuid.New(),
		compilerID: compilerID,
		scope:      h.Scope(),
		renderer:   render.NewRenderer(),
		container:  block.NewContainer(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = log.New(io.Discard)
	}
	v.logger = v.logger.With("pane", v.id.String()[:8], "compiler", compilerID)
	if v.measurer == nil {
		m, err := block.NewFontMeasurer(fonts.DefaultSize, block.DefaultBox)
		if err != nil {
			return nil, err
		}
		v.measurer = m
	}
	if v.engine == nil {
		v.engine = layout.NewGraphviz(v.logger)
	}
	if v.surface == nil {
		v.surface = surface.NewRaster(1)
	}

	v.scope.Subscribe(hub.TopicCompileResult, v.handleCompileResult)
	v.scope.Subscribe(hub.TopicCompiler, v.handleCompiler)

	for _, topic := range []hub.Topic{hub.TopicCFGViewOpened, hub.TopicRequestFilters, hub.TopicRequestCompiler} {
		if err := v.scope.Emit(ctx, topic, compilerID); err != nil {
			v.logger.Debug("announce failed", "topic", topic, "error", err)
		}
	}
	return v, nil
}

func (v *View) handleCompileResult(ctx context.Context, payload any) error {
	var ev hub.CompileResult
	switch p := payload.(type) {
	case hub.CompileResult:
		ev = p
	case *hub.CompileResult:
		if p == nil {
			return nil
		}
		ev = *p
	default:
		return fmt.Errorf("compileResult: unexpected payload %T", payload)
	}
	return v.OnCompileResult(ctx, ev.CompilerID, ev.Compiler, ev.Result)
}

func (v *View) handleCompiler(_ context.Context, payload any) error {
	var ev hub.CompilerChanged
	switch p := payload.(type) {
	case hub.CompilerChanged:
		ev = p
	case *hub.CompilerChanged:
		if p == nil {
			return nil
		}
		ev = *p
	default:
		return fmt.Errorf("compiler: unexpected payload %T", payload)
	}
	v.OnCompiler(ev.CompilerID, ev.Compiler, ev.EditorID, ev.TreeID)
	return nil
}

// OnCompiler records which compiler, editor and tree the pane follows and
// updates the title. Events for other compilers are ignored.
func (v *View) OnCompiler(compilerID int, compiler *hub.Compiler, editorID, treeID int) {
	if compilerID != v.compilerID {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.compilerName = ""
	if compiler != nil {
		v.compilerName = compiler.Name
	}
	v.editorID = editorID
	v.treeID = treeID
}

// OnCompileResult draws the CFG carried by result. It is a no-op when the
// result belongs to another compiler or carries no CFG.
func (v *View) OnCompileResult(ctx context.Context, compilerID int, compiler *hub.Compiler, result *cfg.CompileResult) error {
	if compilerID != v.compilerID || result == nil || result.CFG == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}

	// The hub hands the same result to every pane.
	res := result.CFG.Clone()
	if err := res.Validate(); err != nil {
		return err
	}
	name, fn, ok := v.selectFunction(res)
	if !ok {
		return nil
	}

	d, err := v.draw(ctx, name, fn)
	if err != nil {
		return err
	}
	v.diagram = &d
	v.rendered = name
	v.logger.Debug("cfg rendered", "function", name, "blocks", len(d.Blocks), "edges", d.EdgeCount())
	return nil
}

// selectFunction picks the chosen function, falling back to the first one
// when the chosen name is not part of this result.
func (v *View) selectFunction(res *cfg.Result) (string, *cfg.Function, bool) {
	if v.function != "" {
		if fn, ok := cfg.Select(res, v.function); ok {
			return v.function, fn, true
		}
		v.logger.Warn("selected function not in result, showing first", "function", v.function)
	}
	fn, ok := cfg.Normalize(res)
	return cfg.FirstName(res), fn, ok
}

// draw builds fn in a fresh container and swaps it in only once the
// diagram is on the surface, so a failed layout leaves the pane as it was.
func (v *View) draw(ctx context.Context, name string, fn *cfg.Function) (diagram.Diagram, error) {
	hooks := observability.Pipeline()

	c := block.NewContainer()
	start := time.Now()
	hooks.OnMaterializeStart(ctx, name, len(fn.Nodes))
	err := block.Materialize(c, fn, v.measurer)
	hooks.OnMaterializeComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeMeasure, err, "materialize %q", name)
	}

	start = time.Now()
	engine := fmt.Sprintf("%T", v.engine)
	hooks.OnLayoutStart(ctx, engine, len(fn.Nodes))
	d, err := v.engine.Layout(ctx, fn)
	hooks.OnLayoutComplete(ctx, engine, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, err
	}

	start = time.Now()
	hooks.OnRenderStart(ctx, []string{"surface"})
	err = v.renderer.Render(d, c, v.surface)
	hooks.OnRenderComplete(ctx, []string{"surface"}, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, err
	}
	v.container = c
	return d, nil
}

// SetFunction selects the function drawn on the next compile result. An
// empty name selects the first function.
func (v *View) SetFunction(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.function = name
}

// Close unsubscribes the pane from every topic and announces that it is
// gone. Closing twice is a no-op.
func (v *View) Close(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	v.mu.Unlock()

	v.scope.Unsubscribe()
	return v.scope.Emit(ctx, hub.TopicCFGViewClosed, v.compilerID)
}

// ID returns the pane id.
func (v *View) ID() uuid.UUID { return v.id }

// CompilerID returns the compiler the pane is bound to.
func (v *View) CompilerID() int { return v.compilerID }

// Container returns the pane's block container.
func (v *View) Container() *block.Container {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container
}

// Surface returns the pane's drawing surface.
func (v *View) Surface() surface.Surface { return v.surface }

// Diagram returns the last rendered diagram and the function it shows.
func (v *View) Diagram() (d diagram.Diagram, function string, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.diagram == nil {
		return diagram.Diagram{}, "", false
	}
	return *v.diagram, v.rendered, true
}
