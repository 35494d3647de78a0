package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
)

// plainFormat is Graphviz's line-oriented layout output.
const plainFormat graphviz.Format = "plain"

// Graphviz lays functions out with the Graphviz dot algorithm.
type Graphviz struct {
	Options DOTOptions
	Logger  *log.Logger
}

// NewGraphviz returns an engine using [DefaultDOTOptions].
func NewGraphviz(logger *log.Logger) *Graphviz {
	return &Graphviz{Options: DefaultDOTOptions, Logger: logger}
}

// Layout implements [Engine].
func (g *Graphviz) Layout(ctx context.Context, fn *cfg.Function) (diagram.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return diagram.Diagram{}, err
	}
	dot, err := DOT(fn, g.Options)
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeLayout, err, "prepare layout")
	}

	out, err := Render(ctx, dot, plainFormat)
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeLayout, err, "graphviz layout of %d blocks", len(fn.Nodes))
	}
	pg, err := parsePlain(out)
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeLayout, err, "read graphviz layout")
	}
	d, err := pg.toDiagram(fn, nodeNames(fn))
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeLayout, err, "map graphviz layout")
	}

	g.logger().Debug("layout done", "blocks", len(d.Blocks), "edges", d.EdgeCount(), "width", d.Width, "height", d.Height)
	return d, nil
}

func (g *Graphviz) logger() *log.Logger {
	if g.Logger == nil {
		return log.New(io.Discard)
	}
	return g.Logger
}

// Render runs Graphviz on DOT source and returns the output in format, for
// example [graphviz.SVG] for a quick look at the raw layout.
func Render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
