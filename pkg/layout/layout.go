package layout

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
)

// ErrUnsized is returned when a node reaches the layout engine without a
// measured size.
var ErrUnsized = stderrors.New("node has no measured size")

// Engine computes a diagram from a measured function.
type Engine interface {
	Layout(ctx context.Context, fn *cfg.Function) (diagram.Diagram, error)
}

// EngineFunc adapts a function to [Engine].
type EngineFunc func(ctx context.Context, fn *cfg.Function) (diagram.Diagram, error)

// Layout implements [Engine].
func (f EngineFunc) Layout(ctx context.Context, fn *cfg.Function) (diagram.Diagram, error) {
	return f(ctx, fn)
}

// CheckSized returns [ErrUnsized] for the first node without a size.
func CheckSized(fn *cfg.Function) error {
	for i := range fn.Nodes {
		if !fn.Nodes[i].Sized() {
			return fmt.Errorf("node %q: %w", fn.Nodes[i].ID, ErrUnsized)
		}
	}
	return nil
}
