package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/observability"
	"github.com/matzehuels/cfgview/pkg/render/block"
)

// =============================================================================
// Materialize
// =============================================================================

// Materialize rebuilds c with one measured block per node of fn and writes
// the measured sizes back into fn.
func Materialize(ctx context.Context, c *block.Container, name string, fn *cfg.Function, m block.Measurer) error {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnMaterializeStart(ctx, name, len(fn.Nodes))
	err := block.Materialize(c, fn, m)
	hooks.OnMaterializeComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMeasure, err, "materialize %q", name)
	}
	return nil
}

// =============================================================================
// Layout
// =============================================================================

// GenerateLayout asks engine for the diagram of a materialized function.
// Engine errors are returned unchanged.
func GenerateLayout(ctx context.Context, engine layout.Engine, fn *cfg.Function) (diagram.Diagram, error) {
	hooks := observability.Pipeline()
	name := engineName(engine)
	start := time.Now()
	hooks.OnLayoutStart(ctx, name, len(fn.Nodes))
	d, err := engine.Layout(ctx, fn)
	hooks.OnLayoutComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, err
	}
	if err := d.Validate(); err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeLayout, err, "engine %s", name)
	}
	return d, nil
}

func engineName(e layout.Engine) string {
	return fmt.Sprintf("%T", e)
}
