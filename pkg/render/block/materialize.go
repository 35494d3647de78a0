package block

import (
	"fmt"

	"github.com/matzehuels/cfgview/pkg/cfg"
)

// Materialize rebuilds the container from fn and records every node's
// measured size on fn.
//
// The container is cleared first, so calling Materialize twice with the same
// function leaves exactly one element per node. All elements are appended
// and committed before any of them is measured.
func Materialize(c *Container, fn *cfg.Function, m Measurer) error {
	c.Clear()
	if fn == nil {
		return nil
	}
	for _, n := range fn.Nodes {
		c.Append(NewElement(n.ID, n.Label))
	}
	c.Commit()

	elems := c.Elements()
	for i := range fn.Nodes {
		e := elems[i]
		w, h, err := m.Measure(e)
		if err != nil {
			return fmt.Errorf("measure block %q: %w", e.ID, err)
		}
		e.Width, e.Height = w, h
		fn.Nodes[i].SetSize(w, h)
	}
	return nil
}
