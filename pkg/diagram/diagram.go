// Package diagram holds the positioned, routed result of laying out one
// function's control-flow graph.
//
// Coordinates are pixels with the origin at the top-left. Block coordinates
// are the top-left corner of the block; edge paths live in the same space.
package diagram

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/cfgview/pkg/cfg"
)

// Point is a position in diagram space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Edge is a routed control transfer. Path[0] is the origin and the last
// point is the terminus where the arrowhead goes.
type Edge struct {
	From  string  `json:"from,omitempty" bson:"from,omitempty"`
	To    string  `json:"to,omitempty" bson:"to,omitempty"`
	Color string  `json:"color,omitempty" bson:"color,omitempty"`
	Path  []Point `json:"path" bson:"path"`
}

// End returns the terminus and the point before it.
func (e Edge) End() (end, prev Point) {
	n := len(e.Path)
	return e.Path[n-1], e.Path[n-2]
}

// Block is a measured node placed at (X, Y) with the edges leaving it.
type Block struct {
	Node  cfg.Node `json:"data" bson:"data"`
	X     float64  `json:"x" bson:"x"`
	Y     float64  `json:"y" bson:"y"`
	Edges []Edge   `json:"edges,omitempty" bson:"edges,omitempty"`
}

// ID returns the node id of the block.
func (b Block) ID() string { return b.Node.ID }

// Size returns the measured block size.
func (b Block) Size() (w, h float64) { return b.Node.Size() }

// Diagram is a complete layout: overall size plus one block per node.
type Diagram struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Blocks []Block `json:"blocks" bson:"blocks"`
}

// Block returns the block for a node id.
func (d *Diagram) Block(id string) (*Block, bool) {
	for i := range d.Blocks {
		if d.Blocks[i].Node.ID == id {
			return &d.Blocks[i], true
		}
	}
	return nil, false
}

// EdgeCount returns the total number of edges across all blocks.
func (d *Diagram) EdgeCount() int {
	n := 0
	for _, b := range d.Blocks {
		n += len(b.Edges)
	}
	return n
}

// Bounds returns the smallest width and height containing every block and
// every path point.
func (d *Diagram) Bounds() (w, h float64) {
	for _, b := range d.Blocks {
		bw, bh := b.Size()
		w = math.Max(w, b.X+bw)
		h = math.Max(h, b.Y+bh)
		for _, e := range b.Edges {
			for _, p := range e.Path {
				w = math.Max(w, p.X)
				h = math.Max(h, p.Y)
			}
		}
	}
	return w, h
}

// Fit grows Width and Height so the diagram contains all of its content.
// It never shrinks the reported size.
func (d *Diagram) Fit() {
	w, h := d.Bounds()
	d.Width = math.Max(d.Width, math.Ceil(w))
	d.Height = math.Max(d.Height, math.Ceil(h))
}

// Validate checks the structural invariants of a laid-out diagram.
func (d *Diagram) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("diagram size %vx%v is negative", d.Width, d.Height)
	}
	seen := make(map[string]struct{}, len(d.Blocks))
	for _, b := range d.Blocks {
		if _, dup := seen[b.Node.ID]; dup {
			return fmt.Errorf("duplicate block %q", b.Node.ID)
		}
		seen[b.Node.ID] = struct{}{}
		if !b.Node.Sized() {
			return fmt.Errorf("block %q has no size", b.Node.ID)
		}
		if b.X < 0 || b.Y < 0 {
			return fmt.Errorf("block %q at (%v, %v) has negative coordinates", b.Node.ID, b.X, b.Y)
		}
		for i, e := range b.Edges {
			if len(e.Path) < 2 {
				return fmt.Errorf("block %q edge %d has %d path points, need at least 2", b.Node.ID, i, len(e.Path))
			}
		}
	}
	w, h := d.Bounds()
	if w > d.Width || h > d.Height {
		return fmt.Errorf("content %vx%v exceeds diagram %vx%v", w, h, d.Width, d.Height)
	}
	return nil
}

// Marshal serializes the diagram as indented JSON.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses a diagram produced by [Marshal].
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	return d, nil
}
