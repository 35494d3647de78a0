package sink

import (
	"encoding/json"

	"github.com/matzehuels/cfgview/pkg/diagram"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	function string
	arrow    string
}

// WithJSONFunction records which function of the compile result was drawn.
func WithJSONFunction(name string) JSONOption { return func(r *jsonRenderer) { r.function = name } }

// WithJSONArrow records the arrowhead style for round-trip rendering.
func WithJSONArrow(style string) JSONOption { return func(r *jsonRenderer) { r.arrow = style } }

type jsonOutput struct {
	Function string      `json:"function,omitempty"`
	Arrow    string      `json:"arrow,omitempty"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Blocks   []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Edges  []diagram.Edge `json:"edges,omitempty"`
}

// RenderJSON exports the diagram as pretty-printed JSON: overall size, and
// per block its position, measured size, label and outgoing edge paths.
// Blocks keep the layout engine's order.
func RenderJSON(d diagram.Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Function: r.function,
		Arrow:    r.arrow,
		Width:    d.Width,
		Height:   d.Height,
		Blocks:   make([]jsonBlock, 0, len(d.Blocks)),
	}
	for _, b := range d.Blocks {
		w, h := b.Size()
		out.Blocks = append(out.Blocks, jsonBlock{
			ID:     b.ID(),
			Label:  b.Node.Label,
			X:      b.X,
			Y:      b.Y,
			Width:  w,
			Height: h,
			Edges:  b.Edges,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
