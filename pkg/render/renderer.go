package render

import (
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// Default drawing parameters.
const (
	DefaultStrokeWidth = 2.0
	DefaultStrokeColor = "#ffffff"
	DefaultArrowWidth  = 5.0
	DefaultArrowHeight = 5.0
)

// Renderer draws diagrams. The zero value is not useful; start from
// [NewRenderer].
type Renderer struct {
	StrokeWidth float64
	StrokeColor string
	ArrowWidth  float64
	ArrowHeight float64
	Arrow       ArrowStyle

	// EdgeColors draws each edge in its own color when it has one, instead
	// of StrokeColor.
	EdgeColors bool
}

// NewRenderer returns a renderer with the default drawing parameters.
func NewRenderer() Renderer {
	return Renderer{
		StrokeWidth: DefaultStrokeWidth,
		StrokeColor: DefaultStrokeColor,
		ArrowWidth:  DefaultArrowWidth,
		ArrowHeight: DefaultArrowHeight,
		Arrow:       ArrowDown,
	}
}

// Render makes d visible. The container and the surface are resized to the
// diagram size, every block element is moved to its position, the surface is
// cleared, and then each edge is stroked and capped with an arrowhead.
//
// A block whose element is missing from the container is a broken contract
// between materializer and layout engine and fails with
// [errors.ErrCodeLayout] before anything is erased.
func (r Renderer) Render(d diagram.Diagram, c *block.Container, s surface.Surface) error {
	c.Resize(d.Width, d.Height)
	if err := s.Resize(d.Width, d.Height); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "resize surface")
	}

	for _, b := range d.Blocks {
		e, ok := c.Element(b.ID())
		if !ok {
			return errors.New(errors.ErrCodeLayout, "layout returned block %q with no element", b.ID())
		}
		e.X, e.Y = b.X, b.Y
	}

	s.Clear()
	for _, b := range d.Blocks {
		for i, e := range b.Edges {
			if err := r.drawEdge(s, e); err != nil {
				return errors.Wrap(errors.ErrCodeRender, err, "draw edge %d of block %q", i, b.ID())
			}
		}
	}
	return nil
}

func (r Renderer) drawEdge(s surface.Surface, e diagram.Edge) error {
	if len(e.Path) < 2 {
		return errors.New(errors.ErrCodeRender, "path has %d points, need at least 2", len(e.Path))
	}
	color := r.StrokeColor
	if r.EdgeColors && e.Color != "" {
		color = e.Color
	}
	if err := s.StrokePolyline(e.Path, r.StrokeWidth, color); err != nil {
		return err
	}
	end, prev := e.End()
	tri := Arrowhead(end, prev, r.ArrowWidth, r.ArrowHeight, r.Arrow)
	return s.FillPolygon(tri[:], color)
}
