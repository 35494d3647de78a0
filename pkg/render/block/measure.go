package block

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg/text"

	"github.com/matzehuels/cfgview/pkg/fonts"
)

// ErrNotCommitted is returned when a size is requested for an element that
// has not been through a layout pass.
var ErrNotCommitted = errors.New("element not committed")

// Measurer reports the outer size of a committed element.
type Measurer interface {
	Measure(e *Element) (w, h float64, err error)
}

// MeasureFunc adapts a function to [Measurer]. The commit check is still
// enforced.
type MeasureFunc func(e *Element) (w, h float64)

// Measure implements [Measurer].
func (f MeasureFunc) Measure(e *Element) (float64, float64, error) {
	if !e.committed {
		return 0, 0, fmt.Errorf("measure %q: %w", e.ID, ErrNotCommitted)
	}
	w, h := f(e)
	return w, h, nil
}

// Box is the CSS-style box model around a block's text.
type Box struct {
	Padding float64
	Border  float64
}

// DefaultBox matches the stylesheet blocks are drawn with.
var DefaultBox = Box{Padding: 5, Border: 1}

// FontMeasurer measures labels with glyph metrics of a monospaced face.
type FontMeasurer struct {
	face text.Face
	box  Box
}

// NewFontMeasurer creates a measurer for the embedded mono face at size
// pixels.
func NewFontMeasurer(size float64, box Box) (*FontMeasurer, error) {
	face, err := fonts.Face(size)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &FontMeasurer{face: face, box: box}, nil
}

// Face returns the face used for measuring, so drawing can use the same one.
func (m *FontMeasurer) Face() text.Face { return m.face }

// Box returns the box model applied around the text.
func (m *FontMeasurer) Box() Box { return m.box }

// LineHeight returns the distance between consecutive label baselines.
func (m *FontMeasurer) LineHeight() float64 {
	return math.Ceil(m.face.Metrics().LineHeight())
}

// Measure implements [Measurer]. The result is rounded up to whole pixels
// like a browser's outer width and height.
func (m *FontMeasurer) Measure(e *Element) (float64, float64, error) {
	if !e.committed {
		return 0, 0, fmt.Errorf("measure %q: %w", e.ID, ErrNotCommitted)
	}
	var contentW float64
	for _, line := range e.Lines {
		contentW = math.Max(contentW, m.face.Advance(line))
	}
	contentH := float64(len(e.Lines)) * m.LineHeight()
	frame := 2 * (m.box.Padding + m.box.Border)
	return math.Ceil(contentW + frame), math.Ceil(contentH + frame), nil
}
