package surface

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/cfgview/pkg/diagram"
)

// Raster is a [Surface] backed by a gogpu/gg software canvas. Coordinates
// are multiplied by the scale factor before painting.
type Raster struct {
	ctx           *gg.Context
	scale         float64
	width, height float64
	background    *gg.RGBA
}

// NewRaster creates an empty raster surface. A scale <= 0 means 1.
func NewRaster(scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{ctx: gg.NewContext(1, 1), scale: scale}
}

// Resize implements [Surface]. The canvas is never smaller than one pixel,
// but Size reports the logical size even when it is zero.
func (r *Raster) Resize(w, h float64) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("invalid surface size %vx%v", w, h)
	}
	pw := max(1, int(math.Ceil(w*r.scale)))
	ph := max(1, int(math.Ceil(h*r.scale)))
	if err := r.ctx.Resize(pw, ph); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	r.width, r.height = w, h
	return nil
}

// Size implements [Surface].
func (r *Raster) Size() (float64, float64) { return r.width, r.height }

// SetBackground makes Clear paint color instead of leaving the canvas
// transparent. An empty color restores transparency.
func (r *Raster) SetBackground(color string) {
	if color == "" {
		r.background = nil
		return
	}
	bg := ParseColor(color)
	r.background = &bg
}

// Clear implements [Surface].
func (r *Raster) Clear() {
	r.ctx.ClearPath()
	if r.background != nil {
		r.ctx.ClearWithColor(*r.background)
		return
	}
	r.ctx.Clear()
}

// StrokePolyline implements [Surface].
func (r *Raster) StrokePolyline(pts []diagram.Point, width float64, color string) error {
	if len(pts) < 2 {
		return fmt.Errorf("polyline needs 2 points, got %d", len(pts))
	}
	r.path(pts)
	r.ctx.SetColor(ParseColor(color).Color())
	r.ctx.SetLineWidth(width * r.scale)
	return r.ctx.Stroke()
}

// FillPolygon implements [Surface].
func (r *Raster) FillPolygon(pts []diagram.Point, color string) error {
	if len(pts) < 3 {
		return fmt.Errorf("polygon needs 3 points, got %d", len(pts))
	}
	r.path(pts)
	r.ctx.ClosePath()
	r.ctx.SetColor(ParseColor(color).Color())
	return r.ctx.Fill()
}

func (r *Raster) path(pts []diagram.Point) {
	r.ctx.ClearPath()
	r.ctx.MoveTo(pts[0].X*r.scale, pts[0].Y*r.scale)
	for _, p := range pts[1:] {
		r.ctx.LineTo(p.X*r.scale, p.Y*r.scale)
	}
}

// Context exposes the underlying canvas, for sinks that paint blocks and
// labels onto the same image.
func (r *Raster) Context() *gg.Context { return r.ctx }

// Scale returns the pixel scale factor.
func (r *Raster) Scale() float64 { return r.scale }

// Image returns the painted pixels.
func (r *Raster) Image() image.Image { return r.ctx.Image() }

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.ctx.EncodePNG(w) }

// Close releases the canvas.
func (r *Raster) Close() error { return r.ctx.Close() }
