package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/fonts"
	"github.com/matzehuels/cfgview/pkg/render"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style Style
	scale float64
}

// WithPNGStyle sets colors and font size.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// RenderPNG renders d onto a raster surface with rdr, then paints the
// blocks of c on top and encodes the result as PNG.
func RenderPNG(d diagram.Diagram, c *block.Container, rdr render.Renderer, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: DarkStyle, scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	raster := surface.NewRaster(r.scale)
	defer raster.Close()
	raster.SetBackground(r.style.Background)

	if err := rdr.Render(d, c, raster); err != nil {
		return nil, err
	}
	if err := r.drawBlocks(raster.Context(), c.Elements(), raster.Scale()); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawBlocks(ctx *gg.Context, elems []*block.Element, scale float64) error {
	size := r.style.fontSize()
	base, err := fonts.Face(size)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	face, err := fonts.Face(size * scale)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	ctx.SetFont(face)

	lineHeight := math.Ceil(base.Metrics().LineHeight()) * scale
	ascent := face.Metrics().Ascent
	inset := (r.style.Box.Padding + r.style.Box.Border) * scale
	border := r.style.Box.Border * scale

	for _, e := range elems {
		x, y := e.X*scale, e.Y*scale
		w, h := e.Width*scale, e.Height*scale

		ctx.DrawRectangle(x, y, w, h)
		ctx.SetColor(surface.ParseColor(r.style.BlockFill).Color())
		if err := ctx.Fill(); err != nil {
			return fmt.Errorf("fill block %q: %w", e.ID, err)
		}
		if border > 0 {
			ctx.DrawRectangle(x+border/2, y+border/2, w-border, h-border)
			ctx.SetColor(surface.ParseColor(r.style.BlockStroke).Color())
			ctx.SetLineWidth(border)
			if err := ctx.Stroke(); err != nil {
				return fmt.Errorf("stroke block %q: %w", e.ID, err)
			}
		}

		ctx.SetColor(surface.ParseColor(r.style.Text).Color())
		for i, line := range e.Lines {
			ctx.DrawString(line, x+inset, y+inset+ascent+float64(i)*lineHeight)
		}
	}
	return nil
}
