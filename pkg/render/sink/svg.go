package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/cfgview/pkg/fonts"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	title      string
	lineHeight float64
	embedFont  bool
}

// WithStyle sets colors and font size.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithLineHeight sets the distance between label lines. It should match the
// measurer the blocks were sized with.
func WithLineHeight(h float64) SVGOption { return func(r *svgRenderer) { r.lineHeight = h } }

// WithEmbeddedFont inlines the Go Mono font so the SVG renders identically
// without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG writes the positioned blocks of c and the edges recorded in rec
// as one SVG document sized like the recorder's surface.
func RenderSVG(c *block.Container, rec *surface.Recorder, opts ...SVGOption) []byte {
	r := svgRenderer{style: DarkStyle}
	for _, opt := range opts {
		opt(&r)
	}
	if r.lineHeight <= 0 {
		r.lineHeight = math.Ceil(r.style.fontSize() * 1.2)
	}

	w, h := rec.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	r.renderDefs(&buf)
	if r.style.Background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", surface.CSSColor(r.style.Background))
	}

	for _, e := range c.Elements() {
		r.renderBlock(&buf, e)
	}
	for _, op := range rec.Ops() {
		renderOp(&buf, op)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>\n")
	if r.embedFont {
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }\n",
			fonts.FontFamily, fonts.MonoTTFBase64())
	}
	fmt.Fprintf(buf, "      .block rect { fill: %s; stroke: %s; stroke-width: %.1f; }\n",
		surface.CSSColor(r.style.BlockFill), surface.CSSColor(r.style.BlockStroke), r.style.Box.Border)
	fmt.Fprintf(buf, "      .block text { fill: %s; font-family: %s; font-size: %.1fpx; white-space: pre; }\n",
		surface.CSSColor(r.style.Text), fonts.FallbackFontFamily, r.style.fontSize())
	buf.WriteString("    </style>\n  </defs>\n")
}

func (r *svgRenderer) renderBlock(buf *bytes.Buffer, e *block.Element) {
	half := r.style.Box.Border / 2
	fmt.Fprintf(buf, `  <g class="block" data-bb-id="%s">`+"\n", escapeXML(e.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		e.X+half, e.Y+half, math.Max(0, e.Width-2*half), math.Max(0, e.Height-2*half))

	inset := r.style.Box.Padding + r.style.Box.Border
	for i, line := range e.Lines {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dominant-baseline="hanging" xml:space="preserve">%s</text>`+"\n",
			e.X+inset, e.Y+inset+float64(i)*r.lineHeight, escapeXML(line))
	}
	buf.WriteString("  </g>\n")
}

func renderOp(buf *bytes.Buffer, op surface.Op) {
	var pts bytes.Buffer
	for i, p := range op.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.2f,%.2f", p.X, p.Y)
	}
	color := surface.CSSColor(op.Color)
	switch op.Kind {
	case surface.OpStroke:
		fmt.Fprintf(buf, `  <polyline class="edge" points="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
			pts.String(), color, op.Width)
	case surface.OpFill:
		fmt.Fprintf(buf, `  <polygon class="arrow" points="%s" fill="%s"/>`+"\n", pts.String(), color)
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
