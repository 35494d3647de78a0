package sink

import (
	"github.com/matzehuels/cfgview/pkg/render"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the blocks and recorded edges as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(c *block.Container, rec *surface.Recorder, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(c, rec, append(r.svgOpts, WithEmbeddedFont())...)
	return render.ToPDF(svg)
}
