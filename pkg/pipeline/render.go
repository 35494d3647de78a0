package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/observability"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/sink"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

// Render generates output artifacts in the requested formats.
//
// c must hold the materialized blocks of fn; the diagram positions them.
// lineHeight is the label line advance used for SVG text, zero picks one
// from the font size.
func Render(ctx context.Context, d diagram.Diagram, c *block.Container, name string, fn *cfg.Function, lineHeight float64, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := renderArtifacts(d, c, name, fn, lineHeight, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderArtifacts(d diagram.Diagram, c *block.Container, name string, fn *cfg.Function, lineHeight float64, opts Options) (map[string][]byte, error) {
	rdr := opts.Renderer()

	// Vector outputs share one recorded pass.
	rec := surface.NewRecorder()
	if needsRecording(opts.Formats) {
		if err := rdr.Render(d, c, rec); err != nil {
			return nil, err
		}
	}
	svgOpts := buildSVGOptions(name, lineHeight, opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(c, rec, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(d, c, rdr,
				sink.WithPNGStyle(opts.SinkStyle()),
				sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(c, rec, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(d,
				sink.WithJSONFunction(name),
				sink.WithJSONArrow(opts.ArrowStyle().String()))
		case FormatDOT:
			var dot string
			dot, err = layout.DOT(fn, layout.DefaultDOTOptions)
			data = []byte(dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func needsRecording(formats []string) bool {
	for _, f := range formats {
		if f == FormatSVG || f == FormatPDF {
			return true
		}
	}
	return false
}

func buildSVGOptions(name string, lineHeight float64, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(opts.SinkStyle())}
	title := opts.Title
	if title == "" && name != "" {
		title = "CFG " + name
	}
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	if lineHeight > 0 {
		svgOpts = append(svgOpts, sink.WithLineHeight(lineHeight))
	}
	return svgOpts
}
