// Package pipeline provides the batch rendering pipeline for cfgview.
//
// The pane draws compile results as they arrive on the hub; this package
// does the same work for a compile result that is already on disk or in a
// request body, and is shared by the CLI and the HTTP server so both behave
// the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: decode the compile result and pick one function
//  2. Materialize: create and measure one block per node
//  3. Layout: ask the layout engine for block positions and edge paths
//  4. Render: draw the diagram and encode it (SVG, PNG, PDF, JSON, DOT)
//
// Layouts and artifacts are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgview/pkg/cache"
	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/fonts"
	"github.com/matzehuels/cfgview/pkg/render"
	"github.com/matzehuels/cfgview/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFontSize is the label size blocks are measured and drawn with.
	DefaultFontSize = fonts.DefaultSize

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultStyle is the default color scheme.
	DefaultStyle = StyleDark
)

// Style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported color schemes.
var ValidStyles = map[string]bool{
	StyleDark:  true,
	StyleLight: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Function string `json:"function,omitempty"` // empty selects the first function
	Refresh  bool   `json:"refresh,omitempty"`

	// Layout options
	FontSize float64 `json:"font_size,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Arrow      string   `json:"arrow,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EdgeColors bool     `json:"edge_colors,omitempty"`
	Title      string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Skipped is set when the compile result carried no cfg or no
	// function. Nothing else is filled in then.
	Skipped bool

	// Function is the name of the rendered function.
	Function string

	// CFGHash is the content hash of the compile result.
	CFGHash string

	// Diagram is the laid out function.
	Diagram diagram.Diagram

	// Dropped lists edges removed while validating the cfg.
	Dropped []cfg.DroppedEdge

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount      int
	EdgeCount       int
	ParseTime       time.Duration
	MaterializeTime time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the diagram came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: dark, light)", style)
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the function name.
func (o *Options) ValidateForParse() error {
	if o.Function != "" {
		if err := errors.ValidateFunctionName(o.Function); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Clone returns a copy that is validated afresh on its next use.
func (o Options) Clone() Options {
	o.Formats = append([]string(nil), o.Formats...)
	o.validated = false
	return o
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %g", o.FontSize)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.ParseArrowStyle(o.Arrow); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// ArrowStyle returns the parsed arrow style. Invalid names yield
// [render.ArrowDown]; ValidateForRender reports them.
func (o *Options) ArrowStyle() render.ArrowStyle {
	s, err := render.ParseArrowStyle(o.Arrow)
	if err != nil {
		return render.ArrowDown
	}
	return s
}

// SinkStyle returns the color scheme for the style name, sized to FontSize.
func (o *Options) SinkStyle() sink.Style {
	s := sink.DarkStyle
	if o.Style == StyleLight {
		s = sink.LightStyle
	}
	if o.FontSize > 0 {
		s.FontSize = o.FontSize
	}
	return s
}

// Renderer returns the edge renderer configured by these options. Light
// output strokes edges in the text color so they stay visible.
func (o *Options) Renderer() render.Renderer {
	r := render.NewRenderer()
	r.Arrow = o.ArrowStyle()
	r.EdgeColors = o.EdgeColors
	if o.Style == StyleLight {
		r.StrokeColor = sink.LightStyle.Text
	}
	return r
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(function, engine string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Function: function,
		Engine:   engine,
		FontSize: o.FontSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Arrow:      o.ArrowStyle().String(),
		Style:      o.Style,
		EdgeColors: o.EdgeColors,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

