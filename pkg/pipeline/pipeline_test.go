package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgview/pkg/cache"
	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	cfgerrors "github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/render/block"
)

const twoFunctions = `{"cfg": {
	"main": {
		"nodes": [{"id": "a", "label": "entry:\n  x = 1"}, {"id": "b", "label": "ret"}],
		"edges": [{"from": "a", "to": "b"}, {"from": "a", "to": "ghost"}]
	},
	"helper": {"nodes": [{"id": "h", "label": "nop"}]}
}}`

var fixedMeasure = block.MeasureFunc(func(e *block.Element) (float64, float64) {
	var w int
	for _, l := range e.Lines {
		w = max(w, len(l))
	}
	return float64(8*w + 12), float64(16*len(e.Lines) + 12)
})

// columnEngine stacks blocks top to bottom and draws straight edges.
type columnEngine struct {
	calls int
	err   error
}

func (c *columnEngine) Layout(_ context.Context, fn *cfg.Function) (diagram.Diagram, error) {
	c.calls++
	if c.err != nil {
		return diagram.Diagram{}, c.err
	}
	if err := layout.CheckSized(fn); err != nil {
		return diagram.Diagram{}, err
	}
	var d diagram.Diagram
	index := make(map[string]int)
	var y float64
	for i, n := range fn.Nodes {
		w, h := n.Size()
		d.Blocks = append(d.Blocks, diagram.Block{Node: n, Y: y})
		index[n.ID] = i
		y += h + 20
		d.Width = max(d.Width, w)
	}
	d.Height = y
	for _, e := range fn.Edges {
		src, dst := &d.Blocks[index[e.From]], d.Blocks[index[e.To]]
		_, sh := src.Size()
		src.Edges = append(src.Edges, diagram.Edge{From: e.From, To: e.To, Path: []diagram.Point{
			{X: 10, Y: src.Y + sh},
			{X: 10, Y: dst.Y},
		}})
	}
	return d, nil
}

func newTestRunner(t *testing.T) (*Runner, *columnEngine) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	engine := &columnEngine{}
	r := NewRunner(fc, nil, log.New(io.Discard))
	r.Engine = engine
	r.Measurer = fixedMeasure
	return r, engine
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !cfgerrors.Is(err, cfgerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, cfgerrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"dark", false},
		{"light", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, PNG,,json ")
	want := []string{"svg", "png", "json"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if got := ParseFormats(""); got != nil {
		t.Errorf("ParseFormats(\"\") = %v, want nil", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr cfgerrors.Code
	}{
		{"defaults", Options{}, ""},
		{"bad arrow", Options{Arrow: "sideways"}, cfgerrors.ErrCodeInvalidArrow},
		{"bad format", Options{Formats: []string{"gif"}}, cfgerrors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "neon"}, cfgerrors.ErrCodeInvalidInput},
		{"control char in function", Options{Function: "ma\x00in"}, cfgerrors.ErrCodeInvalidFunction},
		{"negative font", Options{FontSize: -1}, cfgerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !cfgerrors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want code %s", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats, style, scale := len(opts.Formats), opts.Style, opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != formats || opts.Style != style || opts.Scale != scale {
		t.Error("defaults changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.FontSize != DefaultFontSize {
		t.Errorf("FontSize should be %v, got %v", DefaultFontSize, opts.FontSize)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestOptionsRenderer(t *testing.T) {
	dark := Options{Style: StyleDark}
	if got := dark.Renderer(); got.StrokeColor != "#ffffff" || got.StrokeWidth != 2 {
		t.Errorf("dark renderer = %+v", got)
	}

	light := Options{Style: StyleLight, Arrow: "path", EdgeColors: true}
	got := light.Renderer()
	if got.StrokeColor == "#ffffff" {
		t.Error("light renderer should not stroke white")
	}
	if got.Arrow.String() != "path" || !got.EdgeColors {
		t.Errorf("light renderer = %+v", got)
	}
}

func TestArtifactKeyOptsScaleOnlyForPNG(t *testing.T) {
	opts := Options{Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 {
		t.Errorf("svg key scale = %v, want 0", k.Scale)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key scale = %v, want 3", k.Scale)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		function string
		wantOK   bool
		wantName string
		wantErr  cfgerrors.Code
	}{
		{name: "first function", doc: twoFunctions, wantOK: true, wantName: "main"},
		{name: "named function", doc: twoFunctions, function: "helper", wantOK: true, wantName: "helper"},
		{name: "unknown function", doc: twoFunctions, function: "nope", wantErr: cfgerrors.ErrCodeInvalidFunction},
		{name: "no cfg", doc: `{"asm": []}`},
		{name: "empty cfg", doc: `{"cfg": {}}`},
		{name: "malformed", doc: `{"cfg": [`, wantErr: cfgerrors.ErrCodeInvalidInput},
		{name: "duplicate ids", doc: `{"cfg": {"f": {"nodes": [{"id": "a"}, {"id": "a"}]}}}`, wantErr: cfgerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok, err := Parse([]byte(tt.doc), tt.function)
			if tt.wantErr != "" {
				if !cfgerrors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
		})
	}
}

func TestParseDoesNotShareNodes(t *testing.T) {
	p, _, err := Parse([]byte(twoFunctions), "")
	if err != nil {
		t.Fatal(err)
	}
	p.Function.Nodes[0].SetSize(1, 1)
	orig, _ := p.Result.Lookup("main")
	if orig.Nodes[0].Sized() {
		t.Error("sizing the parsed function changed the result")
	}
}

func TestExecute(t *testing.T) {
	r, engine := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, []byte(twoFunctions), Options{Formats: []string{"svg", "json", "dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Skipped {
		t.Fatal("result should not be skipped")
	}
	if res.Function != "main" {
		t.Errorf("Function = %q, want main", res.Function)
	}
	if res.Stats.BlockCount != 2 || res.Stats.EdgeCount != 1 {
		t.Errorf("stats = %+v, want 2 blocks and 1 edge", res.Stats)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Edge.To != "ghost" {
		t.Errorf("Dropped = %+v, want the edge to ghost", res.Dropped)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}

	svg := string(res.Artifacts[FormatSVG])
	for _, want := range []string{"<svg", "<title>CFG main</title>", `data-bb-id="a"`, `class="edge"`, `class="arrow"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"function": "main"`) {
		t.Errorf("json artifact missing function name:\n%s", res.Artifacts[FormatJSON])
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}
}

func TestExecuteCaches(t *testing.T) {
	r, engine := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}}

	first, err := r.Execute(ctx, []byte(twoFunctions), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss, got %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, []byte(twoFunctions), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit, got %+v", second.CacheInfo)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A different function is a different layout.
	third, err := r.Execute(ctx, []byte(twoFunctions), Options{Function: "helper"})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("helper should not reuse the main layout")
	}

	// Refresh bypasses the cache.
	if _, err := r.Execute(ctx, []byte(twoFunctions), Options{Formats: []string{"svg"}, Refresh: true}); err != nil {
		t.Fatal(err)
	}
	if engine.calls != 3 {
		t.Errorf("engine calls = %d, want 3", engine.calls)
	}
}

func TestExecuteSkipsWithoutCFG(t *testing.T) {
	r, engine := newTestRunner(t)

	res, err := r.Execute(context.Background(), []byte(`{"stdout": []}`), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Skipped {
		t.Error("result should be skipped")
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("artifacts = %d, want none", len(res.Artifacts))
	}
	if engine.calls != 0 {
		t.Errorf("engine calls = %d, want 0", engine.calls)
	}
}

func TestExecuteLayoutError(t *testing.T) {
	r, engine := newTestRunner(t)
	engine.err = cfgerrors.New(cfgerrors.ErrCodeLayout, "boom")

	_, err := r.Execute(context.Background(), []byte(twoFunctions), Options{})
	if !cfgerrors.Is(err, cfgerrors.ErrCodeLayout) {
		t.Fatalf("error = %v, want LAYOUT_FAILED", err)
	}
}

func TestExecuteMeasureError(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Measurer = measureErr{}

	_, err := r.Execute(context.Background(), []byte(twoFunctions), Options{})
	if !cfgerrors.Is(err, cfgerrors.ErrCodeMeasure) {
		t.Fatalf("error = %v, want MEASURE_FAILED", err)
	}
}

type measureErr struct{}

func (measureErr) Measure(*block.Element) (float64, float64, error) {
	return 0, 0, errors.New("no font")
}

func TestExecuteInvalidOptions(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Execute(context.Background(), []byte(twoFunctions), Options{Formats: []string{"gif"}})
	if !cfgerrors.IsInput(err) {
		t.Fatalf("error = %v, want an input error", err)
	}
}
