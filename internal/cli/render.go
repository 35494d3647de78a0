package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/pipeline"
	"github.com/matzehuels/cfgview/pkg/render"
)

// renderFlags holds the command-line flags shared by render and pick.
// Only flags the user set override the config file.
type renderFlags struct {
	output     string // output file path (or base path for multiple formats)
	formats    string // comma-separated output formats
	function   string // function to draw, first in key order when empty
	arrow      string // arrowhead style
	style      string // color scheme
	title      string // SVG title
	fontSize   float64
	scale      float64
	edgeColors bool
	noCache    bool
	refresh    bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fs.StringVar(&f.function, "function", "", "function to draw (default: first in the compile result)")
	fs.StringVar(&f.arrow, "arrow", "", "arrowhead style: "+strings.Join(render.ArrowStyles, ", "))
	fs.StringVar(&f.style, "style", "", "color scheme: dark (default), light")
	fs.StringVar(&f.title, "title", "", "diagram title (default: CFG <function>)")
	fs.Float64Var(&f.fontSize, "font-size", 0, "label font size in pixels")
	fs.Float64Var(&f.scale, "scale", 0, "PNG scale factor")
	fs.BoolVar(&f.edgeColors, "edge-colors", false, "draw edges in the colors the compiler assigned")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached layouts and artifacts")
}

// options layers the set flags over the config file.
func (f *renderFlags) options(c *CLI, fs *pflag.FlagSet) pipeline.Options {
	opts := c.Config.Render.Options()
	opts.Logger = c.Logger
	opts.Function = f.function
	opts.Title = f.title
	opts.Refresh = f.refresh
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if fs.Changed("arrow") {
		opts.Arrow = f.arrow
	}
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("font-size") {
		opts.FontSize = f.fontSize
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("edge-colors") {
		opts.EdgeColors = f.edgeColors
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <compile-result.json>",
		Short: "Render the CFG of a compile result",
		Long: `Render the control-flow graph of one function in a compile result.

The input is the JSON a compiler returns, with the graph under its "cfg" key.
Use "-" to read from stdin. A compile result without a cfg renders nothing.`,
		Example: `  cfgview render result.json
  cfgview render result.json --function square -f svg,png -o square
  cfgview render - --arrow path --style light < result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c, cmd.Flags())
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], flags.output, flags.noCache, opts)
		},
	}
	flags.register(cmd.Flags())
	registerRenderCompletions(cmd)
	return cmd
}

// runRender executes the pipeline on input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", displayName(input)))
	spinner.Start()
	result, err := runner.Execute(ctx, data, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if result.Skipped {
		c.warn("No CFG in %s, nothing to render", displayName(input))
		return nil
	}
	prog.done("Rendered", "function", result.Function, "formats", opts.Formats)

	c.dropped(result.Dropped)
	c.summary(result)

	base := basePath(output, input, result.Function)
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" {
			path = output
		}
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		c.artifact(path, len(result.Artifacts[format]))
	}
	if opts.Function == "" && input != "-" {
		c.hint("Draw another function", "cfgview pick "+input)
	}
	return nil
}

// basePath derives the base output path. Without an output the input name
// is used, suffixed with the function; stdin input falls back to "cfg".
// A known format extension on output is stripped.
func basePath(output, input, function string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	base := "cfg"
	if input != "-" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if function != "" {
		base += "_" + sanitizeFileName(function)
	}
	return base
}

// sanitizeFileName replaces characters that do not belong in file names,
// such as those in mangled C++ symbols.
func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, s)
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}

// readInput reads a file, or stdin for "-".
func readInput(input string) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", input)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return data, nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
