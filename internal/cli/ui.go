package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/pipeline"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the picker title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders the picker's active filter.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleOK       = lipgloss.NewStyle().Foreground(colorGreen)
	styleNote     = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner  = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleDropEdge = lipgloss.NewStyle().Foreground(colorYellow).Strikethrough(true)
)

const (
	markOK    = "✓"
	markWarn  = "!"
	markNote  = "›"
	markEdge  = "→"
	sepStats  = " · "
	hitLabel  = "cached"
	missLabel = "fresh"
)

func (c *CLI) println(s string) { fmt.Fprintln(c.out, s) }

// success prints a line marked as done.
func (c *CLI) success(format string, args ...any) {
	c.println(styleOK.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

// warn prints a warning; the message itself is coloured too.
func (c *CLI) warn(format string, args ...any) {
	c.println(styleWarnMark() + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func styleWarnMark() string { return StyleWarning.Render(markWarn) }

func (c *CLI) note(format string, args ...any) {
	c.println(styleNote.Render(markNote) + " " + fmt.Sprintf(format, args...))
}

func (c *CLI) detail(format string, args ...any) {
	c.println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// dropped lists edges the decoder removed because an endpoint names no node
// of the function.
func (c *CLI) dropped(edges []cfg.DroppedEdge) {
	for _, d := range edges {
		edge := styleDropEdge.Render(d.Edge.From + " " + markEdge + " " + d.Edge.To)
		c.println(styleWarnMark() + " " + edge + StyleWarning.Render(fmt.Sprintf(" in %s: %s", d.Function, d.Reason)))
	}
}

// summary prints the size of the drawn function and where each stage came
// from, e.g. "12 blocks · 15 edges · layout cached · artifacts fresh".
func (c *CLI) summary(r *pipeline.Result) {
	parts := []string{
		fmt.Sprintf("%d blocks", r.Stats.BlockCount),
		fmt.Sprintf("%d edges", r.Stats.EdgeCount),
		"layout " + hitOrMiss(r.CacheInfo.LayoutHit),
		"artifacts " + hitOrMiss(r.CacheInfo.RenderHit),
	}
	c.println("  " + strings.Join(parts, StyleDim.Render(sepStats)))
}

func hitOrMiss(hit bool) string {
	if hit {
		return styleOK.Render(hitLabel)
	}
	return styleNote.Render(missLabel)
}

// artifact prints one written output file with its size.
func (c *CLI) artifact(path string, size int) {
	c.println("  " + StyleDim.Render(markEdge) + " " + StyleValue.Render(path) + " " +
		StyleDim.Render("("+byteSize(size)+")"))
}

// hint suggests the command to run next.
func (c *CLI) hint(description, cmd string) {
	c.println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
