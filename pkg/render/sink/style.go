package sink

import (
	"github.com/matzehuels/cfgview/pkg/fonts"
	"github.com/matzehuels/cfgview/pkg/render/block"
)

// Style holds the colors and text settings blocks are drawn with.
type Style struct {
	Background  string
	BlockFill   string
	BlockStroke string
	Text        string
	FontSize    float64
	Box         block.Box
}

// DarkStyle matches the editor theme the pane lives in: white edges on a
// dark background.
var DarkStyle = Style{
	Background:  "#1e1e1e",
	BlockFill:   "#252526",
	BlockStroke: "#808080",
	Text:        "#d4d4d4",
	FontSize:    fonts.DefaultSize,
	Box:         block.DefaultBox,
}

// LightStyle is for printing. Pair it with a dark edge color on the
// renderer.
var LightStyle = Style{
	Background:  "#ffffff",
	BlockFill:   "#f5f5f5",
	BlockStroke: "#333333",
	Text:        "#000000",
	FontSize:    fonts.DefaultSize,
	Box:         block.DefaultBox,
}

func (s Style) fontSize() float64 {
	if s.FontSize <= 0 {
		return fonts.DefaultSize
	}
	return s.FontSize
}
