package render

import (
	"math"
	"strings"

	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
)

// ArrowStyle selects how arrowheads are oriented.
type ArrowStyle int

const (
	// ArrowDown points every arrowhead straight down.
	ArrowDown ArrowStyle = iota
	// ArrowAlongPath points the arrowhead along the edge's last segment.
	ArrowAlongPath
)

// ArrowStyles lists the accepted names for [ParseArrowStyle].
var ArrowStyles = []string{"down", "path"}

func (s ArrowStyle) String() string {
	if s == ArrowAlongPath {
		return "path"
	}
	return "down"
}

// ParseArrowStyle parses "down" or "path". An empty string means down.
func ParseArrowStyle(s string) (ArrowStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down":
		return ArrowDown, nil
	case "path", "along-path":
		return ArrowAlongPath, nil
	}
	return ArrowDown, errors.New(errors.ErrCodeInvalidArrow, "unknown arrow style %q (want one of %s)", s, strings.Join(ArrowStyles, ", "))
}

// Arrowhead returns the triangle drawn at an edge terminus. The tip is end;
// the base is h away from it and w wide. prev is the point before end and
// only matters for [ArrowAlongPath].
func Arrowhead(end, prev diagram.Point, w, h float64, style ArrowStyle) [3]diagram.Point {
	ux, uy := 0.0, 1.0
	if style == ArrowAlongPath {
		dx, dy := end.X-prev.X, end.Y-prev.Y
		if l := math.Hypot(dx, dy); l > 0 {
			ux, uy = dx/l, dy/l
		}
	}
	// (nx, ny) is perpendicular to the direction of travel.
	nx, ny := uy, -ux
	bx, by := end.X-ux*h, end.Y-uy*h
	return [3]diagram.Point{
		{X: bx - nx*w/2, Y: by - ny*w/2},
		{X: bx + nx*w/2, Y: by + ny*w/2},
		end,
	}
}
