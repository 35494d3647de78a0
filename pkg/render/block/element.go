package block

import (
	"slices"
	"strings"
)

// Element is the visual representation of one basic block.
type Element struct {
	// ID is the node id the element is tagged with.
	ID string
	// Lines is the label split on line breaks. Line breaks are kept, never
	// collapsed into spaces.
	Lines []string

	// X and Y are the top-left corner assigned by the renderer.
	X, Y float64
	// Width and Height are the outer (border-box) size recorded by the
	// materializer.
	Width, Height float64

	committed bool
}

// NewElement creates an element for a node label.
func NewElement(id, label string) *Element {
	return &Element{ID: id, Lines: splitLines(label)}
}

// Label joins the lines back into the original label.
func (e *Element) Label() string { return strings.Join(e.Lines, "\n") }

func splitLines(label string) []string {
	if label == "" {
		return nil
	}
	return strings.Split(label, "\n")
}

// Container is the region block elements are inserted into. It is owned by
// a single view and is not safe for concurrent use.
type Container struct {
	elements []*Element
	byID     map[string]*Element

	width, height float64
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{byID: make(map[string]*Element)}
}

// Clear removes every element.
func (c *Container) Clear() {
	c.elements = nil
	c.byID = make(map[string]*Element)
}

// Append inserts an element. It is not committed until the next Commit. An
// element with an id already present replaces the earlier one in lookups
// but both stay in insertion order, mirroring duplicate DOM nodes.
func (c *Container) Append(e *Element) {
	if c.byID == nil {
		c.byID = make(map[string]*Element)
	}
	e.committed = false
	c.elements = append(c.elements, e)
	if _, ok := c.byID[e.ID]; !ok {
		c.byID[e.ID] = e
	}
}

// Commit runs the layout pass over every inserted element. Sizes may only
// be read from committed elements.
func (c *Container) Commit() {
	for _, e := range c.elements {
		e.committed = true
	}
}

// Committed reports whether the element with id has been committed.
func (c *Container) Committed(id string) bool {
	e, ok := c.byID[id]
	return ok && e.committed
}

// Element returns the element tagged with id.
func (c *Container) Element(id string) (*Element, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Elements returns the elements in insertion order.
func (c *Container) Elements() []*Element {
	return slices.Clone(c.elements)
}

// Len returns the number of elements.
func (c *Container) Len() int { return len(c.elements) }

// Resize sets the container region's size.
func (c *Container) Resize(w, h float64) {
	c.width, c.height = w, h
}

// Size returns the container region's size.
func (c *Container) Size() (w, h float64) { return c.width, c.height }
