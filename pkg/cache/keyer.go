package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the diagram of one function of a cfg document.
	LayoutKey(cfgHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a diagram.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the inputs besides the cfg document that change a
// layout.
type LayoutKeyOpts struct {
	Function string  `json:"function"`
	Engine   string  `json:"engine"`
	FontSize float64 `json:"font_size"`
}

// ArtifactKeyOpts lists the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Arrow      string  `json:"arrow,omitempty"`
	Style      string  `json:"style,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	EdgeColors bool    `json:"edge_colors,omitempty"`
	Title      string  `json:"title,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(cfgHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", cfgHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", layoutHash, opts)
}
