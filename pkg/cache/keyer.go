package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the input with the
	// given content hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the input that affects a layout.
type LayoutKeyOpts struct {
	Options   any    `json:"options"`   // normalized layout options
	Collapsed []int  `json:"collapsed"` // sorted collapsed ids
	Measurer  string `json:"measurer"`  // measurer identity, e.g. "font:goregular"
}

// ArtifactKeyOpts holds everything that affects rendering a layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme,omitempty"`
	Links  bool   `json:"links,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}
