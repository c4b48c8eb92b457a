package sink

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON serializes l for external renderers.
func RenderJSON(l *mindmap.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.compact {
		return json.Marshal(l)
	}
	return json.MarshalIndent(l, "", "  ")
}
