package mindmap

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Engine lays out one mind map at a time.
type Engine struct {
	meter     *text.Meter
	opts      layout.Options
	logger    *log.Logger
	data      any
	loaded    bool
	collapsed *tree.CollapseSet
	last      *tree.Tree
}

// Option configures an Engine.
type Option func(*Engine)

// WithOptions sets the layout options. Invalid values fall back to their
// defaults and are logged as warnings.
func WithOptions(opts layout.Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an Engine measuring text with m.
func New(m text.Measurer, opts ...Option) *Engine {
	e := &Engine{
		meter:     text.NewMeter(m),
		opts:      layout.DefaultOptions(),
		collapsed: tree.NewCollapseSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	e.normalize()
	return e
}

func (e *Engine) normalize() {
	for _, w := range e.opts.Normalize() {
		e.logger.Warn(w)
	}
}

// Load validates data by building a tree from it, then retains it for
// subsequent layout passes and clears the collapse set. On error the
// previously loaded data and collapse set are kept.
func (e *Engine) Load(data any) error {
	if _, err := tree.Build(data, e.opts.BuildOptions()); err != nil {
		return err
	}
	e.data = data
	e.loaded = true
	e.last = nil
	e.collapsed.Clear()
	return nil
}

// LoadJSON decodes a JSON document and loads it.
func (e *Engine) LoadJSON(b []byte) error {
	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode mind map JSON")
	}
	return e.Load(data)
}

// Loaded reports whether data has been loaded.
func (e *Engine) Loaded() bool { return e.loaded }

// Layout runs a full layout pass over the loaded data and exports the
// result. It fails with INVALID_INPUT before the first Load and with
// MEASUREMENT_ERROR when the measurer misbehaves.
func (e *Engine) Layout() (*Layout, error) {
	if !e.loaded {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no mind map loaded")
	}

	start := time.Now()
	ctx := &layout.Context{Options: e.opts, Collapsed: e.collapsed, Meter: e.meter}
	t, err := layout.Run(e.data, ctx)
	if err != nil {
		return nil, err
	}
	e.last = t

	l := Export(t, ctx)
	hits, misses := e.meter.Stats()
	e.logger.Debug("layout complete",
		"mode", e.opts.Mode,
		"nodes", t.Len(),
		"placed", len(l.Nodes),
		"collapsed", e.collapsed.Len(),
		"measure_hits", hits,
		"measure_misses", misses,
		"elapsed", time.Since(start).Round(time.Microsecond))
	return l, nil
}

// Tree returns the tree of the most recent successful layout pass, or nil.
func (e *Engine) Tree() *tree.Tree { return e.last }

// Collapse returns the engine's collapse set. Changes take effect on the
// next Layout call.
func (e *Engine) Collapse() *tree.CollapseSet { return e.collapsed }

// Toggle flips the collapsed state of id and reports whether it is now
// collapsed. Unknown ids are recorded like any other; they have no effect
// on layout.
func (e *Engine) Toggle(id int) bool { return e.collapsed.Toggle(id) }

// SetCollapsed replaces the collapse set with ids.
func (e *Engine) SetCollapsed(ids []int) {
	e.collapsed.Clear()
	for _, id := range ids {
		e.collapsed.Add(id)
	}
}

// Options returns the normalized layout options.
func (e *Engine) Options() layout.Options { return e.opts }

// SetOptions replaces the layout options. The collapse set is kept.
func (e *Engine) SetOptions(opts layout.Options) {
	e.opts = opts
	e.normalize()
}
