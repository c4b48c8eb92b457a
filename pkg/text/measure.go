package text

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Measurer returns the rendered pixel width of text at the given font size.
// Implementations must be deterministic for identical arguments.
type Measurer interface {
	Measure(text string, fontSize float64) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(text string, fontSize float64) float64

// Measure calls f(text, fontSize).
func (f MeasureFunc) Measure(text string, fontSize float64) float64 { return f(text, fontSize) }

type measureKey struct {
	text string
	size float64
}

// Meter validates and caches measurements for a single engine instance.
// It is not safe for concurrent use.
type Meter struct {
	m      Measurer
	cache  map[measureKey]float64
	hits   int
	misses int
}

// NewMeter returns a Meter backed by m.
func NewMeter(m Measurer) *Meter {
	return &Meter{m: m, cache: make(map[measureKey]float64)}
}

// Width returns the width of text at fontSize, measuring each distinct pair
// only once. Non-finite or negative results are reported as a
// MEASUREMENT_ERROR and are not cached.
func (mt *Meter) Width(text string, fontSize float64) (float64, error) {
	key := measureKey{text, fontSize}
	if w, ok := mt.cache[key]; ok {
		mt.hits++
		return w, nil
	}

	w := mt.m.Measure(text, fontSize)
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, errors.Measurement("measurer returned %v for %q at font size %v", w, text, fontSize)
	}
	mt.cache[key] = w
	mt.misses++
	return w, nil
}

// Stats returns the number of cache hits and misses so far.
func (mt *Meter) Stats() (hits, misses int) { return mt.hits, mt.misses }

// Len returns the number of cached measurements.
func (mt *Meter) Len() int { return len(mt.cache) }
