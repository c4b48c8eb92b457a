package text

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures text with glyph advances from an OpenType font.
// Faces are created lazily per font size and reused. FontMeasurer is safe
// for concurrent use.
type FontMeasurer struct {
	font *opentype.Font
	dpi  float64

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer returns a measurer for the embedded Go Regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	return NewFontMeasurerFromTTF(goregular.TTF)
}

// NewFontMeasurerFromTTF returns a measurer for the given TrueType/OpenType data.
// Font sizes are interpreted as CSS pixels (72 DPI, one point per pixel).
func NewFontMeasurerFromTTF(data []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontMeasurer{font: f, dpi: 72, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the advance width of text in pixels. It returns NaN if a
// face cannot be created for fontSize, which a [Meter] reports as a
// measurement error.
func (fm *FontMeasurer) Measure(text string, fontSize float64) float64 {
	face, err := fm.face(fontSize)
	if err != nil {
		return math.NaN()
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()
	adv := font.MeasureString(face, text)
	return float64(adv) / 64
}

func (fm *FontMeasurer) face(size float64) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if f, ok := fm.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fm.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     fm.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	fm.faces[size] = f
	return f, nil
}

// Close releases the cached faces.
func (fm *FontMeasurer) Close() error {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	for size, f := range fm.faces {
		_ = f.Close()
		delete(fm.faces, size)
	}
	return nil
}
