package text

import "github.com/mattn/go-runewidth"

// DefaultCellRatio is the average glyph width as a fraction of the font size.
const DefaultCellRatio = 0.55

// CellMeasurer approximates text width from terminal cell widths: each cell
// is Ratio·fontSize pixels wide, so wide (CJK, emoji) runes count double.
type CellMeasurer struct {
	Ratio float64
}

// Measure returns cells(text) · Ratio · fontSize.
func (c CellMeasurer) Measure(text string, fontSize float64) float64 {
	ratio := c.Ratio
	if ratio <= 0 {
		ratio = DefaultCellRatio
	}
	return float64(runewidth.StringWidth(text)) * ratio * fontSize
}
