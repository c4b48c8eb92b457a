// Package text measures and wraps node labels.
//
// # Measurement
//
// Text width is an environment concern: a browser measures with canvas, a
// server with a font file, a terminal with cell widths. The layout core only
// sees the [Measurer] strategy and never calls a platform API itself. Two
// implementations ship with the package:
//
//   - [FontMeasurer]: glyph advances from an OpenType font (Go Regular by
//     default) via golang.org/x/image
//   - [CellMeasurer]: terminal cell widths from go-runewidth scaled by the
//     font size, useful for tests and headless previews
//
// A [Meter] wraps a Measurer for one engine instance. It caches results by
// (text, fontSize) and rejects non-finite or negative widths with a
// MEASUREMENT_ERROR.
//
// # Wrapping
//
// [Wrap] packs whitespace-separated words greedily onto lines that fit a
// pixel budget. A word wider than the budget on its own is broken into the
// shortest run of characters that still fits, so no line exceeds the budget
// unless a single character is itself wider than the budget.
package text
