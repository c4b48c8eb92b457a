package pipeline

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/text"
)

// =============================================================================
// Layout Generation
// =============================================================================

// NewMeasurer returns the text measurer with the given name.
func NewMeasurer(name string) (text.Measurer, error) {
	switch name {
	case MeasurerFont, "":
		fm, err := text.NewFontMeasurer()
		if err != nil {
			return nil, err
		}
		return fm, nil
	case MeasurerCell:
		return text.CellMeasurer{Ratio: text.DefaultCellRatio}, nil
	default:
		return nil, ValidateMeasurer(name)
	}
}

// GenerateLayout runs one full layout pass over data with a fresh engine.
// opts must already be validated with ValidateForLayout.
func GenerateLayout(data any, m text.Measurer, opts Options) (*mindmap.Layout, error) {
	e := mindmap.New(m,
		mindmap.WithOptions(opts.Layout),
		mindmap.WithLogger(opts.Logger),
	)
	if err := e.Load(data); err != nil {
		return nil, err
	}
	e.SetCollapsed(opts.Collapsed)

	l, err := e.Layout()
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return l, nil
}
