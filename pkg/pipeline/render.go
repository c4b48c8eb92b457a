package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
// opts must already be validated with ValidateForRender.
func Render(ctx context.Context, l *mindmap.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := RenderFormat(ctx, l, format, opts, artifacts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format. Previously rendered artifacts are
// reused, so PNG and PDF convert the SVG rather than drawing it twice.
func RenderFormat(ctx context.Context, l *mindmap.Layout, format string, opts Options, rendered map[string][]byte) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderSVG(l, opts)
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatDOTSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
	case FormatPNG, FormatPDF:
		svg, ok := rendered[FormatSVG]
		if !ok {
			var err error
			if svg, err = renderSVG(l, opts); err != nil {
				return nil, err
			}
		}
		if format == FormatPNG {
			return render.ToPNG(ctx, svg, opts.Scale)
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, ValidateFormat(format)
	}
}

func renderSVG(l *mindmap.Layout, opts Options) ([]byte, error) {
	svgOpts := []sink.SVGOption{
		sink.WithTheme(sink.Themes[opts.Theme]),
		sink.WithLineHeight(opts.Layout.LineHeight),
		sink.WithIconSpace(opts.Layout.IconSpace),
	}
	if opts.NoLinks {
		svgOpts = append(svgOpts, sink.WithoutLinks())
	}
	return sink.RenderSVG(l, svgOpts...)
}
