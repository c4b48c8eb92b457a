package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated output formats
	theme    string // SVG theme
	noLinks  bool   // render linked topics as plain text
	detailed bool   // DOT labels include id, depth and direction
	noCache  bool
	watch    bool // re-render whenever the input changes
	layout   layoutFlags
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [map.json|map.yaml]",
		Short: "Render a mind map to SVG, JSON, DOT, PNG or PDF",
		Long: `Render a mind map to SVG, JSON, DOT, PNG or PDF.

Multiple formats are comma-separated (-f svg,dot). With a single format the
output is written to -o or <input>.<format>; with several, -o is a base path.

dot-svg renders the layout with Graphviz neato, pinning every node to its
computed position. PNG and PDF require rsvg-convert (librsvg).

With --watch the input file is re-rendered every time it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.watch {
				return c.watchRender(cmd.Context(), args[0], formats, &opts)
			}
			return c.runRender(cmd.Context(), args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, dot-svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", pipeline.DefaultTheme, "SVG theme: light, dark")
	cmd.Flags().BoolVar(&opts.noLinks, "no-links", false, "do not render topic links as anchors")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids and directions in DOT labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input changes")
	opts.layout.register(cmd)

	return cmd
}

// runRender renders input once in every requested format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, ro *renderOpts) error {
	stages := startStages(loggerFromContext(ctx))

	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := ro.layout.apply(cfg.Layout)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Theme = ro.theme
	opts.NoLinks = ro.noLinks
	opts.Detailed = ro.detailed

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Reading %s...", filepath.Base(input)))
	spinner.Start()
	data, err := io.ReadFile(input)
	if err != nil {
		spinner.StopWithError("Read failed")
		return err
	}
	stages.stage("read " + input)

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		spinner.Stop()
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	stages.stage("layout and render")

	paths := renderPaths(input, ro.output, formats)
	for _, format := range formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printArtifact(path, len(result.Artifacts[format]))
	}
	printLayoutSummary(summarize(result.Layout, result.CacheInfo.LayoutHit))
	stages.done("rendered", "input", input, "formats", len(formats))
	return nil
}

// renderPaths maps each format to its output file. A single format goes to
// output verbatim; several formats share output as a base path.
func renderPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		ext := f
		if f == pipeline.FormatDOTSVG {
			ext = "dot.svg"
		} else if f == pipeline.FormatJSON {
			ext = "layout.json"
		}
		paths[f] = base + "." + ext
	}
	return paths
}

// watchRender renders input, then again after every write until ctx is
// canceled. Render failures are reported and watching continues.
func (c *CLI) watchRender(ctx context.Context, input string, formats []string, ro *renderOpts) error {
	if err := c.runRender(ctx, input, formats, ro); err != nil {
		printError("%v", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors often replace the file rather than write it.
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	printInfo("Watching %s (ctrl+c to stop)", input)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			printWarning("watch: %v", err)
		case <-pending:
			pending = nil
			if err := c.runRender(ctx, input, formats, ro); err != nil {
				printError("%v", err)
			}
		}
	}
}
