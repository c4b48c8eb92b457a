package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// layoutCommand creates the layout command for computing positioned layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json|map.yaml]",
		Short: "Compute a positioned layout from a mind map document",
		Long: `Compute a positioned layout from a mind map document.

The layout command reads a tree of topics and writes a layout.json file with
every visible node's box, wrapped lines and center coordinates. The root sits
at (0, 0). The file can be rendered with 'render' or consumed by any external
renderer.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, flags *layoutFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := flags.apply(cfg.Layout)
	if err != nil {
		return err
	}

	data, err := io.ReadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(output, input, ".layout.json")
	if err := mindmap.WriteLayoutFile(l, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printLayoutSummary(summarize(l, cacheHit))
	fmt.Fprintln(stdout)
	printNextStep("Render", "mindmap render "+input)

	return nil
}
