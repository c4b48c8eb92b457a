package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// convertCommand converts a document between JSON and YAML.
func (c *CLI) convertCommand() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a mind map document between JSON and YAML",
		Long: `Convert a mind map document between JSON and YAML.

Formats are chosen by file extension (.json, .yaml, .yml). With --validate the
document must also be a tree the layout engine accepts.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadFile(args[0])
			if err != nil {
				return err
			}
			if validate {
				cfg, err := c.config()
				if err != nil {
					return err
				}
				t, err := tree.Build(data, cfg.Layout.BuildOptions())
				if err != nil {
					return err
				}
				c.Logger.Debug("validated", "nodes", t.Len(), "depth", t.MaxDepth())
			}
			if err := io.WriteFile(args[1], data); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			printSuccess("Converted %s", args[0])
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", true, "check that the document is a valid mind map")
	return cmd
}
