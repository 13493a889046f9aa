package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/persist"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks and categories",
		Long: `Write every task and category as JSON or YAML.

Examples:
  tsuzuki export
  tsuzuki export --format yaml -o backup.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				doc := persist.NewDocument(a.Session.UserName(), a.Session.Tasks(), a.Session.Categories())

				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}
				return doc.Write(w, format)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
