package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
)

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				n, err := a.Session.RemoveCompleted()
				if err != nil {
					return fmt.Errorf("failed to clear tasks: %w", err)
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d completed task(s)\n", n)
				return nil
			})
		},
	}
}
