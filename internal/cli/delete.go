package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
)

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				task, err := findTask(a.Session, args[0])
				if err != nil {
					return err
				}
				if _, err := a.Session.RemoveTask(task.ID); err != nil {
					return fmt.Errorf("failed to delete task: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✗ Deleted: %q\n", task.Name)
				return nil
			})
		},
	}
}
