package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
)

func newDoneCmd(opts *options) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as done",
		Long: `Mark a task as completed. Ids may be shortened to any unique prefix.

Examples:
  tsuzuki done 3f2a
  tsuzuki done 3f2a --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				task, err := findTask(a.Session, args[0])
				if err != nil {
					return err
				}

				done := !undo
				if _, err := a.Session.SetDone(task.ID, done); err != nil {
					return fmt.Errorf("failed to update task: %w", err)
				}

				if done {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %q\n", task.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: %q\n", task.Name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark task as not done")
	return cmd
}
