package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/quickadd"
)

func newEditCmd(opts *options) *cobra.Command {
	var (
		name     string
		priority int
		due      string
		noDue    bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Change a task",
		Long: `Change the name, priority, deadline or category of a task.

Examples:
  tsuzuki edit 3f2a --name "Buy oat milk"
  tsuzuki edit 3f2a -p 1 --due tomorrow
  tsuzuki edit 3f2a --no-due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if due != "" && noDue {
				return fmt.Errorf("--due and --no-due cannot be used together")
			}

			return opts.withApp(cmd, func(a *app.App) error {
				task, err := findTask(a.Session, args[0])
				if err != nil {
					return err
				}

				f := form.New(a.Session.CategoryNames(), "")
				f.OpenEdit(task)
				if cmd.Flags().Changed("name") {
					f.SetName(name)
				}
				if cmd.Flags().Changed("priority") {
					f.SetPriority(model.Priority(priority))
				}
				if cmd.Flags().Changed("category") {
					f.SetCategory(category)
				}
				if noDue {
					f.SetDeadline(nil)
				}
				if due != "" {
					d, err := quickadd.ParseDeadline(due, time.Now())
					if err != nil {
						return err
					}
					f.SetDeadline(d)
				}

				updated, err := f.Submit(a.Session)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated: %q\n", updated.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "New priority (1=high, 3=low)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New deadline")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the deadline")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	return cmd
}
