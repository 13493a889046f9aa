package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/quickadd"
	"github.com/dori/tsuzuki/internal/view"
)

func newAddCmd(opts *options) *cobra.Command {
	var (
		priority int
		category string
		due      string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a new task",
		Long: `Add a new task. Priority, category and deadline can be given as flags
or inline in the text.

Examples:
  tsuzuki add "Buy milk"
  tsuzuki add "Quarterly report !1 #Work due:friday"
  tsuzuki add "Essay" -p 2 -c School -d 2025-06-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			draft := quickadd.Parse(strings.Join(args, " "), now)

			if cmd.Flags().Changed("priority") {
				draft.Priority = model.Priority(priority)
			}
			if category != "" {
				draft.Category = category
			}
			if due != "" {
				d, err := quickadd.ParseDeadline(due, now)
				if err != nil {
					return err
				}
				draft.Deadline = d
			}

			return opts.withApp(cmd, func(a *app.App) error {
				f := form.New(a.Session.CategoryNames(), defaultCategory(opts.cfg.DefaultCategory, a.Session))
				f.OpenCreate()
				f.SetName(draft.Name)
				if draft.Priority != 0 || cmd.Flags().Changed("priority") {
					f.SetPriority(draft.Priority)
				}
				if draft.Category != "" {
					f.SetCategory(draft.Category)
				}
				f.SetDeadline(draft.Deadline)

				task, err := f.Submit(a.Session)
				if err != nil {
					return describeError(err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Added [%s] %q (%s)\n", task.Category, task.Name, task.Priority.Stars())
				if task.Deadline != nil {
					fmt.Fprintf(out, "  Due: %s\n", view.FormatDeadline(task.Deadline, now))
				}
				fmt.Fprintf(out, "  ID:  %s\n", shortID(task.ID))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&priority, "priority", "p", int(model.DefaultPriority), "Priority (1=high, 3=low)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Deadline (e.g. 'tomorrow', 'fri', '2025-06-01 17:30')")
	return cmd
}
