package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/view"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		status   string
		category string
		search   string
		sortKey  string
		desc     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks, optionally filtered and sorted.

Examples:
  tsuzuki list
  tsuzuki ls --status active --sort deadline
  tsuzuki ls --category Work --search report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.cfg.Query()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("status") {
				if q.Status, err = view.ParseStatus(status); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("sort") {
				if q.Sort, err = view.ParseSortKey(sortKey); err != nil {
					return err
				}
			}
			if desc {
				q.Order = view.Desc
			}
			if category != "" {
				q.Category = category
			}
			q.Search = search

			return opts.withApp(cmd, func(a *app.App) error {
				printList(cmd, a.Session, q)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "Show all, active or completed tasks")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only tasks in this category")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Only tasks whose name contains this text")
	cmd.Flags().StringVar(&sortKey, "sort", "none", "Sort by none, deadline or priority")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func printList(cmd *cobra.Command, s *app.Session, q view.Query) {
	out := cmd.OutOrStdout()
	all := s.Tasks()
	now := time.Now()

	fmt.Fprintf(out, "\nHello %s, %d task(s) left. %d%% done\n",
		s.UserName(), view.CountRemaining(all), view.ProgressPercent(all))
	fmt.Fprintln(out, strings.Repeat("─", 60))

	tasks := q.Apply(all)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Add one with: tsuzuki add \"Your task\"")
		return
	}

	categories := s.Categories()
	for _, t := range tasks {
		printTask(out, t, categories, now)
	}
	fmt.Fprintln(out)
}
