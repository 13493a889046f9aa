package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/view"
)

func newCategoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	addCmd := &cobra.Command{
		Use:   "add [name] [icon]",
		Short: "Add a category",
		Long: `Add a category. The icon is one of the tags listed by 'tsuzuki icons'.

Example:
  tsuzuki category add Errands cart`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				c, err := a.Session.AddCategory(args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to add category: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added category %s\n", c.Label())
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				tasks := a.Session.Tasks()
				out := cmd.OutOrStdout()
				for _, c := range a.Session.Categories() {
					inCat := view.FilterByCategory(tasks, c.Name)
					fmt.Fprintf(out, "  %-20s %d open / %d total\n",
						c.Label(), view.CountRemaining(inCat), len(inCat))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func newIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the icon tags a category can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range model.IconTags() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", model.Glyph(tag), tag)
			}
			return nil
		},
	}
}
