package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
)

func newNameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "name [new-name]",
		Short: "Show or set your display name",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), a.Session.UserName())
					return nil
				}
				if err := a.Session.SetUserName(strings.Join(args, " ")); err != nil {
					return fmt.Errorf("failed to save name: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s!\n", a.Session.UserName())
				return nil
			})
		},
	}
}
