package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/notify"
)

func newRemindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send desktop notifications for overdue and due-today tasks",
		Long: `Send a desktop notification listing overdue tasks, plus one for each
task due later today. Meant to be run from cron or a systemd timer. Falls
back to printing when notifications are disabled or notify-send is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				now := time.Now()
				tasks := a.Session.Tasks()
				out := cmd.OutOrStdout()
				desktop := a.Notifier.IsEnabled() && a.Notifier.Available()

				var notifications []notify.Notification
				if n, ok := notify.OverdueReminder(tasks, now); ok {
					notifications = append(notifications, n)
				}
				for _, t := range notify.DueToday(tasks, now) {
					notifications = append(notifications, notify.DueReminder(t.Name, t.Deadline.Sub(now)))
				}

				if len(notifications) == 0 {
					fmt.Fprintln(out, "Nothing overdue or due today.")
					return nil
				}

				for _, n := range notifications {
					if !desktop {
						fmt.Fprintf(out, "%s\n%s\n\n", n.Title, n.Body)
						continue
					}
					if err := a.Notifier.Send(n); err != nil {
						return fmt.Errorf("failed to send notification: %w", err)
					}
				}
				return nil
			})
		},
	}
}
