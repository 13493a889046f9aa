package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/config"
	"github.com/dori/tsuzuki/internal/debug"
	"github.com/dori/tsuzuki/internal/ui"
)

// Set at build time with -ldflags "-X github.com/dori/tsuzuki/internal/cli.version=..."
var version = "0.1.0"

// options is shared by every command of one invocation
type options struct {
	configPath string
	dataDir    string
	cfg        config.Config
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tsuzuki",
		Short: "tsuzuki - a small to-do list for the terminal",
		Long: `tsuzuki keeps a single to-do list with priorities, deadlines and
categories.

Run 'tsuzuki' without arguments to launch the interactive TUI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runTUI()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default $TSUZUKI_CONFIG or ~/.config/tsuzuki/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the task database")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newClearCmd(opts),
		newCategoryCmd(opts),
		newIconsCmd(),
		newNameCmd(opts),
		newExportCmd(opts),
		newRemindCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) load(cmd *cobra.Command) error {
	path := config.ResolvePath(o.configPath)
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	o.cfg = cfg
	debug.Logf("command %q, config %s, data dir %s", cmd.CommandPath(), path, cfg.ResolvedDataDir())
	return nil
}

// withApp opens the store for the duration of fn
func (o *options) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := app.New(o.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.LoadWarning != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (defaults loaded instead)\n", a.LoadWarning)
	}
	return fn(a)
}

func (o *options) runTUI() error {
	a, err := app.New(o.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := ui.NewRootModel(a)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tsuzuki v%s\n", version)
		},
	}
}
