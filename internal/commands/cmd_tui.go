package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/i18n"
	"github.com/colonyops/waggle/internal/core/logging"
	"github.com/colonyops/waggle/internal/tui"
)

// Terminals at least this wide get the side-by-side combined layout by
// default.
const wideTerminalColumns = 120

type TuiCmd struct {
	flags *Flags
	app   *App

	layout  string
	summary string
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "layout",
			Usage:       "panel layout (feedback-only, summary-only, combined-vertical, combined-horizontal)",
			Sources:     cli.EnvVars("WAGGLE_LAYOUT"),
			Destination: &cmd.layout,
		},
		&cli.StringFlag{
			Name:        "summary",
			Usage:       "markdown summary to display alongside the feedback input",
			Destination: &cmd.summary,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	caps := cmd.capabilities()

	model := tui.NewModel(ctx, tui.ModelOptions{
		Store:         cmd.app.Store,
		Capabilities:  caps,
		Layout:        cmd.resolveLayout(),
		PreviewHeight: cmd.app.Config.PreviewHeight,
		Summary:       cmd.summary,
		Logger:        logging.Component("tui"),
	})

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// resolveLayout picks the layout from flag, then config, then the
// terminal width.
func (cmd *TuiCmd) resolveLayout() feedback.LayoutMode {
	if cmd.layout != "" {
		return feedback.ParseLayoutMode(cmd.layout)
	}
	return cmd.app.Config.LayoutMode(defaultLayoutForTerminal())
}

func defaultLayoutForTerminal() feedback.LayoutMode {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && width >= wideTerminalColumns {
		return feedback.LayoutCombinedHorizontal
	}
	return feedback.LayoutCombinedVertical
}

func (cmd *TuiCmd) capabilities() tui.Capabilities {
	caps := tui.DefaultCapabilities()

	table, err := i18n.Load(cmd.app.Config.Language, cmd.app.Config.StringsFile)
	if err != nil {
		logger := logging.Component("i18n")
		logger.Warn().Err(err).Msg("falling back to built-in strings")
	}
	caps.Translator = table

	return caps
}
