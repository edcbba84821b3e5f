package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/waggle/internal/core/logging"
	"github.com/colonyops/waggle/internal/mcp"
	"github.com/colonyops/waggle/internal/tui"
)

type McpCmd struct {
	flags *Flags
	app   *App
}

// NewMcpCmd creates a new mcp command.
func NewMcpCmd(flags *Flags, app *App) *McpCmd {
	return &McpCmd{
		flags: flags,
		app:   app,
	}
}

func (cmd *McpCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Description: `Serves the feedback_collect and feedback_last tools over stdio.

Because stdio carries the wire protocol, the interactive panel is opened
on the controlling terminal instead.`,
		Action: cmd.run,
	})
	return root
}

func (cmd *McpCmd) run(_ context.Context, _ *cli.Command) error {
	log := logging.Component("mcp")

	collector := &ttyCollector{app: cmd.app, log: log}
	if err := mcp.Run(collector, cmd.app.Store, cmd.app.Build.Version, log); err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

// ttyCollector opens the panel on the controlling terminal, keeping
// stdin and stdout free for the protocol.
type ttyCollector struct {
	app *App
	log zerolog.Logger
}

var _ mcp.Collector = (*ttyCollector)(nil)

func (t *ttyCollector) Collect(ctx context.Context, p mcp.CollectParams) (mcp.CollectOutcome, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return mcp.CollectOutcome{}, fmt.Errorf("open controlling terminal: %w", err)
	}
	defer tty.Close()

	session := ulid.Make().String()
	t.log.Info().
		Str("session", session).
		Str("project_dir", p.ProjectDirectory).
		Dur("timeout", p.Timeout).
		Msg("opening feedback panel")

	result, err := tui.RunCollect(ctx, tui.ModelOptions{
		Store:         t.app.Store,
		Capabilities:  tui.DefaultCapabilities(),
		Layout:        t.app.Config.LayoutMode(defaultLayoutForTerminal()),
		PreviewHeight: t.app.Config.PreviewHeight,
		Summary:       p.Summary,
		Session:       session,
		Timeout:       p.Timeout,
		Logger:        t.log,
	}, tty, tty)
	if err != nil {
		return mcp.CollectOutcome{}, err
	}

	return mcp.CollectOutcome{
		Submission: result.Submission,
		TimedOut:   result.TimedOut,
	}, nil
}
