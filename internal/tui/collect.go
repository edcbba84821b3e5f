package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// CollectResult is the outcome of one interactive collection session.
type CollectResult struct {
	Submission feedback.Submission
	TimedOut   bool
}

// RunCollect runs the panel until the user submits, cancels, or the
// timeout elapses. Input and Output override the terminal streams for
// hosts whose stdio is already claimed by a wire protocol.
func RunCollect(ctx context.Context, opts ModelOptions, input io.Reader, output io.Writer) (CollectResult, error) {
	opts.QuitOnSubmit = true
	model := NewModel(ctx, opts)

	teaOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if input != nil {
		teaOpts = append(teaOpts, tea.WithInput(input))
	}
	if output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(output))
	}

	final, err := tea.NewProgram(model, teaOpts...).Run()
	if err != nil {
		return CollectResult{}, fmt.Errorf("run feedback panel: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return CollectResult{}, fmt.Errorf("unexpected final model %T", final)
	}

	result := CollectResult{TimedOut: m.TimedOut()}
	if sub := m.Submission(); sub != nil {
		result.Submission = *sub
	}
	return result, nil
}
