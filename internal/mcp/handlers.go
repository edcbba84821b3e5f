package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/kv"
)

const (
	lastFeedbackKey       = "mcp_last_feedback"
	defaultTimeoutSeconds = 600
)

// CollectParams is the collector's input for one session.
type CollectParams struct {
	Summary          string
	ProjectDirectory string
	Timeout          time.Duration
}

// CollectOutcome is what the collector returns.
type CollectOutcome struct {
	Submission feedback.Submission
	TimedOut   bool
}

// Collector runs one interactive collection session. The TUI provides
// the real implementation; tests stub it.
type Collector interface {
	Collect(ctx context.Context, p CollectParams) (CollectOutcome, error)
}

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	collector Collector
	store     kv.KV
	log       zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(collector Collector, store kv.KV, log zerolog.Logger) *Handlers {
	return &Handlers{collector: collector, store: store, log: log}
}

// CollectRequest represents the arguments for feedback_collect.
type CollectRequest struct {
	Summary          string `json:"summary"`
	ProjectDirectory string `json:"project_directory,omitempty"`
	TimeoutSeconds   int    `json:"timeout_seconds,omitempty"`
}

// CollectResponse is the feedback_collect result payload.
type CollectResponse struct {
	ID          string `json:"id"`
	Feedback    string `json:"feedback"`
	ImageCount  int    `json:"image_count"`
	SubmittedAt int64  `json:"submitted_at"`
	TimedOut    bool   `json:"timed_out"`
}

// LastResponse is the feedback_last result payload.
type LastResponse struct {
	Found      bool   `json:"found"`
	Feedback   string `json:"feedback,omitempty"`
	ImageCount int    `json:"image_count,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// HandleCollect handles the feedback_collect tool call. It blocks until
// the user submits, cancels, or the timeout elapses.
func (h *Handlers) HandleCollect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CollectRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	seconds := input.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}

	outcome, err := h.collector.Collect(ctx, CollectParams{
		Summary:          input.Summary,
		ProjectDirectory: input.ProjectDirectory,
		Timeout:          time.Duration(seconds) * time.Second,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("collection session failed")
		return errorResult(err), nil
	}

	resp := CollectResponse{
		ID:         ulid.Make().String(),
		Feedback:   outcome.Submission.Feedback,
		ImageCount: len(outcome.Submission.Images),
		TimedOut:   outcome.TimedOut,
	}
	if !outcome.TimedOut {
		resp.SubmittedAt = time.Now().UnixMilli()
	}

	return successResult(resp)
}

// HandleLast handles the feedback_last tool call. It reads the durable
// record without opening a session. A missing or unreadable record is
// reported as not found, never as an error.
func (h *Handlers) HandleLast(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok, err := h.store.Get(ctx, lastFeedbackKey)
	if err != nil {
		return errorResult(err), nil
	}
	if !ok {
		return successResult(LastResponse{Found: false})
	}

	var rec feedback.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		h.log.Warn().Err(err).Msg("stored feedback record is malformed")
		return successResult(LastResponse{Found: false})
	}

	return successResult(LastResponse{
		Found:      true,
		Feedback:   rec.Feedback,
		ImageCount: rec.ImageCount,
		Timestamp:  rec.Timestamp,
	})
}

// Result helpers

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
