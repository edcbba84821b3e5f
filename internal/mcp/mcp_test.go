package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/kv"
)

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

type stubCollector struct {
	params  CollectParams
	outcome CollectOutcome
	err     error
}

func (s *stubCollector) Collect(_ context.Context, p CollectParams) (CollectOutcome, error) {
	s.params = p
	return s.outcome, s.err
}

func resultPayload[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var out T
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func TestHandleCollect_returns_submission(t *testing.T) {
	collector := &stubCollector{
		outcome: CollectOutcome{
			Submission: feedback.Submission{
				Feedback: "approved",
				Images:   []feedback.ImageHandle{{Name: "shot.png"}},
			},
		},
	}
	h := NewHandlers(collector, kv.NewMemory(), zerolog.Nop())

	res, err := h.HandleCollect(context.Background(), makeRequest(map[string]any{
		"summary":         "## Changes\nrefactored the parser",
		"timeout_seconds": 30,
	}))
	require.NoError(t, err)

	resp := resultPayload[CollectResponse](t, res)
	assert.Equal(t, "approved", resp.Feedback)
	assert.Equal(t, 1, resp.ImageCount)
	assert.False(t, resp.TimedOut)
	assert.NotEmpty(t, resp.ID)
	assert.NotZero(t, resp.SubmittedAt)

	assert.Equal(t, 30*time.Second, collector.params.Timeout)
	assert.Contains(t, collector.params.Summary, "refactored")
}

func TestHandleCollect_defaults_timeout(t *testing.T) {
	collector := &stubCollector{}
	h := NewHandlers(collector, kv.NewMemory(), zerolog.Nop())

	_, err := h.HandleCollect(context.Background(), makeRequest(map[string]any{
		"summary": "done",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(defaultTimeoutSeconds)*time.Second, collector.params.Timeout)
}

func TestHandleCollect_timed_out_has_no_submission_time(t *testing.T) {
	collector := &stubCollector{outcome: CollectOutcome{TimedOut: true}}
	h := NewHandlers(collector, kv.NewMemory(), zerolog.Nop())

	res, err := h.HandleCollect(context.Background(), makeRequest(map[string]any{
		"summary": "done",
	}))
	require.NoError(t, err)

	resp := resultPayload[CollectResponse](t, res)
	assert.True(t, resp.TimedOut)
	assert.Empty(t, resp.Feedback)
	assert.Zero(t, resp.SubmittedAt)
}

func TestHandleCollect_session_failure_is_tool_error(t *testing.T) {
	collector := &stubCollector{err: errors.New("no tty")}
	h := NewHandlers(collector, kv.NewMemory(), zerolog.Nop())

	res, err := h.HandleCollect(context.Background(), makeRequest(map[string]any{
		"summary": "done",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleLast_roundtrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	rec := feedback.Record{Feedback: "looks good", ImageCount: 2, Timestamp: 1700000000000}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, lastFeedbackKey, string(raw)))

	h := NewHandlers(&stubCollector{}, store, zerolog.Nop())
	res, err := h.HandleLast(ctx, makeRequest(nil))
	require.NoError(t, err)

	resp := resultPayload[LastResponse](t, res)
	assert.True(t, resp.Found)
	assert.Equal(t, "looks good", resp.Feedback)
	assert.Equal(t, 2, resp.ImageCount)
	assert.Equal(t, int64(1700000000000), resp.Timestamp)
}

func TestHandleLast_missing_record(t *testing.T) {
	h := NewHandlers(&stubCollector{}, kv.NewMemory(), zerolog.Nop())

	res, err := h.HandleLast(context.Background(), makeRequest(nil))
	require.NoError(t, err)

	resp := resultPayload[LastResponse](t, res)
	assert.False(t, resp.Found)
}

func TestHandleLast_corrupt_record_reports_not_found(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, lastFeedbackKey, "{{{not json"))

	h := NewHandlers(&stubCollector{}, store, zerolog.Nop())
	res, err := h.HandleLast(ctx, makeRequest(nil))
	require.NoError(t, err)

	resp := resultPayload[LastResponse](t, res)
	assert.False(t, resp.Found)
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	assert.ElementsMatch(t, []string{"feedback_collect", "feedback_last"}, names)
}
