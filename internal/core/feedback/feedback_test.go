package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLayoutMode(t *testing.T) {
	tests := []struct {
		input string
		want  LayoutMode
	}{
		{"feedback-only", LayoutFeedbackOnly},
		{"summary-only", LayoutSummaryOnly},
		{"combined-vertical", LayoutCombinedVertical},
		{"combined-horizontal", LayoutCombinedHorizontal},
		{"", LayoutCombinedVertical},
		{"sideways", LayoutCombinedVertical},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLayoutMode(tt.input))
		})
	}
}

func TestLayoutMode_DisplayClass_is_unique_per_mode(t *testing.T) {
	seen := map[string]LayoutMode{}
	for _, m := range []LayoutMode{LayoutFeedbackOnly, LayoutSummaryOnly, LayoutCombinedVertical, LayoutCombinedHorizontal} {
		class := m.DisplayClass()
		_, dup := seen[class]
		assert.False(t, dup, "display class %q owned by two modes", class)
		seen[class] = m
	}
}

func TestLifecycleState_Known(t *testing.T) {
	assert.True(t, StateWaiting.Known())
	assert.True(t, StateProcessing.Known())
	assert.True(t, StateSubmitted.Known())
	assert.False(t, LifecycleState("exploded").Known())
}

func TestSubmission_Empty(t *testing.T) {
	assert.True(t, Submission{}.Empty())
	assert.False(t, Submission{Feedback: "hi"}.Empty())
	assert.False(t, Submission{Images: []ImageHandle{{Name: "a.png"}}}.Empty())
}

func TestProject_drops_image_payloads(t *testing.T) {
	now := time.Now()
	sub := Submission{
		Feedback: "looks good",
		Images: []ImageHandle{
			{Name: "a.png", Data: []byte{1, 2, 3}},
			{Name: "b.png", Data: []byte{4}},
			{Name: "c.png", Data: []byte{5}},
		},
	}

	rec := Project(sub, now)

	assert.Equal(t, "looks good", rec.Feedback)
	assert.Equal(t, 3, rec.ImageCount)
	assert.Equal(t, now.UnixMilli(), rec.Timestamp)
	assert.Equal(t, now.UnixMilli(), rec.CapturedAt().UnixMilli())
}
