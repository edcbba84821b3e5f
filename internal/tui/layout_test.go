package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/waggle/internal/core/feedback"
)

func TestLayoutManager_Apply_sets_owning_class_and_visibility(t *testing.T) {
	ts := mountedRegistry()
	m := NewLayoutManager(ts.reg, zerolog.Nop())

	changed := m.Apply(feedback.LayoutCombinedVertical)

	assert.True(t, changed)
	assert.Equal(t, "layout-combined-vertical", ts.layout.class)
	assert.True(t, ts.buttons[feedback.TabCombined].visible)
	assert.False(t, ts.buttons[feedback.TabFeedback].visible)
	assert.False(t, ts.buttons[feedback.TabSummary].visible)
}

func TestLayoutManager_Apply_is_idempotent(t *testing.T) {
	ts := mountedRegistry()
	m := NewLayoutManager(ts.reg, zerolog.Nop())

	assert.True(t, m.Apply(feedback.LayoutCombinedHorizontal))
	setsAfterFirst := ts.layout.sets

	assert.False(t, m.Apply(feedback.LayoutCombinedHorizontal))
	assert.Equal(t, setsAfterFirst, ts.layout.sets, "second apply must not mutate the surface")
}

func TestLayoutManager_Apply_switches_modes(t *testing.T) {
	ts := mountedRegistry()
	m := NewLayoutManager(ts.reg, zerolog.Nop())

	m.Apply(feedback.LayoutCombinedVertical)
	assert.True(t, m.Apply(feedback.LayoutCombinedHorizontal))
	assert.Equal(t, "layout-combined-horizontal", ts.layout.class)
	assert.Equal(t, feedback.LayoutCombinedHorizontal, m.Current())
}

func TestLayoutManager_only_combined_tab_is_legal(t *testing.T) {
	ts := mountedRegistry()
	m := NewLayoutManager(ts.reg, zerolog.Nop())
	m.Apply(feedback.LayoutFeedbackOnly)

	// Legacy modes exist but never surface their tabs.
	assert.Equal(t, []feedback.TabID{feedback.TabCombined}, m.VisibleTabs())
	assert.True(t, m.Legal(feedback.TabCombined))
	assert.False(t, m.Legal(feedback.TabFeedback))
	assert.False(t, m.Legal(feedback.TabSummary))
	assert.Equal(t, feedback.TabCombined, m.AllowedTab())
}

func TestLayoutManager_missing_layout_surface_is_noop(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.MarkMounted()
	m := NewLayoutManager(reg, zerolog.Nop())

	assert.True(t, m.Apply(feedback.LayoutCombinedVertical)) // must not panic
	assert.Equal(t, "layout-combined-vertical", m.DisplayClass())
}
