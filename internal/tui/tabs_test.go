package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/waggle/internal/core/feedback"
)

func assertExclusive(t *testing.T, ts *testSurfaces, want feedback.TabID) {
	t.Helper()
	for id, button := range ts.buttons {
		assert.Equal(t, id == want, button.active, "button %s", id)
	}
	for id, panel := range ts.panels {
		assert.Equal(t, id == want, panel.active, "panel %s", id)
	}
}

func TestTabMachine_Switch_activates_exactly_one(t *testing.T) {
	ts := mountedRegistry()
	m := NewTabMachine(ts.reg, zerolog.Nop())

	m.Switch(feedback.TabCombined)
	assertExclusive(t, ts, feedback.TabCombined)
	assert.Equal(t, feedback.TabCombined, m.Active())

	m.Switch(feedback.TabFeedback)
	assertExclusive(t, ts, feedback.TabFeedback)
}

func TestTabMachine_Switch_notifies_observer(t *testing.T) {
	ts := mountedRegistry()
	m := NewTabMachine(ts.reg, zerolog.Nop())

	var seen []feedback.TabID
	m.SetObserver(func(id feedback.TabID) { seen = append(seen, id) })

	m.Switch(feedback.TabCombined)
	assert.Equal(t, []feedback.TabID{feedback.TabCombined}, seen)
}

func TestTabMachine_SetInitial_suppresses_observer(t *testing.T) {
	ts := mountedRegistry()
	m := NewTabMachine(ts.reg, zerolog.Nop())

	notified := false
	m.SetObserver(func(feedback.TabID) { notified = true })

	m.SetInitial(feedback.TabCombined)

	assert.False(t, notified)
	assertExclusive(t, ts, feedback.TabCombined)
}

func TestTabMachine_entry_hook_runs_on_activation(t *testing.T) {
	ts := mountedRegistry()
	m := NewTabMachine(ts.reg, zerolog.Nop())

	entries := 0
	m.OnEnter(feedback.TabCombined, func() { entries++ })

	m.SetInitial(feedback.TabCombined)
	m.Switch(feedback.TabFeedback)
	m.Switch(feedback.TabCombined)

	assert.Equal(t, 2, entries)
}

func TestTabMachine_missing_surfaces_are_noop(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())
	reg.MarkMounted()
	m := NewTabMachine(reg, zerolog.Nop())

	m.Switch(feedback.TabCombined) // must not panic
	assert.Equal(t, feedback.TabCombined, m.Active())
}
