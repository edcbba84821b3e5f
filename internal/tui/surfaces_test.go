package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/waggle/internal/core/feedback"
)

func TestRegistry_WhenMounted_queues_until_signal(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	var order []int
	reg.WhenMounted(func() { order = append(order, 1) })
	reg.WhenMounted(func() { order = append(order, 2) })
	assert.Empty(t, order)
	assert.False(t, reg.Mounted())

	reg.MarkMounted()
	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, reg.Mounted())

	// After the signal, work runs inline.
	reg.WhenMounted(func() { order = append(order, 3) })
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRegistry_MarkMounted_is_one_shot(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	ran := 0
	reg.WhenMounted(func() { ran++ })
	reg.MarkMounted()
	reg.MarkMounted()

	assert.Equal(t, 1, ran)
}

func TestRegistry_missing_surfaces_report_not_ok(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	_, ok := reg.Status(SurfaceStatusBar)
	assert.False(t, ok)
	_, ok = reg.Control(SurfaceSubmit)
	assert.False(t, ok)
	_, ok = reg.Input()
	assert.False(t, ok)
	_, ok = reg.Layout()
	assert.False(t, ok)
	_, ok = reg.Preview()
	assert.False(t, ok)
	_, ok = reg.Messages()
	assert.False(t, ok)
	_, ok = reg.TabButton(feedback.TabCombined)
	assert.False(t, ok)
}
