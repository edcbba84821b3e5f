package tui

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// LayoutManager maps the layout mode to the single owning display
// class and derives tab visibility. The panel runs in a single
// operating mode where only the combined tab is ever shown; the
// feedback-only and summary-only tabs stay hidden even though their
// enum members remain.
type LayoutManager struct {
	reg *Registry
	log zerolog.Logger

	current feedback.LayoutMode
	applied bool
}

// NewLayoutManager creates a manager with no mode applied yet.
func NewLayoutManager(reg *Registry, log zerolog.Logger) *LayoutManager {
	return &LayoutManager{reg: reg, log: log}
}

// Apply sets the layout mode. It is idempotent: if the resulting
// display class already owns the layout, nothing is mutated. Returns
// whether a change occurred.
func (m *LayoutManager) Apply(mode feedback.LayoutMode) bool {
	if m.applied && mode.DisplayClass() == m.current.DisplayClass() {
		return false
	}

	m.current = mode
	m.applied = true

	if surface, ok := m.reg.Layout(); ok {
		surface.SetDisplayClass(mode.DisplayClass())
	}
	m.applyTabVisibility()

	m.log.Debug().Str("mode", string(mode)).Msg("layout mode applied")
	return true
}

// Current returns the active layout mode.
func (m *LayoutManager) Current() feedback.LayoutMode {
	return m.current
}

// DisplayClass returns the owning display class, or empty before the
// first Apply.
func (m *LayoutManager) DisplayClass() string {
	if !m.applied {
		return ""
	}
	return m.current.DisplayClass()
}

// VisibleTabs returns the tabs shown under the current mode.
func (m *LayoutManager) VisibleTabs() []feedback.TabID {
	return []feedback.TabID{feedback.TabCombined}
}

// AllowedTab returns the single tab that must be active regardless of
// mode.
func (m *LayoutManager) AllowedTab() feedback.TabID {
	return feedback.TabCombined
}

// Legal reports whether a tab may be active under the current mode.
func (m *LayoutManager) Legal(id feedback.TabID) bool {
	return slices.Contains(m.VisibleTabs(), id)
}

func (m *LayoutManager) applyTabVisibility() {
	visible := m.VisibleTabs()
	for _, id := range feedback.AllTabs {
		if button, ok := m.reg.TabButton(id); ok {
			button.SetVisible(slices.Contains(visible, id))
		}
	}
}
