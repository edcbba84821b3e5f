package tui

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// TabObserver is notified when the user switches tabs. Programmatic
// initialization does not notify, so observers that persist the tab
// choice never re-persist a restored value.
type TabObserver func(id feedback.TabID)

// TabMachine tracks the active tab and applies activation visuals.
// Activation is recomputed across all buttons and panels on every
// switch rather than patched incrementally, so exactly one of each is
// active no matter what state preceded the call.
type TabMachine struct {
	reg *Registry
	log zerolog.Logger

	active     feedback.TabID
	observer   TabObserver
	entryHooks map[feedback.TabID]func()
}

// NewTabMachine creates a machine with no active tab.
func NewTabMachine(reg *Registry, log zerolog.Logger) *TabMachine {
	return &TabMachine{
		reg:        reg,
		log:        log,
		entryHooks: make(map[feedback.TabID]func()),
	}
}

// SetObserver registers the external tab-change observer.
func (t *TabMachine) SetObserver(fn TabObserver) {
	t.observer = fn
}

// OnEnter registers a hook run when id becomes active. Used for tabs
// that need mode-specific side effects on entry.
func (t *TabMachine) OnEnter(id feedback.TabID, fn func()) {
	t.entryHooks[id] = fn
}

// Switch activates a tab in response to user interaction and notifies
// the observer.
func (t *TabMachine) Switch(id feedback.TabID) {
	t.apply(id)
	if t.observer != nil {
		t.observer(id)
	}
}

// SetInitial activates a tab programmatically. Identical to Switch
// except the observer is not notified.
func (t *TabMachine) SetInitial(id feedback.TabID) {
	t.apply(id)
}

// Active returns the active tab.
func (t *TabMachine) Active() feedback.TabID {
	return t.active
}

func (t *TabMachine) apply(id feedback.TabID) {
	t.active = id

	for _, tab := range feedback.AllTabs {
		isActive := tab == id
		if button, ok := t.reg.TabButton(tab); ok {
			button.SetActive(isActive)
		}
		if panel, ok := t.reg.TabPanel(tab); ok {
			panel.SetActive(isActive)
		}
	}

	if hook, ok := t.entryHooks[id]; ok {
		hook()
	}

	t.log.Debug().Str("tab", string(id)).Msg("tab activated")
}
