package tui

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/kv"
)

// TransitionHook can veto a lifecycle transition. The default is nil:
// any state may follow any state, which external orchestration relies
// on to reset the panel. The hook exists so validation can be
// tightened later without changing that default.
type TransitionHook func(from, to feedback.LifecycleState) error

// Deps is the explicit context object for one page session. Everything
// the controller and its collaborators need is resolved here, once; no
// ambient lookup happens later.
type Deps struct {
	Surfaces      *Registry
	Store         kv.KV
	Capabilities  Capabilities
	PreviewHeight int
	OnTabChange   TabObserver
	Validate      TransitionHook
	Logger        zerolog.Logger
}

// Controller owns the submission lifecycle state and layout mode and
// composes the presenter, tab machine, layout manager, and
// last-feedback cache. It is the public contract consumed by the
// submission flow; side effects are confined to surface mutation and
// storage I/O.
type Controller struct {
	reg    *Registry
	layout *LayoutManager
	tabs   *TabMachine
	status *StatusPresenter
	cache  *LastFeedbackCache

	validate TransitionHook
	log      zerolog.Logger

	mu             sync.Mutex
	state          feedback.LifecycleState
	lastSubmission time.Time
	session        string
}

// NewController wires a controller and its collaborators from deps.
func NewController(deps Deps) *Controller {
	caps := deps.Capabilities.fillDefaults()
	if deps.Store == nil {
		deps.Store = kv.NewMemory()
	}
	if deps.PreviewHeight <= 0 {
		deps.PreviewHeight = 10
	}

	c := &Controller{
		reg:      deps.Surfaces,
		validate: deps.Validate,
		log:      deps.Logger,
		state:    feedback.StateWaiting,
	}

	c.layout = NewLayoutManager(deps.Surfaces, deps.Logger)
	c.tabs = NewTabMachine(deps.Surfaces, deps.Logger)
	c.status = NewStatusPresenter(
		deps.Surfaces,
		caps.Translator,
		[]string{SurfaceStatusBar, SurfaceStatusCompact},
		deps.Logger,
	)
	c.cache = NewLastFeedbackCache(deps.Surfaces, deps.Store, caps, deps.PreviewHeight, deps.Logger)

	c.tabs.SetObserver(deps.OnTabChange)
	// The combined tab reapplies the layout's styling class on entry.
	c.tabs.OnEnter(feedback.TabCombined, func() {
		if class := c.layout.DisplayClass(); class != "" {
			if surface, ok := c.reg.Layout(); ok {
				surface.SetDisplayClass(class)
			}
		}
	})

	return c
}

// Init applies the initial layout mode, activates the derived tab
// without notifying the observer, and schedules state restoration for
// when the host signals that surfaces are mounted.
func (c *Controller) Init(ctx context.Context, mode feedback.LayoutMode) {
	c.reg.WhenMounted(func() {
		c.layout.Apply(mode)
		c.tabs.SetInitial(c.layout.AllowedTab())
		c.refreshStatus()
	})
	c.cache.Restore(ctx)
}

// SetFeedbackState stores the lifecycle state and re-renders all
// dependent surfaces. Transitions are permissive unless a validation
// hook vetoes them. An optional session hint marks the submission
// cycle; a changed hint hides the previous session's preview.
func (c *Controller) SetFeedbackState(state feedback.LifecycleState, sessionHint ...string) {
	c.mu.Lock()
	from := c.state

	if c.validate != nil {
		if err := c.validate(from, state); err != nil {
			c.mu.Unlock()
			c.log.Warn().Err(err).
				Str("from", string(from)).
				Str("to", string(state)).
				Msg("lifecycle transition vetoed")
			return
		}
	}

	newSession := false
	if len(sessionHint) > 0 && sessionHint[0] != "" && sessionHint[0] != c.session {
		newSession = c.session != ""
		c.session = sessionHint[0]
	}
	c.state = state
	c.mu.Unlock()

	if !state.Known() {
		c.log.Warn().Str("state", string(state)).Msg("unrecognized lifecycle state, displaying waiting")
	}

	if newSession {
		c.cache.Hide()
	}

	c.applyControlState(state)
	c.refreshStatus()
}

// SetLastSubmissionTime stores the last successful submission time,
// used only for display formatting in the submitted descriptor.
func (c *Controller) SetLastSubmissionTime(t time.Time) {
	c.mu.Lock()
	c.lastSubmission = t
	c.mu.Unlock()

	c.refreshStatus()
}

// ApplyLayoutMode updates the layout. It is idempotent; when the mode
// actually changes and the active tab is no longer legal, the active
// tab is forced to the single allowed tab without notifying the
// observer.
func (c *Controller) ApplyLayoutMode(mode feedback.LayoutMode) {
	if !c.layout.Apply(mode) {
		return
	}
	if !c.layout.Legal(c.tabs.Active()) {
		c.tabs.SetInitial(c.layout.AllowedTab())
	}
}

// FeedbackState returns the current lifecycle state.
func (c *Controller) FeedbackState() feedback.LifecycleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentTab returns the active tab.
func (c *Controller) CurrentTab() feedback.TabID {
	return c.tabs.Active()
}

// SwitchTab activates a tab in response to user interaction.
func (c *Controller) SwitchTab(id feedback.TabID) {
	c.tabs.Switch(id)
}

// Cache exposes the last-feedback cache to the submission flow.
func (c *Controller) Cache() *LastFeedbackCache {
	return c.cache
}

// Flush commits any debounced renders immediately. Called at teardown
// so the final state is never lost to an in-flight window.
func (c *Controller) Flush() {
	c.status.Flush()
}

func (c *Controller) refreshStatus() {
	c.mu.Lock()
	state := c.state
	last := c.lastSubmission
	c.mu.Unlock()

	c.status.Refresh(state, last)
}

// applyControlState disables the interactive affordances while a
// submission is in flight.
func (c *Controller) applyControlState(state feedback.LifecycleState) {
	enabled := state != feedback.StateProcessing
	for _, name := range []string{SurfaceSubmit, SurfaceInput, SurfaceImageUpload} {
		if control, ok := c.reg.Control(name); ok {
			control.SetEnabled(enabled)
		}
	}
}
