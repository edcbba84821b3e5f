package tui

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// Logical names for the display surfaces the controller writes to.
// The host owns the markup; the controller owns the visual state.
const (
	SurfaceStatusBar     = "status.bar"
	SurfaceStatusCompact = "status.compact"
	SurfaceSubmit        = "control.submit"
	SurfaceInput         = "control.input"
	SurfaceImageUpload   = "control.image-upload"
)

// StatusSurface displays a status descriptor.
type StatusSurface interface {
	ShowStatus(d StatusDescriptor)
}

// ControlSurface is an interactive affordance that can be enabled or
// disabled while a submission is in flight.
type ControlSurface interface {
	SetEnabled(enabled bool)
}

// InputSurface is the feedback text input.
type InputSurface interface {
	ControlSurface
	SetText(text string)
	Focus()
}

// LayoutSurface is the root container owned by exactly one display
// class at a time.
type LayoutSurface interface {
	SetDisplayClass(class string)
}

// TabButtonSurface is a tab's activation control.
type TabButtonSurface interface {
	SetActive(active bool)
	SetVisible(visible bool)
}

// TabPanelSurface is a tab's content panel.
type TabPanelSurface interface {
	SetActive(active bool)
}

// PreviewSurface is the last-feedback card.
type PreviewSurface interface {
	SetContent(body string)
	ContentHeight() int
	SetVisible(visible bool)
	SetCollapsed(collapsed bool)
	SetTruncated(truncated bool)
}

// MessageSurface shows transient, user-visible messages (clipboard
// outcomes and the like).
type MessageSurface interface {
	ShowMessage(text string, isError bool)
}

// Registry maps logical names to mounted surfaces and gates work on
// the host's one-time "surfaces mounted" signal. Restoration and
// render work scheduled before the signal is queued, not retried on a
// timer.
type Registry struct {
	mu      sync.Mutex
	mounted bool
	pending []func()

	status     map[string]StatusSurface
	controls   map[string]ControlSurface
	input      InputSurface
	layout     LayoutSurface
	tabButtons map[feedback.TabID]TabButtonSurface
	tabPanels  map[feedback.TabID]TabPanelSurface
	preview    PreviewSurface
	messages   MessageSurface

	log zerolog.Logger
}

// NewRegistry creates an empty, unmounted registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		status:     make(map[string]StatusSurface),
		controls:   make(map[string]ControlSurface),
		tabButtons: make(map[feedback.TabID]TabButtonSurface),
		tabPanels:  make(map[feedback.TabID]TabPanelSurface),
		log:        log,
	}
}

// RegisterStatus mounts a status indicator surface under name.
func (r *Registry) RegisterStatus(name string, s StatusSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = s
}

// RegisterControl mounts an enable/disable affordance under name.
func (r *Registry) RegisterControl(name string, s ControlSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[name] = s
}

// RegisterInput mounts the feedback input surface. It is also
// registered as a control under SurfaceInput.
func (r *Registry) RegisterInput(s InputSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = s
	r.controls[SurfaceInput] = s
}

// RegisterLayout mounts the root layout surface.
func (r *Registry) RegisterLayout(s LayoutSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout = s
}

// RegisterTab mounts a tab's button and panel surfaces.
func (r *Registry) RegisterTab(id feedback.TabID, button TabButtonSurface, panel TabPanelSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabButtons[id] = button
	r.tabPanels[id] = panel
}

// RegisterPreview mounts the last-feedback card surface.
func (r *Registry) RegisterPreview(s PreviewSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preview = s
}

// RegisterMessages mounts the transient message surface.
func (r *Registry) RegisterMessages(s MessageSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = s
}

// Status looks up a status surface; a miss is logged and reported,
// never fatal.
func (r *Registry) Status(name string) (StatusSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.status[name]
	if !ok {
		r.log.Warn().Str("surface", name).Msg("status surface not mounted")
	}
	return s, ok
}

// Control looks up an affordance surface.
func (r *Registry) Control(name string) (ControlSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.controls[name]
	if !ok {
		r.log.Warn().Str("surface", name).Msg("control surface not mounted")
	}
	return s, ok
}

// Input returns the feedback input surface.
func (r *Registry) Input() (InputSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.input == nil {
		r.log.Warn().Str("surface", SurfaceInput).Msg("input surface not mounted")
		return nil, false
	}
	return r.input, true
}

// Layout returns the root layout surface.
func (r *Registry) Layout() (LayoutSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.layout == nil {
		r.log.Warn().Msg("layout surface not mounted")
		return nil, false
	}
	return r.layout, true
}

// TabButton returns the button surface for a tab.
func (r *Registry) TabButton(id feedback.TabID) (TabButtonSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.tabButtons[id]
	return s, ok
}

// TabPanel returns the panel surface for a tab.
func (r *Registry) TabPanel(id feedback.TabID) (TabPanelSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.tabPanels[id]
	return s, ok
}

// Preview returns the last-feedback card surface.
func (r *Registry) Preview() (PreviewSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.preview == nil {
		return nil, false
	}
	return r.preview, true
}

// Messages returns the transient message surface.
func (r *Registry) Messages() (MessageSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.messages == nil {
		r.log.Warn().Msg("message surface not mounted")
		return nil, false
	}
	return r.messages, true
}

// WhenMounted runs fn immediately if the host has signalled mount,
// otherwise queues it for the signal.
func (r *Registry) WhenMounted(fn func()) {
	r.mu.Lock()
	if !r.mounted {
		r.pending = append(r.pending, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	fn()
}

// MarkMounted is the host's one-time signal that all surfaces are
// mounted. Queued work runs in submission order. Later calls are
// no-ops.
func (r *Registry) MarkMounted() {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		return
	}
	r.mounted = true
	queued := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}

// Mounted reports whether the host has signalled mount.
func (r *Registry) Mounted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounted
}
