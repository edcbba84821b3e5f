package tui

import (
	"strings"
	"sync"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// The host surfaces bridge the controller stack to the bubbletea model.
// Controller calls may arrive from debounce timers outside the program
// loop, so each surface keeps its own mutex and the View reads
// snapshots.

type statusLineHost struct {
	mu sync.Mutex
	d  StatusDescriptor
}

var _ StatusSurface = (*statusLineHost)(nil)

func (s *statusLineHost) ShowStatus(d StatusDescriptor) {
	s.mu.Lock()
	s.d = d
	s.mu.Unlock()
}

func (s *statusLineHost) snapshot() StatusDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d
}

type controlHost struct {
	mu      sync.Mutex
	enabled bool
}

var _ ControlSurface = (*controlHost)(nil)

func newControlHost() *controlHost { return &controlHost{enabled: true} }

func (c *controlHost) SetEnabled(v bool) {
	c.mu.Lock()
	c.enabled = v
	c.mu.Unlock()
}

func (c *controlHost) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// inputHost defers text and focus changes. The textarea lives inside
// the model value and can only be mutated on the program loop, so the
// surface records intent and the model drains it on the next Update.
type inputHost struct {
	mu           sync.Mutex
	enabled      bool
	pendingText  *string
	focusPending bool
}

var _ InputSurface = (*inputHost)(nil)

func newInputHost() *inputHost { return &inputHost{enabled: true} }

func (i *inputHost) SetEnabled(v bool) {
	i.mu.Lock()
	i.enabled = v
	i.mu.Unlock()
}

func (i *inputHost) SetText(text string) {
	i.mu.Lock()
	i.pendingText = &text
	i.mu.Unlock()
}

func (i *inputHost) Focus() {
	i.mu.Lock()
	i.focusPending = true
	i.mu.Unlock()
}

func (i *inputHost) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

// drain returns and clears the pending intents.
func (i *inputHost) drain() (text *string, focus bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	text, focus = i.pendingText, i.focusPending
	i.pendingText, i.focusPending = nil, false
	return text, focus
}

type layoutHost struct {
	mu    sync.Mutex
	class string
}

var _ LayoutSurface = (*layoutHost)(nil)

func (l *layoutHost) SetDisplayClass(class string) {
	l.mu.Lock()
	l.class = class
	l.mu.Unlock()
}

func (l *layoutHost) Class() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.class
}

type tabButtonHost struct {
	mu      sync.Mutex
	active  bool
	visible bool
}

var _ TabButtonSurface = (*tabButtonHost)(nil)

func (b *tabButtonHost) SetActive(v bool) {
	b.mu.Lock()
	b.active = v
	b.mu.Unlock()
}

func (b *tabButtonHost) SetVisible(v bool) {
	b.mu.Lock()
	b.visible = v
	b.mu.Unlock()
}

func (b *tabButtonHost) state() (active, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, b.visible
}

type tabPanelHost struct {
	mu     sync.Mutex
	active bool
}

var _ TabPanelSurface = (*tabPanelHost)(nil)

func (p *tabPanelHost) SetActive(v bool) {
	p.mu.Lock()
	p.active = v
	p.mu.Unlock()
}

func (p *tabPanelHost) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

type previewHost struct {
	mu        sync.Mutex
	content   string
	visible   bool
	collapsed bool
	truncated bool
}

var _ PreviewSurface = (*previewHost)(nil)

func (p *previewHost) SetContent(content string) {
	p.mu.Lock()
	p.content = content
	p.mu.Unlock()
}

func (p *previewHost) ContentHeight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.content == "" {
		return 0
	}
	return strings.Count(p.content, "\n") + 1
}

func (p *previewHost) SetVisible(v bool) {
	p.mu.Lock()
	p.visible = v
	p.mu.Unlock()
}

func (p *previewHost) SetCollapsed(v bool) {
	p.mu.Lock()
	p.collapsed = v
	p.mu.Unlock()
}

func (p *previewHost) SetTruncated(v bool) {
	p.mu.Lock()
	p.truncated = v
	p.mu.Unlock()
}

func (p *previewHost) snapshot() (content string, visible, collapsed, truncated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content, p.visible, p.collapsed, p.truncated
}

// hostSurfaces bundles every host surface and registers them on a
// fresh registry.
type hostSurfaces struct {
	reg     *Registry
	bar     *statusLineHost
	compact *statusLineHost
	submit  *controlHost
	upload  *controlHost
	input   *inputHost
	layout  *layoutHost
	buttons map[feedback.TabID]*tabButtonHost
	panels  map[feedback.TabID]*tabPanelHost
	preview *previewHost
	msgs    *TransientController
}

func newHostSurfaces(reg *Registry) *hostSurfaces {
	h := &hostSurfaces{
		reg:     reg,
		bar:     &statusLineHost{},
		compact: &statusLineHost{},
		submit:  newControlHost(),
		upload:  newControlHost(),
		input:   newInputHost(),
		layout:  &layoutHost{},
		buttons: map[feedback.TabID]*tabButtonHost{},
		panels:  map[feedback.TabID]*tabPanelHost{},
		preview: &previewHost{},
		msgs:    NewTransientController(),
	}

	reg.RegisterStatus(SurfaceStatusBar, h.bar)
	reg.RegisterStatus(SurfaceStatusCompact, h.compact)
	reg.RegisterControl(SurfaceSubmit, h.submit)
	reg.RegisterControl(SurfaceImageUpload, h.upload)
	reg.RegisterInput(h.input)
	reg.RegisterLayout(h.layout)
	for _, id := range feedback.AllTabs {
		btn := &tabButtonHost{}
		panel := &tabPanelHost{}
		h.buttons[id] = btn
		h.panels[id] = panel
		reg.RegisterTab(id, btn, panel)
	}
	reg.RegisterPreview(h.preview)
	reg.RegisterMessages(h.msgs)

	return h
}
