package tui

import (
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// Shared surface fakes for controller-level tests.

type fakeStatus struct {
	mu      sync.Mutex
	shows   int
	current StatusDescriptor
}

func (f *fakeStatus) ShowStatus(d StatusDescriptor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
	f.current = d
}

func (f *fakeStatus) snapshot() (int, StatusDescriptor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shows, f.current
}

type fakeControl struct {
	enabled bool
	sets    int
}

func (f *fakeControl) SetEnabled(v bool) { f.enabled = v; f.sets++ }

type fakeInput struct {
	fakeControl
	text    string
	focused bool
}

func (f *fakeInput) SetText(s string) { f.text = s }
func (f *fakeInput) Focus()           { f.focused = true }

type fakeLayout struct {
	class string
	sets  int
}

func (f *fakeLayout) SetDisplayClass(class string) { f.class = class; f.sets++ }

type fakeTabButton struct {
	active  bool
	visible bool
}

func (f *fakeTabButton) SetActive(v bool)  { f.active = v }
func (f *fakeTabButton) SetVisible(v bool) { f.visible = v }

type fakeTabPanel struct {
	active bool
}

func (f *fakeTabPanel) SetActive(v bool) { f.active = v }

type fakePreview struct {
	mu        sync.Mutex
	content   string
	visible   bool
	collapsed bool
	truncated bool
	renders   int
}

func (f *fakePreview) SetContent(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = body
	f.renders++
}

func (f *fakePreview) ContentHeight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.content == "" {
		return 0
	}
	return strings.Count(f.content, "\n") + 1
}

func (f *fakePreview) SetVisible(v bool)   { f.mu.Lock(); f.visible = v; f.mu.Unlock() }
func (f *fakePreview) SetCollapsed(v bool) { f.mu.Lock(); f.collapsed = v; f.mu.Unlock() }
func (f *fakePreview) SetTruncated(v bool) { f.mu.Lock(); f.truncated = v; f.mu.Unlock() }

type fakeMessages struct {
	texts  []string
	errors []bool
}

func (f *fakeMessages) ShowMessage(text string, isError bool) {
	f.texts = append(f.texts, text)
	f.errors = append(f.errors, isError)
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

var errClipBroken = errors.New("clipboard broken")

// mountedRegistry builds a registry with every surface mounted and the
// mount signal already fired.
type testSurfaces struct {
	reg      *Registry
	bar      *fakeStatus
	compact  *fakeStatus
	submit   *fakeControl
	upload   *fakeControl
	input    *fakeInput
	layout   *fakeLayout
	buttons  map[feedback.TabID]*fakeTabButton
	panels   map[feedback.TabID]*fakeTabPanel
	preview  *fakePreview
	messages *fakeMessages
}

func mountedRegistry() *testSurfaces {
	ts := &testSurfaces{
		reg:      NewRegistry(zerolog.Nop()),
		bar:      &fakeStatus{},
		compact:  &fakeStatus{},
		submit:   &fakeControl{},
		upload:   &fakeControl{},
		input:    &fakeInput{},
		layout:   &fakeLayout{},
		buttons:  map[feedback.TabID]*fakeTabButton{},
		panels:   map[feedback.TabID]*fakeTabPanel{},
		preview:  &fakePreview{},
		messages: &fakeMessages{},
	}

	ts.reg.RegisterStatus(SurfaceStatusBar, ts.bar)
	ts.reg.RegisterStatus(SurfaceStatusCompact, ts.compact)
	ts.reg.RegisterControl(SurfaceSubmit, ts.submit)
	ts.reg.RegisterControl(SurfaceImageUpload, ts.upload)
	ts.reg.RegisterInput(ts.input)
	ts.reg.RegisterLayout(ts.layout)
	for _, id := range feedback.AllTabs {
		b, p := &fakeTabButton{}, &fakeTabPanel{}
		ts.buttons[id] = b
		ts.panels[id] = p
		ts.reg.RegisterTab(id, b, p)
	}
	ts.reg.RegisterPreview(ts.preview)
	ts.reg.RegisterMessages(ts.messages)
	ts.reg.MarkMounted()

	return ts
}
