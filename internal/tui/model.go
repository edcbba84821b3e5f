package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/kv"
)

// SubmitFunc delivers a submission to whoever is waiting on it. A nil
// func accepts the payload locally.
type SubmitFunc func(ctx context.Context, sub feedback.Submission) error

// ModelOptions configures one panel session.
type ModelOptions struct {
	Store         kv.KV
	Capabilities  Capabilities
	Layout        feedback.LayoutMode
	PreviewHeight int
	Summary       string
	Session       string
	Timeout       time.Duration
	Submit        SubmitFunc
	QuitOnSubmit  bool
	Logger        zerolog.Logger
}

type messageTickMsg time.Time

type collectTimeout struct{}

type submitResultMsg struct {
	payload feedback.Submission
	err     error
}

// Model is the bubbletea host for the feedback panel. All lifecycle,
// tab, layout, and cache decisions live in the controller; the model
// translates terminal events into controller calls and renders the
// surface state the controller wrote.
type Model struct {
	ctx        context.Context
	opts       ModelOptions
	caps       Capabilities
	hosts      *hostSurfaces
	controller *Controller
	styles     styles
	log        zerolog.Logger

	input           textarea.Model
	width, height   int
	ready           bool
	summaryRendered string

	submission *feedback.Submission
	timedOut   bool
	quitting   bool
}

// NewModel builds the panel model and its controller stack.
func NewModel(ctx context.Context, opts ModelOptions) *Model {
	caps := opts.Capabilities.fillDefaults()
	if opts.Store == nil {
		opts.Store = kv.NewMemory()
	}

	reg := NewRegistry(opts.Logger)
	hosts := newHostSurfaces(reg)

	controller := NewController(Deps{
		Surfaces:      reg,
		Store:         opts.Store,
		Capabilities:  caps,
		PreviewHeight: opts.PreviewHeight,
		Logger:        opts.Logger,
	})

	ta := textarea.New()
	ta.Placeholder = caps.Translator.T("feedback.placeholder", "Type your feedback here...")
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.Focus()

	m := &Model{
		ctx:        ctx,
		opts:       opts,
		caps:       caps,
		hosts:      hosts,
		controller: controller,
		styles:     defaultStyles(),
		log:        opts.Logger,
		input:      ta,
	}

	controller.Init(ctx, opts.Layout)
	if opts.Session != "" {
		controller.SetFeedbackState(feedback.StateWaiting, opts.Session)
	}

	return m
}

// Controller exposes the controller for orchestration and tests.
func (m *Model) Controller() *Controller { return m.controller }

// Submission returns the submitted payload, if any.
func (m *Model) Submission() *feedback.Submission { return m.submission }

// TimedOut reports whether the session ended on the collection timeout.
func (m *Model) TimedOut() bool { return m.timedOut }

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.Timeout > 0 {
		cmds = append(cmds, tea.Tick(m.opts.Timeout, func(time.Time) tea.Msg {
			return collectTimeout{}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		if !m.ready {
			m.ready = true
			// All surfaces exist once the first frame has a size.
			m.hosts.reg.MarkMounted()
		}

	case collectTimeout:
		m.timedOut = true
		m.quitting = true
		m.controller.Flush()
		return m, tea.Quit

	case messageTickMsg:
		m.hosts.msgs.Tick(messageTickInterval)
		if !m.hosts.msgs.HasMessages() {
			m.hosts.msgs.SetTicking(false)
			return m, nil
		}
		return m, messageTick()

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	if m.hosts.input.Enabled() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncInput()

	if m.hosts.msgs.HasMessages() && !m.hosts.msgs.Ticking() {
		m.hosts.msgs.SetTicking(true)
		cmds = append(cmds, messageTick())
	}

	return m, tea.Batch(cmds...)
}

func messageTick() tea.Cmd {
	return tea.Tick(messageTickInterval, func(t time.Time) tea.Msg {
		return messageTickMsg(t)
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.controller.Flush()
		return m, tea.Quit, true

	case "ctrl+d":
		return m.submit()

	case "ctrl+t":
		m.cycleTab()
		return m, nil, true

	case "ctrl+y":
		m.controller.Cache().Copy(m.ctx)
		return m, m.ensureMessageTick(), true

	case "ctrl+l":
		m.controller.Cache().Load()
		m.syncInput()
		return m, m.ensureMessageTick(), true

	case "ctrl+o":
		m.controller.Cache().ToggleCollapse(m.ctx)
		return m, nil, true

	case "ctrl+e":
		m.controller.Cache().Expand()
		return m, nil, true
	}

	return nil, nil, false
}

func (m *Model) ensureMessageTick() tea.Cmd {
	if m.hosts.msgs.HasMessages() && !m.hosts.msgs.Ticking() {
		m.hosts.msgs.SetTicking(true)
		return messageTick()
	}
	return nil
}

func (m *Model) cycleTab() {
	visible := m.controller.layout.VisibleTabs()
	if len(visible) < 2 {
		return
	}
	active := m.controller.CurrentTab()
	for i, id := range visible {
		if id == active {
			m.controller.SwitchTab(visible[(i+1)%len(visible)])
			return
		}
	}
	m.controller.SwitchTab(visible[0])
}

func (m *Model) submit() (tea.Model, tea.Cmd, bool) {
	if !m.hosts.submit.Enabled() {
		return m, nil, true
	}

	payload := feedback.Submission{Feedback: strings.TrimSpace(m.input.Value())}
	if payload.Empty() {
		m.hosts.msgs.Push(m.caps.Translator.T("feedback.empty", "Nothing to submit yet"), true)
		return m, m.ensureMessageTick(), true
	}

	m.controller.SetFeedbackState(feedback.StateProcessing)
	m.syncInput()

	submit := m.opts.Submit
	ctx := m.ctx
	return m, func() tea.Msg {
		var err error
		if submit != nil {
			err = submit(ctx, payload)
		}
		return submitResultMsg{payload: payload, err: err}
	}, true
}

func (m *Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("submission failed")
		m.controller.SetFeedbackState(feedback.StateWaiting)
		m.hosts.msgs.Push(m.caps.Translator.T("feedback.submit_failed", "Submission failed: ")+msg.err.Error(), true)
		m.syncInput()
		return m, m.ensureMessageTick()
	}

	m.controller.SetLastSubmissionTime(time.Now())
	m.controller.SetFeedbackState(feedback.StateSubmitted)
	m.controller.Cache().Show(m.ctx, msg.payload)
	m.submission = &msg.payload
	m.input.Reset()
	m.syncInput()

	if m.opts.QuitOnSubmit {
		m.quitting = true
		m.controller.Flush()
		return m, tea.Quit
	}
	return m, nil
}

// syncInput drains deferred surface intents into the textarea and
// mirrors the enabled flag onto its focus state.
func (m *Model) syncInput() {
	if text, focus := m.hosts.input.drain(); text != nil || focus {
		if text != nil {
			m.input.SetValue(*text)
		}
		if focus {
			m.input.Focus()
		}
	}

	if m.hosts.input.Enabled() {
		if !m.input.Focused() {
			m.input.Focus()
		}
	} else if m.input.Focused() {
		m.input.Blur()
	}
}

func (m *Model) resize() {
	inner := m.width - 6
	if inner < 20 {
		inner = 20
	}
	m.input.SetWidth(inner)

	if m.opts.Summary != "" {
		rendered, err := m.caps.Markdown.Render(m.opts.Summary)
		if err != nil {
			m.log.Warn().Err(err).Msg("summary render failed, using raw text")
			rendered = m.opts.Summary
		}
		m.summaryRendered = strings.TrimRight(rendered, "\n")
	}
}
