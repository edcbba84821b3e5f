package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/i18n"
)

// Coalescing windows for status rendering. The aggregate refresh is
// driven by upstream state churn and gets the wider window; the
// per-surface commit stays tighter so a committed update lands fast.
const (
	statusRefreshWindow = 150 * time.Millisecond
	statusCommitWindow  = 50 * time.Millisecond
)

// StatusDescriptor is the display form of a lifecycle state. It is
// recomputed on every describe call and never persisted.
type StatusDescriptor struct {
	Icon    string
	Title   string
	Message string
	Status  string
}

// Describe maps a lifecycle state and the last successful submission
// time to a display descriptor. Unrecognized states yield the waiting
// descriptor; that is a defensive default, not an error.
func Describe(tr i18n.Translator, state feedback.LifecycleState, lastSubmission time.Time) StatusDescriptor {
	switch state {
	case feedback.StateProcessing:
		return StatusDescriptor{
			Icon:    "⚙️",
			Title:   tr.T("status.processing.title", "Processing"),
			Message: tr.T("status.processing.message", "Submitting your feedback..."),
			Status:  string(feedback.StateProcessing),
		}
	case feedback.StateSubmitted:
		msg := tr.T("status.submitted.message", "Feedback submitted")
		if !lastSubmission.IsZero() {
			msg = fmt.Sprintf("%s (%s)", msg, lastSubmission.Local().Format("15:04:05"))
		}
		return StatusDescriptor{
			Icon:    "✅",
			Title:   tr.T("status.submitted.title", "Submitted"),
			Message: msg,
			Status:  string(feedback.StateSubmitted),
		}
	default:
		return StatusDescriptor{
			Icon:    "⏳",
			Title:   tr.T("status.waiting.title", "Waiting"),
			Message: tr.T("status.waiting.message", "Waiting for your feedback"),
			Status:  string(feedback.StateWaiting),
		}
	}
}

// StatusPresenter renders lifecycle state into the mounted status
// surfaces. Renders are trailing-debounced on two independent windows:
// one for the aggregate refresh, one per target surface. Intermediate
// descriptors may be dropped; only the final one must be visible.
type StatusPresenter struct {
	reg     *Registry
	tr      i18n.Translator
	targets []string
	log     zerolog.Logger

	mu             sync.Mutex
	state          feedback.LifecycleState
	lastSubmission time.Time

	refresh *Debouncer
	commits map[string]*Debouncer
}

// NewStatusPresenter creates a presenter writing to the given target
// surfaces with the default coalescing windows.
func NewStatusPresenter(reg *Registry, tr i18n.Translator, targets []string, log zerolog.Logger) *StatusPresenter {
	return newStatusPresenter(reg, tr, targets, log, statusRefreshWindow, statusCommitWindow)
}

func newStatusPresenter(reg *Registry, tr i18n.Translator, targets []string, log zerolog.Logger, refreshWindow, commitWindow time.Duration) *StatusPresenter {
	p := &StatusPresenter{
		reg:     reg,
		tr:      tr,
		targets: targets,
		log:     log,
		state:   feedback.StateWaiting,
		commits: make(map[string]*Debouncer, len(targets)),
	}

	p.refresh = NewDebouncer(refreshWindow, p.commitAll)
	for _, name := range targets {
		name := name
		p.commits[name] = NewDebouncer(commitWindow, func() { p.commit(name) })
	}

	return p
}

// Refresh records the state to display and schedules a coalesced
// render of all target surfaces.
func (p *StatusPresenter) Refresh(state feedback.LifecycleState, lastSubmission time.Time) {
	p.mu.Lock()
	p.state = state
	p.lastSubmission = lastSubmission
	p.mu.Unlock()

	p.refresh.Trigger()
}

// Flush forces any pending renders to commit immediately. Used at
// teardown so the final state is never lost to an in-flight window.
func (p *StatusPresenter) Flush() {
	p.refresh.Flush()
	for _, d := range p.commits {
		d.Flush()
	}
}

// Describe returns the descriptor the presenter would render right now.
func (p *StatusPresenter) Describe() StatusDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Describe(p.tr, p.state, p.lastSubmission)
}

func (p *StatusPresenter) commitAll() {
	for _, name := range p.targets {
		p.commits[name].Trigger()
	}
}

// commit reads the current state at fire time, so a superseded
// descriptor is never written.
func (p *StatusPresenter) commit(name string) {
	surface, ok := p.reg.Status(name)
	if !ok {
		return
	}
	surface.ShowStatus(p.Describe())
}
