// Package feedback holds the domain types shared by the feedback
// collection UI: submission lifecycle states, layout modes, tab
// identifiers, and the persisted last-feedback projection.
package feedback

import "time"

// LifecycleState is the submission-progress stage, distinct from UI
// layout or tab state.
type LifecycleState string

const (
	StateWaiting    LifecycleState = "waiting"
	StateProcessing LifecycleState = "processing"
	StateSubmitted  LifecycleState = "submitted"
)

// Known reports whether s is a recognized lifecycle state. Unknown
// states are not errors; presenters fall back to the waiting display.
func (s LifecycleState) Known() bool {
	switch s {
	case StateWaiting, StateProcessing, StateSubmitted:
		return true
	}
	return false
}

// LayoutMode selects how the feedback and summary panes are arranged.
// The feedback-only and summary-only members are retained for forward
// compatibility; their tabs are never shown.
type LayoutMode string

const (
	LayoutFeedbackOnly       LayoutMode = "feedback-only"
	LayoutSummaryOnly        LayoutMode = "summary-only"
	LayoutCombinedVertical   LayoutMode = "combined-vertical"
	LayoutCombinedHorizontal LayoutMode = "combined-horizontal"
)

// ParseLayoutMode maps a config string to a LayoutMode, defaulting to
// combined-vertical for empty or unrecognized values.
func ParseLayoutMode(s string) LayoutMode {
	switch LayoutMode(s) {
	case LayoutFeedbackOnly, LayoutSummaryOnly, LayoutCombinedVertical, LayoutCombinedHorizontal:
		return LayoutMode(s)
	}
	return LayoutCombinedVertical
}

// DisplayClass returns the single owning display class for the mode.
// Exactly one class owns the layout surface at a time.
func (m LayoutMode) DisplayClass() string {
	switch m {
	case LayoutFeedbackOnly:
		return "layout-feedback-only"
	case LayoutSummaryOnly:
		return "layout-summary-only"
	case LayoutCombinedHorizontal:
		return "layout-combined-horizontal"
	default:
		return "layout-combined-vertical"
	}
}

// TabID identifies a tab in the feedback panel.
type TabID string

const (
	TabFeedback TabID = "feedback"
	TabSummary  TabID = "summary"
	TabCombined TabID = "combined"
)

// AllTabs lists every tab the panel knows about, visible or not.
var AllTabs = []TabID{TabFeedback, TabSummary, TabCombined}

// ImageHandle is an opaque reference to an attached image. The binary
// payload never survives persistence; only the count does.
type ImageHandle struct {
	Name string
	Data []byte
}

// Submission is the payload handed to the UI by the submission flow.
type Submission struct {
	Feedback string
	Images   []ImageHandle
}

// Empty reports whether the submission carries neither text nor images.
func (s Submission) Empty() bool {
	return s.Feedback == "" && len(s.Images) == 0
}

// Record is the reduced projection of the most recent submission that
// is persisted across sessions. Image payloads are projected away at
// creation time; ImageCount is all that can be restored.
type Record struct {
	Feedback   string `json:"feedback"`
	ImageCount int    `json:"imageCount"`
	Timestamp  int64  `json:"timestamp"` // epoch milliseconds
}

// Project reduces a submission to its persisted form, stamping now as
// the capture time.
func Project(sub Submission, now time.Time) Record {
	return Record{
		Feedback:   sub.Feedback,
		ImageCount: len(sub.Images),
		Timestamp:  now.UnixMilli(),
	}
}

// CapturedAt returns the record timestamp as a time.Time.
func (r Record) CapturedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}
