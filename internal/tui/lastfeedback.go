package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/feedback"
	"github.com/colonyops/waggle/internal/core/kv"
)

// Storage keys for the last-feedback projection and the collapse
// preference. The preference is independent of any one record and
// survives across records and sessions.
const (
	lastFeedbackKey = "mcp_last_feedback"
	collapsedKey    = "lastFeedbackCollapsed"
)

// renderRetryDelay is the single bounded retry applied when the
// preview surface is missing after the mount signal.
const renderRetryDelay = 150 * time.Millisecond

// LastFeedbackCache persists a reduced projection of the most recent
// submission and renders it as a preview card. Image payloads are
// dropped at projection time; after a reload the count is shown but
// the images are unrecoverable by design.
type LastFeedbackCache struct {
	reg   *Registry
	store kv.KV
	caps  Capabilities
	log   zerolog.Logger

	// heightBudget is the card's visible height in lines before it is
	// marked truncated.
	heightBudget int

	mu        sync.Mutex
	record    *feedback.Record
	collapsed bool
	expanded  bool

	now func() time.Time
}

// NewLastFeedbackCache creates a cache over the given store and
// surfaces.
func NewLastFeedbackCache(reg *Registry, store kv.KV, caps Capabilities, heightBudget int, log zerolog.Logger) *LastFeedbackCache {
	return &LastFeedbackCache{
		reg:          reg,
		store:        store,
		caps:         caps.fillDefaults(),
		heightBudget: heightBudget,
		log:          log,
		now:          time.Now,
	}
}

// Show projects the submission, persists it under the fixed storage
// key (overwriting any prior record), and renders the preview. A
// payload with neither text nor images behaves as Hide.
func (c *LastFeedbackCache) Show(ctx context.Context, sub feedback.Submission) {
	if sub.Empty() {
		c.Hide()
		return
	}

	rec := feedback.Project(sub, c.now())

	c.mu.Lock()
	c.record = &rec
	c.expanded = false
	c.mu.Unlock()

	c.saveToStorage(ctx, rec)
	c.render(rec)
}

// Hide clears the in-memory record and hides the preview surface. The
// persisted record is left in place until a future Show overwrites it.
func (c *LastFeedbackCache) Hide() {
	c.mu.Lock()
	c.record = nil
	c.mu.Unlock()

	if preview, ok := c.reg.Preview(); ok {
		preview.SetVisible(false)
	}
}

// Restore rehydrates the collapse preference and the persisted record,
// rendering the preview if a record exists. Work is deferred until the
// host signals that surfaces are mounted.
func (c *LastFeedbackCache) Restore(ctx context.Context) {
	c.reg.WhenMounted(func() {
		c.restoreCollapsePreference(ctx)

		rec, ok := c.loadFromStorage(ctx)
		if !ok {
			return
		}

		c.mu.Lock()
		c.record = &rec
		c.mu.Unlock()

		c.render(rec)
	})
}

// Record returns the cached record, or nil when none is shown.
func (c *LastFeedbackCache) Record() *feedback.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return nil
	}
	rec := *c.record
	return &rec
}

// Collapsed returns the current collapse preference.
func (c *LastFeedbackCache) Collapsed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed
}

// ToggleCollapse flips and persists the collapse preference and
// applies the visual state immediately. Collapse hides the card's
// content entirely; it is orthogonal to truncation, which only clamps
// the height of visible content.
func (c *LastFeedbackCache) ToggleCollapse(ctx context.Context) {
	c.mu.Lock()
	c.collapsed = !c.collapsed
	collapsed := c.collapsed
	c.mu.Unlock()

	value := "false"
	if collapsed {
		value = "true"
	}
	if err := c.store.Set(ctx, collapsedKey, value); err != nil {
		c.log.Warn().Err(err).Msg("persist collapse preference failed")
	}

	if preview, ok := c.reg.Preview(); ok {
		preview.SetCollapsed(collapsed)
	}
}

// Expand removes the height clamp for the current card. The mark is
// reset the next time a record is rendered.
func (c *LastFeedbackCache) Expand() {
	c.mu.Lock()
	c.expanded = true
	c.mu.Unlock()

	if preview, ok := c.reg.Preview(); ok {
		preview.SetTruncated(false)
	}
}

// Copy exposes the cached text to the clipboard capability and reports
// the outcome as a transient message. A failure is terminal; there is
// no automatic retry.
func (c *LastFeedbackCache) Copy(_ context.Context) {
	rec := c.Record()
	if rec == nil || rec.Feedback == "" {
		c.showMessage(c.caps.Translator.T("message.copy.empty", "No feedback to copy"), true)
		return
	}

	if err := c.caps.Clipboard.Copy(rec.Feedback); err != nil {
		c.log.Warn().Err(err).Msg("clipboard copy failed")
		c.showMessage(c.caps.Translator.T("message.copy.failed", "Copy failed, select the text manually"), true)
		return
	}

	c.showMessage(c.caps.Translator.T("message.copy.ok", "Last feedback copied"), false)
}

// Load writes the cached text back into the input surface and focuses
// it. Image content is never restorable through Load; only the count
// survived projection.
func (c *LastFeedbackCache) Load() {
	rec := c.Record()
	if rec == nil || rec.Feedback == "" {
		c.showMessage(c.caps.Translator.T("message.load.empty", "No feedback to load"), true)
		return
	}

	input, ok := c.reg.Input()
	if !ok {
		return
	}
	input.SetText(rec.Feedback)
	input.Focus()

	c.showMessage(c.caps.Translator.T("message.load.ok", "Last feedback loaded"), false)
}

// showMessage forwards a transient outcome message to the mounted
// message surface, if any.
func (c *LastFeedbackCache) showMessage(text string, isError bool) {
	if msgs, ok := c.reg.Messages(); ok {
		msgs.ShowMessage(text, isError)
	}
}

// loadFromStorage reads the fixed storage key. Any fault (missing key,
// storage error, malformed JSON) degrades to "no record" and is never
// surfaced to the user.
func (c *LastFeedbackCache) loadFromStorage(ctx context.Context) (feedback.Record, bool) {
	raw, ok, err := c.store.Get(ctx, lastFeedbackKey)
	if err != nil {
		c.log.Warn().Err(err).Msg("read last feedback failed")
		return feedback.Record{}, false
	}
	if !ok {
		return feedback.Record{}, false
	}

	var rec feedback.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.log.Warn().Err(err).Msg("discarding malformed last feedback record")
		return feedback.Record{}, false
	}

	return rec, true
}

// saveToStorage persists the record with overwrite semantics. Write
// faults are logged and swallowed; the in-memory preview still works
// for the rest of the session.
func (c *LastFeedbackCache) saveToStorage(ctx context.Context, rec feedback.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal last feedback failed")
		return
	}
	if err := c.store.Set(ctx, lastFeedbackKey, string(data)); err != nil {
		c.log.Warn().Err(err).Msg("persist last feedback failed")
	}
}

func (c *LastFeedbackCache) restoreCollapsePreference(ctx context.Context) {
	raw, ok, err := c.store.Get(ctx, collapsedKey)
	if err != nil {
		c.log.Warn().Err(err).Msg("read collapse preference failed")
		return
	}
	if !ok {
		return
	}

	c.mu.Lock()
	c.collapsed = raw == "true"
	c.mu.Unlock()
}

// render builds the card content and applies collapse and truncation
// marks. It waits for the mount signal, then tolerates exactly one
// missing-surface miss with a fixed-delay retry before giving up.
func (c *LastFeedbackCache) render(rec feedback.Record) {
	c.reg.WhenMounted(func() {
		c.renderAttempt(rec, true)
	})
}

func (c *LastFeedbackCache) renderAttempt(rec feedback.Record, retry bool) {
	preview, ok := c.reg.Preview()
	if !ok {
		if retry {
			c.log.Warn().Msg("preview surface not mounted, retrying once")
			time.AfterFunc(renderRetryDelay, func() { c.renderAttempt(rec, false) })
		} else {
			c.log.Warn().Msg("preview surface still missing, giving up")
		}
		return
	}

	preview.SetContent(c.buildContent(rec))

	c.mu.Lock()
	collapsed := c.collapsed
	expanded := c.expanded
	c.mu.Unlock()

	preview.SetCollapsed(collapsed)
	preview.SetTruncated(!expanded && preview.ContentHeight() > c.heightBudget)
	preview.SetVisible(true)
}

// buildContent assembles the escaped text block followed by the
// image-count indicator line.
func (c *LastFeedbackCache) buildContent(rec feedback.Record) string {
	var b strings.Builder

	if rec.Feedback != "" {
		b.WriteString(escapeText(rec.Feedback))
	}

	if rec.ImageCount > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf(c.caps.Translator.T("preview.images", "📷 %d image(s) attached"), rec.ImageCount)
		b.WriteString(line)
	}

	return b.String()
}

// escapeText drops control characters so stored text cannot inject
// terminal escapes into the card.
func escapeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
