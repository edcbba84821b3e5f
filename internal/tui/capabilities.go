package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/waggle/internal/core/i18n"
)

// MarkdownRenderer renders markdown to a display-ready string. The
// sanitization policy belongs to the implementation, not to callers.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// Clipboard copies text to the system clipboard. Success and failure
// are mutually exclusive terminal outcomes; a failure is never retried
// automatically.
type Clipboard interface {
	Copy(text string) error
}

// Capabilities bundles the optional collaborators the UI consumes.
// They are resolved once at construction; every field has a working
// fallback so call sites never re-check availability.
type Capabilities struct {
	Translator i18n.Translator
	Markdown   MarkdownRenderer
	Clipboard  Clipboard
}

// DefaultCapabilities returns the real implementations: glamour
// rendering, the system clipboard, and no-op translation.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Translator: i18n.Noop{},
		Markdown:   NewGlamourRenderer(0),
		Clipboard:  SystemClipboard{},
	}
}

// fillDefaults replaces nil members with no-op implementations.
func (c Capabilities) fillDefaults() Capabilities {
	if c.Translator == nil {
		c.Translator = i18n.Noop{}
	}
	if c.Markdown == nil {
		c.Markdown = PassthroughRenderer{}
	}
	if c.Clipboard == nil {
		c.Clipboard = UnavailableClipboard{}
	}
	return c
}

// GlamourRenderer renders markdown with glamour's auto style.
type GlamourRenderer struct {
	wordWrap int
}

var _ MarkdownRenderer = (*GlamourRenderer)(nil)

// NewGlamourRenderer creates a renderer wrapping at wordWrap columns;
// zero disables wrapping.
func NewGlamourRenderer(wordWrap int) *GlamourRenderer {
	return &GlamourRenderer{wordWrap: wordWrap}
}

// Render implements MarkdownRenderer.
func (g *GlamourRenderer) Render(markdown string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if g.wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(g.wordWrap))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// PassthroughRenderer returns markdown unchanged. Fallback when no
// renderer is injected.
type PassthroughRenderer struct{}

var _ MarkdownRenderer = PassthroughRenderer{}

// Render implements MarkdownRenderer.
func (PassthroughRenderer) Render(markdown string) (string, error) {
	return markdown, nil
}

// SystemClipboard copies through the OS clipboard.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

// Copy implements Clipboard.
func (SystemClipboard) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// ErrClipboardUnavailable is returned by UnavailableClipboard.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// UnavailableClipboard always fails. Fallback when no clipboard is
// injected; the failure surfaces as a transient message like any other
// clipboard fault.
type UnavailableClipboard struct{}

var _ Clipboard = UnavailableClipboard{}

// Copy implements Clipboard.
func (UnavailableClipboard) Copy(string) error {
	return ErrClipboardUnavailable
}
