package tui

import (
	"sync"
	"time"
)

const (
	defaultMessageTTL   = 4 * time.Second
	defaultMaxMessages  = 3
	messageTickInterval = 100 * time.Millisecond
)

type transientMessage struct {
	text      string
	isError   bool
	remaining time.Duration
}

// TransientController manages the lifecycle of transient user-visible
// messages (clipboard outcomes, load confirmations). It handles push,
// eviction, TTL countdown, and dismissal, and doubles as the mounted
// MessageSurface.
type TransientController struct {
	mu       sync.Mutex
	messages []transientMessage
	ticking  bool
}

var _ MessageSurface = (*TransientController)(nil)

// NewTransientController creates an empty controller.
func NewTransientController() *TransientController {
	return &TransientController{}
}

// ShowMessage implements MessageSurface.
func (c *TransientController) ShowMessage(text string, isError bool) {
	c.Push(text, isError)
}

// Push adds a message. If the stack exceeds the maximum, the oldest
// message is evicted.
func (c *TransientController) Push(text string, isError bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, transientMessage{
		text:      text,
		isError:   isError,
		remaining: defaultMessageTTL,
	})
	if len(c.messages) > defaultMaxMessages {
		c.messages = c.messages[len(c.messages)-defaultMaxMessages:]
	}
}

// Tick decrements the remaining TTL on all messages by d and removes
// any that have expired.
func (c *TransientController) Tick(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	alive := c.messages[:0]
	for _, m := range c.messages {
		m.remaining -= d
		if m.remaining > 0 {
			alive = append(alive, m)
		}
	}
	c.messages = alive
}

// Dismiss removes the newest message.
func (c *TransientController) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) > 0 {
		c.messages = c.messages[:len(c.messages)-1]
	}
}

// HasMessages reports whether any messages are active.
func (c *TransientController) HasMessages() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages) > 0
}

// Messages returns a snapshot of the active messages.
func (c *TransientController) Messages() []transientMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]transientMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Ticking reports whether the tick timer is running.
func (c *TransientController) Ticking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticking
}

// SetTicking records the tick timer state.
func (c *TransientController) SetTicking(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticking = v
}
