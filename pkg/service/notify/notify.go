package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
)

var (
	_ interfaces.Notifier = (*Log)(nil)
	_ interfaces.Notifier = (*Inbox)(nil)
)

// Level is the severity of a user message
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a user-visible message
type Message struct {
	ID        uint64    `json:"id"`
	Level     Level     `json:"level"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Log prints user messages through the context logger. Used by one-shot CLI commands.
type Log struct{}

// NewLog creates a log notifier
func NewLog() *Log {
	return &Log{}
}

func (x *Log) Warn(ctx context.Context, message string) {
	ctxlog.From(ctx).Warn(message)
}

func (x *Log) Error(ctx context.Context, message string) {
	ctxlog.From(ctx).Error(message)
}

// DefaultInboxSize is the number of messages an Inbox keeps
const DefaultInboxSize = 100

// Inbox keeps the latest user messages for the UI to poll
type Inbox struct {
	mu       sync.Mutex
	size     int
	nextID   uint64
	messages []Message
	now      func() time.Time
}

// InboxOption configures an Inbox
type InboxOption func(*Inbox)

// WithSize sets how many messages are kept
func WithSize(size int) InboxOption {
	return func(x *Inbox) {
		if size > 0 {
			x.size = size
		}
	}
}

// WithClock sets the time source for message timestamps
func WithClock(now func() time.Time) InboxOption {
	return func(x *Inbox) {
		x.now = now
	}
}

// NewInbox creates an empty inbox
func NewInbox(opts ...InboxOption) *Inbox {
	x := &Inbox{
		size: DefaultInboxSize,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

func (x *Inbox) Warn(ctx context.Context, message string) {
	x.push(LevelWarning, message)
}

func (x *Inbox) Error(ctx context.Context, message string) {
	x.push(LevelError, message)
}

func (x *Inbox) push(level Level, text string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.nextID++
	x.messages = append(x.messages, Message{
		ID:        x.nextID,
		Level:     level,
		Text:      text,
		CreatedAt: x.now(),
	})
	if over := len(x.messages) - x.size; over > 0 {
		x.messages = append([]Message(nil), x.messages[over:]...)
	}
}

// Since returns kept messages with an ID greater than after, oldest first
func (x *Inbox) Since(after uint64) []Message {
	x.mu.Lock()
	defer x.mu.Unlock()

	result := []Message{}
	for _, m := range x.messages {
		if m.ID > after {
			result = append(result, m)
		}
	}
	return result
}
