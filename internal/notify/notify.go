package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a notification stays up unless told otherwise
const DefaultDuration = 5 * time.Second

// Kind is the severity of a notification
type Kind int

const (
	Success Kind = iota
	Error
	Warning
	Info
)

// Title returns the heading shown above the message
func (k Kind) Title() string {
	switch k {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Info"
	}
}

// Icon returns the glyph shown next to the title
func (k Kind) Icon() string {
	switch k {
	case Success:
		return "✓"
	case Error:
		return "✗"
	case Warning:
		return "!"
	default:
		return "i"
	}
}

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Notification is one transient message
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration // <= 0 means sticky
	CreatedAt time.Time
}

// Sticky reports whether the notification waits for manual dismissal
func (n Notification) Sticky() bool {
	return n.Duration <= 0
}

// ExpiresAt returns when the notification should disappear
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}

// Stack holds the visible notifications, oldest first
type Stack struct {
	mu       sync.Mutex
	items    []Notification
	duration time.Duration
	now      func() time.Time
}

// NewStack creates a stack. defaultDuration is used by Push; 0 makes
// pushed notifications sticky.
func NewStack(defaultDuration time.Duration) *Stack {
	return &Stack{duration: defaultDuration, now: time.Now}
}

// SetClock replaces the clock used for creation times
func (s *Stack) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Push adds a notification with the default duration
func (s *Stack) Push(kind Kind, message string) Notification {
	return s.PushFor(kind, message, s.duration)
}

// PushFor adds a notification with an explicit duration
func (s *Stack) PushFor(kind Kind, message string, d time.Duration) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Duration:  d,
		CreatedAt: s.now(),
	}
	s.items = append(s.items, n)
	return n
}

// Dismiss removes a notification. Returns false if it was already gone.
func (s *Stack) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissAll clears the stack
func (s *Stack) DismissAll() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Expire drops every timed notification due at or before now
// and returns how many were removed.
func (s *Stack) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, n := range s.items {
		if !n.Sticky() && !now.Before(n.ExpiresAt()) {
			continue
		}
		kept = append(kept, n)
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// Items returns the visible notifications, oldest first
func (s *Stack) Items() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.items...)
}

// Len returns the number of visible notifications
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
