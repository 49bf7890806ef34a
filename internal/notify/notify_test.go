package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(d time.Duration) (*Stack, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStack(d)
	s.SetClock(func() time.Time { return now })
	return s, &now
}

func TestPushUsesDefaultDuration(t *testing.T) {
	s, now := newTestStack(DefaultDuration)

	n := s.Push(Success, "Hero created")
	_, err := uuid.Parse(n.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, n.Duration)
	assert.Equal(t, *now, n.CreatedAt)
	assert.False(t, n.Sticky())
	assert.Equal(t, []Notification{n}, s.Items())
}

func TestMultipleNotificationsKeepOrder(t *testing.T) {
	s, _ := newTestStack(DefaultDuration)

	a := s.Push(Success, "a")
	b := s.Push(Error, "b")
	c := s.Push(Warning, "c")

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestExpire(t *testing.T) {
	s, now := newTestStack(DefaultDuration)

	s.Push(Info, "timed")
	s.PushFor(Info, "short", time.Second)
	sticky := s.PushFor(Error, "sticky", 0)

	assert.Equal(t, 0, s.Expire(now.Add(500*time.Millisecond)))
	assert.Equal(t, 1, s.Expire(now.Add(time.Second)))
	assert.Equal(t, 1, s.Expire(now.Add(DefaultDuration)))
	assert.Equal(t, 0, s.Expire(now.Add(time.Hour)))

	assert.Equal(t, []Notification{sticky}, s.Items())
}

func TestZeroDefaultIsSticky(t *testing.T) {
	s, now := newTestStack(0)
	n := s.Push(Warning, "stays")

	assert.True(t, n.Sticky())
	s.Expire(now.Add(24 * time.Hour))
	assert.Equal(t, 1, s.Len())
}

func TestDismiss(t *testing.T) {
	s, _ := newTestStack(DefaultDuration)
	a := s.Push(Success, "a")
	b := s.Push(Success, "b")

	assert.True(t, s.Dismiss(a.ID))
	assert.False(t, s.Dismiss(a.ID))
	assert.Equal(t, []Notification{b}, s.Items())

	s.DismissAll()
	assert.Equal(t, 0, s.Len())
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind  Kind
		title string
		name  string
	}{
		{Success, "Success", "success"},
		{Error, "Error", "error"},
		{Warning, "Warning", "warning"},
		{Info, "Info", "info"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.title, tt.kind.Title())
		assert.Equal(t, tt.name, tt.kind.String())
		assert.NotEmpty(t, tt.kind.Icon())
	}
}
