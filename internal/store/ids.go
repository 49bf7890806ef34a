package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/herodex/internal/domain"
)

// TimestampIDs issues "custom-<epochMillis>" identifiers. Two ids requested
// within the same millisecond get consecutive numbers instead of colliding.
type TimestampIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

var _ domain.IDGenerator = (*TimestampIDs)(nil)

// NewTimestampIDs creates a generator; a nil clock means time.Now
func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}
	return &TimestampIDs{now: now}
}

func (g *TimestampIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return domain.CustomIDPrefix + strconv.FormatInt(n, 10)
}
