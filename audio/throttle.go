package audio

import (
	"sync"
	"time"
)

// throttleMap gates repeat triggers per key. A key's first trigger
// always passes; later ones pass only after the cooldown has elapsed.
// The clock is injectable so cooldown behavior can be tested without
// sleeping
type throttleMap struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

func newThrottleMap(now func() time.Time) *throttleMap {
	if now == nil {
		now = time.Now
	}
	return &throttleMap{
		last: make(map[string]time.Time),
		now:  now,
	}
}

// allow reports whether the key is outside its cooldown window and, if
// so, records the trigger time
func (t *throttleMap) allow(key string, cooldown time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.now()
	if prev, ok := t.last[key]; ok && n.Sub(prev) < cooldown {
		return false
	}
	t.last[key] = n
	return true
}
