package parameter

import "time"

// Frame loop
const (
	// FrameInterval targets 30 fps; all per-tick factors in this package
	// are tuned against this rate
	FrameInterval = 33 * time.Millisecond

	// EventQueueSize bounds the inbound domain-event ring. Power of two
	EventQueueSize = 256

	// EventBufferMask for ring index wrap
	EventBufferMask = EventQueueSize - 1
)
