package bridge

import (
	"sync/atomic"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/scene"
)

// EventType tags inbound domain events
type EventType int

const (
	// EventActivity boosts an organ and swaps its phase label
	// Producer: backend feed | Payload: ActivityPayload
	EventActivity EventType = iota

	// EventSeason switches the palette; a no-op when unchanged
	// Producer: backend feed | Payload: SeasonPayload
	EventSeason

	// EventAgents replaces the active agent roster
	// Producer: backend feed | Payload: AgentsPayload
	EventAgents
)

// ActivityPayload mirrors the backend activity record
type ActivityPayload struct {
	Organ   string
	Phase   string
	Content string
	Token   string
}

// SeasonPayload carries the season value
type SeasonPayload struct {
	Season string
}

// AgentsPayload carries the full agent roster; absence means removal
type AgentsPayload struct {
	Agents []scene.AgentSummary
}

// Event is one inbound domain event
type Event struct {
	Type     EventType
	Activity ActivityPayload
	Season   SeasonPayload
	Agents   AgentsPayload
}

// Queue is a lock-free MPSC ring buffer for inbound domain events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
}

func NewQueue() *Queue {
	q := &Queue{}
	q.head.Store(0)
	q.tail.Store(0)
	return q
}

// Push adds an event using lock-free CAS with published flags
// Safe for concurrent producers. O(1) amortized
func (q *Queue) Push(event Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = event
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
// Single-consumer design (frame loop). Checks published flags for safety
func (q *Queue) Consume() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.EventQueueSize {
			maxAvailable = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		result := make([]Event, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}
