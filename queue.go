package tide

import (
	"context"
	"sync"
	"time"
)

// messageQueue is an unbounded FIFO with many producers and one consumer.
// Push never blocks; Poll waits at most the given timeout.
type messageQueue struct {
	mu    sync.Mutex
	items []Msg
	ready chan struct{} // capacity 1, signalled after every push
}

func newMessageQueue() *messageQueue {
	return &messageQueue{
		items: make([]Msg, 0, 64),
		ready: make(chan struct{}, 1),
	}
}

// Push appends msg to the queue.
func (q *messageQueue) Push(msg Msg) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
		// A wakeup is already pending
	}
}

// pushIf appends msg only when accept reports true, with accept checked
// under the queue lock. A drain that follows the flip of accept's condition
// therefore removes every message accepted before it.
func (q *messageQueue) pushIf(msg Msg, accept func() bool) bool {
	q.mu.Lock()
	if !accept() {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of queued messages.
func (q *messageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Poll removes and returns the oldest message. It returns false when the
// timeout elapses or ctx is done before a message arrives.
func (q *messageQueue) Poll(ctx context.Context, timeout time.Duration) (Msg, bool) {
	if msg, ok := q.pop(); ok {
		return msg, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.ready:
			if msg, ok := q.pop(); ok {
				return msg, true
			}
		case <-timer.C:
			return q.pop()
		case <-ctx.Done():
			return nil, false
		}
	}
}

func (q *messageQueue) pop() (Msg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	msg := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	// Reclaim the backing array once drained
	if len(q.items) == 0 {
		q.items = q.items[:0:0]
	}
	return msg, true
}

// drain discards every queued message.
func (q *messageQueue) drain() {
	q.mu.Lock()
	q.items = q.items[:0:0]
	q.mu.Unlock()

	select {
	case <-q.ready:
	default:
	}
}
