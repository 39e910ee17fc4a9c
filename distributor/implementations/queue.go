package implementations

import (
	"context"
	"sync"

	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"
)

// IngressQueue is a bounded FIFO of log packets wrapping a buffered
// channel, generalized from the teacher's inline packetChannel into
// its own type per the base spec's C4. Close drains rather than
// discards: buffered packets remain Take-able until the channel empties.
type IngressQueue struct {
	mu       sync.RWMutex
	packets  chan models.LogPacket
	closeOne sync.Once
	isClosed bool
}

// Ensure IngressQueue implements the interface.
var _ interfaces.Queue = (*IngressQueue)(nil)

// NewIngressQueue creates a queue with the given capacity.
func NewIngressQueue(capacity int) *IngressQueue {
	return &IngressQueue{
		packets: make(chan models.LogPacket, capacity),
	}
}

// Offer performs a non-blocking enqueue. Never waits. Offers after
// Close are rejected as Full rather than panicking on a closed channel.
func (q *IngressQueue) Offer(packet models.LogPacket) interfaces.QueueResult {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.isClosed {
		return interfaces.Full
	}

	select {
	case q.packets <- packet:
		return interfaces.Accepted
	default:
		return interfaces.Full
	}
}

// Take blocks until a packet is available, ctx is done, or the queue
// is closed and drained.
func (q *IngressQueue) Take(ctx context.Context) (models.LogPacket, bool) {
	select {
	case packet, ok := <-q.packets:
		if !ok {
			return models.LogPacket{}, false
		}
		return packet, true
	case <-ctx.Done():
		return models.LogPacket{}, false
	}
}

// Size returns the current queue depth.
func (q *IngressQueue) Size() int {
	return len(q.packets)
}

// Close signals that no further packets will be offered and lets
// in-flight buffered packets drain via Take before it starts returning
// ok=false.
func (q *IngressQueue) Close() {
	q.closeOne.Do(func() {
		q.mu.Lock()
		q.isClosed = true
		q.mu.Unlock()
		close(q.packets)
	})
}
