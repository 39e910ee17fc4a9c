package implementations

import (
	"context"
	"testing"
	"time"

	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngressQueue_OfferAndTake(t *testing.T) {
	q := NewIngressQueue(2)

	packet := models.LogPacket{ID: "p1"}
	result := q.Offer(packet)
	assert.Equal(t, interfaces.Accepted, result)
	assert.Equal(t, 1, q.Size())

	ctx := context.Background()
	got, ok := q.Take(ctx)
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, 0, q.Size())
}

func TestIngressQueue_OfferRejectsWhenFull(t *testing.T) {
	q := NewIngressQueue(1)

	assert.Equal(t, interfaces.Accepted, q.Offer(models.LogPacket{ID: "p1"}))
	assert.Equal(t, interfaces.Full, q.Offer(models.LogPacket{ID: "p2"}))
}

func TestIngressQueue_TakeBlocksUntilOffer(t *testing.T) {
	q := NewIngressQueue(1)

	done := make(chan models.LogPacket, 1)
	go func() {
		packet, ok := q.Take(context.Background())
		if ok {
			done <- packet
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Offer(models.LogPacket{ID: "p1"})

	select {
	case p := <-done:
		assert.Equal(t, "p1", p.ID)
	case <-time.After(time.Second):
		t.Fatal("Take did not unblock after Offer")
	}
}

func TestIngressQueue_TakeRespectsContextCancellation(t *testing.T) {
	q := NewIngressQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := q.Take(ctx)
	assert.False(t, ok)
}

func TestIngressQueue_CloseDrainsBufferedPackets(t *testing.T) {
	q := NewIngressQueue(3)

	q.Offer(models.LogPacket{ID: "p1"})
	q.Offer(models.LogPacket{ID: "p2"})
	q.Close()

	ctx := context.Background()

	p1, ok := q.Take(ctx)
	require.True(t, ok)
	assert.Equal(t, "p1", p1.ID)

	p2, ok := q.Take(ctx)
	require.True(t, ok)
	assert.Equal(t, "p2", p2.ID)

	_, ok = q.Take(ctx)
	assert.False(t, ok)
}

func TestIngressQueue_OfferAfterCloseReturnsFull(t *testing.T) {
	q := NewIngressQueue(3)

	q.Close()

	assert.Equal(t, interfaces.Full, q.Offer(models.LogPacket{ID: "p1"}))
}

func TestIngressQueue_CloseIsIdempotent(t *testing.T) {
	q := NewIngressQueue(1)

	assert.NotPanics(t, func() {
		q.Close()
		q.Close()
	})
}
