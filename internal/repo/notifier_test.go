// ABOUTME: Tests for the aggregate-changed notifier
// ABOUTME: Verifies per-owner fan-out, non-blocking publish and unsubscribe
package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/wellness-standalone/internal/models"
)

func TestNotifier_SubscribeReceivesUpdates(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("u1")
	defer cancel()

	agg := &models.DailyAggregate{OwnerID: "u1", Date: "2024-01-01", TotalWaterMl: 750}
	n.Publish(agg)

	select {
	case got := <-ch:
		assert.Equal(t, 750, got.TotalWaterMl)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the update")
	}
}

func TestNotifier_OwnerScoped(t *testing.T) {
	n := NewNotifier()
	ch1, cancel1 := n.Subscribe("u1")
	defer cancel1()
	ch2, cancel2 := n.Subscribe("u2")
	defer cancel2()

	n.Publish(&models.DailyAggregate{OwnerID: "u1", Date: "2024-01-01"})

	select {
	case <-ch1:
	case <-time.After(time.Second):
		t.Fatal("u1 subscriber missed its update")
	}
	select {
	case got := <-ch2:
		t.Fatalf("u2 subscriber received u1's update: %+v", got)
	default:
	}
}

func TestNotifier_CancelClosesChannel(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("u1")
	cancel()

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")

	// Cancel twice is safe, and publishing after cancel doesn't panic
	cancel()
	n.Publish(&models.DailyAggregate{OwnerID: "u1", Date: "2024-01-01"})
}

func TestNotifier_SlowSubscriberNeverBlocksPublish(t *testing.T) {
	n := NewNotifier()
	_, cancel := n.Subscribe("u1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Overflow the buffer; publishes must drop, not block
		for i := 0; i < subscriberBuffer*3; i++ {
			n.Publish(&models.DailyAggregate{OwnerID: "u1", Date: "2024-01-01"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestRepositoryPublishesOnWrite(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")
	ch, cancel := r.Notifier().Subscribe("u1")
	defer cancel()

	_, err := r.RecordWater(500, time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)

	select {
	case agg := <-ch:
		assert.Equal(t, "2024-01-01", agg.Date)
		assert.Equal(t, 500, agg.TotalWaterMl)
	case <-time.After(time.Second):
		t.Fatal("no aggregate-changed event after a write")
	}
}
