// ABOUTME: In-process pub/sub for aggregate-changed events
// ABOUTME: Subscribers are keyed by owner; slow consumers drop, never block writes
package repo

import (
	"sync"

	"github.com/harper/wellness-standalone/internal/models"
)

const subscriberBuffer = 16

// Notifier fans out updated aggregates to per-owner subscribers
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[chan *models.DailyAggregate]struct{}
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan *models.DailyAggregate]struct{})}
}

// Subscribe registers for an owner's aggregate updates. The returned cancel
// func unregisters and closes the channel.
func (n *Notifier) Subscribe(ownerID string) (<-chan *models.DailyAggregate, func()) {
	ch := make(chan *models.DailyAggregate, subscriberBuffer)

	n.mu.Lock()
	if n.subs[ownerID] == nil {
		n.subs[ownerID] = make(map[chan *models.DailyAggregate]struct{})
	}
	n.subs[ownerID][ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if set := n.subs[ownerID]; set != nil {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(n.subs, ownerID)
			}
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an updated aggregate to the owner's subscribers.
// A subscriber with a full buffer misses the update; the write path is
// never allowed to block on a consumer.
func (n *Notifier) Publish(agg *models.DailyAggregate) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.subs[agg.OwnerID] {
		select {
		case ch <- agg:
		default:
		}
	}
}
