package bus

import (
	"log"
	"sync"

	"github.com/smukkama/temp-monitor/internal/monitor"
)

// AlertBus is a typed publish-subscribe hub for alert events. It implements
// monitor.AlertSink, so a Monitor wired to the bus fans each alert out to
// every current subscriber.
type AlertBus struct {
	mu     sync.RWMutex
	subs   map[uint64]func(monitor.Alert)
	order  []uint64
	nextID uint64
}

// NewAlertBus creates an empty bus
func NewAlertBus() *AlertBus {
	return &AlertBus{
		subs: make(map[uint64]func(monitor.Alert)),
	}
}

// Subscription is a handle returned by Subscribe; Unsubscribe detaches the
// observer. Unsubscribing twice is a no-op.
type Subscription struct {
	bus *AlertBus
	id  uint64
}

// Unsubscribe removes the observer from the bus
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if _, ok := s.bus.subs[s.id]; !ok {
		return
	}
	delete(s.bus.subs, s.id)
	for i, id := range s.bus.order {
		if id == s.id {
			s.bus.order = append(s.bus.order[:i], s.bus.order[i+1:]...)
			break
		}
	}
}

// Subscribe registers fn to receive every subsequent alert. Observers are
// invoked synchronously in registration order.
func (b *AlertBus) Subscribe(fn func(monitor.Alert)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)

	return &Subscription{bus: b, id: id}
}

// Count returns the number of active subscribers
func (b *AlertBus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers alert to all current subscribers. A panicking subscriber
// is logged and skipped; the remaining subscribers still receive the alert.
func (b *AlertBus) Publish(alert monitor.Alert) {
	b.mu.RLock()
	fns := make([]func(monitor.Alert), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		deliver(fn, alert)
	}
}

func deliver(fn func(monitor.Alert), alert monitor.Alert) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("alert observer panicked: %v", r)
		}
	}()
	fn(alert)
}
