package taskrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// Interrupt is a broadcast "user requested stop" source.
//
// Subscribe returns a channel that is closed once the signal fires, and a func that
// releases the subscription. Many subscribers may be active at once.
type Interrupt interface {
	Subscribe() (<-chan struct{}, func())
}

// OSInterrupt listens for process signals (os.Interrupt by default).
type OSInterrupt struct {
	signals []os.Signal
}

func NewOSInterrupt(signals ...os.Signal) *OSInterrupt {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt}
	}
	return &OSInterrupt{signals: signals}
}

func (o *OSInterrupt) Subscribe() (<-chan struct{}, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), o.signals...)
	return ctx.Done(), stop
}

var _ Interrupt = (*OSInterrupt)(nil)

// ManualInterrupt is an in-process Interrupt fired by calling Fire.
// A Fire with no subscribers is lost, like a signal nobody listens for.
type ManualInterrupt struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewManualInterrupt() *ManualInterrupt {
	return &ManualInterrupt{subs: map[int]chan struct{}{}}
}

func (m *ManualInterrupt) Subscribe() (<-chan struct{}, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	ch := make(chan struct{})
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Fire closes every current subscription channel.
func (m *ManualInterrupt) Fire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}

// Subscribers reports how many subscriptions are waiting.
func (m *ManualInterrupt) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

var _ Interrupt = (*ManualInterrupt)(nil)
