// Package event provides a small in-process event dispatcher.
//
//	bus := event.New()
//	bus.Listen("activity.recorded", func(p any) { hub.BroadcastJSON(p) })
//	bus.FireAsync("activity.recorded", entry)
package event

import (
	"sync"

	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// Handler is a function that receives an event payload.
type Handler func(payload any)

// Bus routes named events to their listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *Bus) listeners(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	return hs
}

// Fire dispatches an event synchronously to all registered listeners.
func (b *Bus) Fire(event string, payload any) {
	for _, h := range b.listeners(event) {
		call(event, h, payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and returns
// without waiting for them.
func (b *Bus) FireAsync(event string, payload any) {
	for _, h := range b.listeners(event) {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			call(event, h, payload)
		}(h)
	}
}

// Wait blocks until every listener started by FireAsync has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}

func call(event string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event: listener panicked", "event", event, "panic", r)
		}
	}()
	h(payload)
}
