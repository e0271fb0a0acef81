// Package events provides a small typed publish/subscribe hub.
package events

import "sync"

// Hub fans out values to subscribers in subscription order.
// Handlers run synchronously on the publishing goroutine.
type Hub[T any] struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it
func (h *Hub[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.handlers = append(h.handlers, subscription[T]{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub[T]) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.handlers {
		if s.id == id {
			h.handlers = append(h.handlers[:i:i], h.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every current subscriber.
// Subscribers added or removed during delivery take effect on the next Publish.
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	handlers := h.handlers
	h.mu.RUnlock()

	for _, s := range handlers {
		s.fn(v)
	}
}

// Len returns the number of subscribers
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

// Clear removes all subscribers
func (h *Hub[T]) Clear() {
	h.mu.Lock()
	h.handlers = nil
	h.mu.Unlock()
}
