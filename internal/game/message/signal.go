// Package message carries narrative text and typed game events between
// subsystems. Every subscription is explicit: whoever subscribes must
// unsubscribe when its lifetime ends.
package message

import "sync"

// Subscription identifies one registered handler on a Signal or Broker.
// The zero value is never issued.
type Subscription uint64

type handler[T any] struct {
	id Subscription
	fn func(T)
}

// Signal is an ordered list of handlers for events of type T.
//
// Handlers run synchronously, in subscription order, on the publishing
// goroutine. A handler may subscribe or unsubscribe (itself or others) while
// an event is being delivered; handlers removed mid-delivery are skipped.
type Signal[T any] struct {
	mu       sync.Mutex
	last     Subscription
	handlers []handler[T]
}

// Subscribe registers fn and returns the token needed to remove it.
//
// Precondition: fn must be non-nil.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	s.handlers = append(s.handlers, handler[T]{id: s.last, fn: fn})
	return s.last
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (s *Signal[T]) Unsubscribe(id Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered handlers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Publish delivers v to every handler registered when Publish was called and
// still registered at the moment of its turn.
func (s *Signal[T]) Publish(v T) {
	s.mu.Lock()
	ids := make([]Subscription, len(s.handlers))
	for i, h := range s.handlers {
		ids[i] = h.id
	}
	s.mu.Unlock()

	for _, id := range ids {
		if fn := s.lookup(id); fn != nil {
			fn(v)
		}
	}
}

func (s *Signal[T]) lookup(id Subscription) func(T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.handlers {
		if h.id == id {
			return h.fn
		}
	}
	return nil
}
