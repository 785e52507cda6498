// Package state holds the client-side state managers: auth session, cart
// and orders. Each manager exclusively owns its collection and is its sole
// writer; consumers read and subscribe, and dispatch intents through the
// manager's methods.
package state

// Subject is an owned mutable value plus a set of registered listeners,
// invoked synchronously on each publish. Publishes are strictly ordered
// with the mutation that produced them: a subscriber observing two
// consecutive publishes sees them in mutation order. All access is assumed
// single-threaded (the client has no concurrent mutators).
type Subject[T any] struct {
	value     T
	listeners []listener[T]
	nextID    int
}

type listener[T any] struct {
	id int
	fn func(T)
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	return s.value
}

// Publish stores v and notifies listeners in subscription order.
func (s *Subject[T]) Publish(v T) {
	s.value = v
	for _, l := range s.listeners {
		l.fn(v)
	}
}

// Subscribe registers fn and returns an unsubscribe function. A consumer
// that is torn down must unsubscribe, or it keeps receiving publishes.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
