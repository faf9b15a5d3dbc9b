// Package toggle provides a binary switch and the scroll-driven header state
// built from it.
package toggle

import "sync"

// Observer is called with the new value whenever a Switch changes.
type Observer func(active bool)

// Option configures a Switch.
type Option func(*Switch)

// WithObserver sets the change observer.
func WithObserver(fn Observer) Option {
	return func(s *Switch) {
		s.observer = fn
	}
}

// Switch is a boolean with change notification. It is safe for concurrent use.
type Switch struct {
	mu       sync.Mutex
	active   bool
	observer Observer
}

// New returns a Switch holding initial. The initial value is not reported to
// the observer.
func New(initial bool, opts ...Option) *Switch {
	s := &Switch{active: initial}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle flips the switch and returns the new value.
func (s *Switch) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = !s.active
	s.notify()
	return s.active
}

// Set stores v. The observer only fires when the value actually changes.
func (s *Switch) Set(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == v {
		return
	}
	s.active = v
	s.notify()
}

// IsActive reports the current value.
func (s *Switch) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Switch) notify() {
	if s.observer != nil {
		s.observer(s.active)
	}
}
