package audit

import (
	"context"
	"sync"
)

// MemorySink keeps published events in memory for tests and development.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Names returns the event names in publish order.
func (s *MemorySink) Names() []EventName {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]EventName, len(s.events))
	for i, e := range s.events {
		names[i] = e.Name
	}
	return names
}
