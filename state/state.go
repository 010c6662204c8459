// Package state keeps named application states and notifies subscribers on
// every change.
package state

import (
	"context"
	"sort"
	"sync"

	"github.com/bool64/ctxd"
)

// Callback receives the new value of a subscribed state.
type Callback func(value interface{})

type namedState struct {
	value       interface{}
	subscribers map[string]Callback
}

// Manager holds named states, safe for concurrent use.
//
// Please use NewManager to create an instance.
type Manager struct {
	mu     sync.Mutex
	states map[string]*namedState
	log    ctxd.Logger
}

// NewManager creates a state manager, logger can be nil.
func NewManager(logger ctxd.Logger) *Manager {
	if logger == nil {
		logger = ctxd.NoOpLogger{}
	}

	return &Manager{
		states: map[string]*namedState{},
		log:    logger,
	}
}

// Set stores the value under name, creating the state on first use, and
// notifies all subscribers.
//
// Callbacks run synchronously on the calling goroutine, outside of the
// manager lock, so they may use the manager themselves.
func (m *Manager) Set(name string, value interface{}) {
	m.mu.Lock()

	s, ok := m.states[name]
	if !ok {
		s = &namedState{subscribers: map[string]Callback{}}
		m.states[name] = s
	}

	s.value = value

	callbacks := make([]Callback, 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}

	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(value)
	}
}

// Get returns the current value of the state.
func (m *Manager) Get(name string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[name]
	if !ok {
		return nil, false
	}

	return s.value, true
}

// Subscribe registers a callback under subscriberID, replacing a previous
// subscription with the same id. It fails for unknown state names.
func (m *Manager) Subscribe(name, subscriberID string, cb Callback) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[name]
	if !ok {
		m.log.Debug(context.Background(), "could not subscribe, no such state",
			"state", name, "subscriber", subscriberID)

		return false
	}

	s.subscribers[subscriberID] = cb

	return true
}

// Unsubscribe removes a subscription, reports whether it existed.
func (m *Manager) Unsubscribe(name, subscriberID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[name]
	if !ok {
		m.log.Debug(context.Background(), "could not unsubscribe, no such state",
			"state", name, "subscriber", subscriberID)

		return false
	}

	if _, subscribed := s.subscribers[subscriberID]; !subscribed {
		m.log.Debug(context.Background(), "could not unsubscribe, not subscribed",
			"state", name, "subscriber", subscriberID)

		return false
	}

	delete(s.subscribers, subscriberID)

	return true
}

// Names returns all known state names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
