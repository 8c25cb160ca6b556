package event

import (
	"sync"

	"github.com/bethropolis/marque/internal/logger"
)

// Handler is the function signature for subscribers. Returning true marks
// the event consumed; dispatch currently ignores it but subscribers should
// return honestly so propagation control can be added without churn.
type Handler func(e Event) bool

// Manager handles subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "handler subscribed to type %v", eventType)
}

// Dispatch sends an event to all handlers registered for its type.
// Handlers run synchronously on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	// Copy so a handler subscribing during dispatch cannot mutate the
	// slice being walked.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)

	for _, handler := range handlersCopy {
		handler(event)
	}
}
