// Package notify fans events out to connected websocket clients.
package notify

import (
	"sync"
)

const (
	// Hard caps to keep the web process responsive even if someone opens
	// a silly number of tabs.
	maxStreamsPerUser = 8
	maxTotalStreams   = 1000
)

// Event is pushed to subscribers as a JSON message.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub tracks per-user subscriptions and delivers events without ever
// blocking the sender.
type Hub struct {
	mu sync.Mutex

	users map[string]map[chan Event]struct{}

	totalStreams int
}

// NewHub creates a new notification hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for the given user and returns the event
// channel plus an unsubscribe function. Returns ok=false when the user or
// the process is at its stream cap.
func (h *Hub) Subscribe(userID string) (<-chan Event, func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalStreams >= maxTotalStreams {
		return nil, nil, false
	}

	subs, ok := h.users[userID]
	if !ok {
		subs = make(map[chan Event]struct{})
		h.users[userID] = subs
	}
	if len(subs) >= maxStreamsPerUser {
		return nil, nil, false
	}

	ch := make(chan Event, 32)
	subs[ch] = struct{}{}
	h.totalStreams++

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.users[userID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
			h.totalStreams--
		}
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}

	return ch, unsubscribe, true
}

// Broadcast delivers the event to every connected stream.
func (h *Hub) Broadcast(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subs := range h.users {
		for sub := range subs {
			select {
			case sub <- evt:
			default:
				// Drop rather than block the webserver.
			}
		}
	}
}

// SendToUser delivers the event to every stream of one user. Returns
// whether the user had any stream connected.
func (h *Hub) SendToUser(userID string, evt Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.users[userID]
	if !ok || len(subs) == 0 {
		return false
	}

	for sub := range subs {
		select {
		case sub <- evt:
		default:
			// Drop rather than block the webserver.
		}
	}
	return true
}

// Connected reports how many streams are currently subscribed.
func (h *Hub) Connected() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalStreams
}
