package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
)

const subscriberBuffer = 32

// Hub fans events out to live websocket subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

type Subscription struct {
	User submission.UserRef
	C    chan []byte
}

func NewHub() *Hub {
	return &Hub{subs: map[*Subscription]struct{}{}}
}

func (h *Hub) Subscribe(user submission.UserRef) *Subscription {
	sub := &Subscription{User: user, C: make(chan []byte, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.C)
	}
	h.mu.Unlock()
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (h *Hub) Publish(_ context.Context, e notification.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !addressed(e.Recipient, sub.User) {
			continue
		}
		select {
		case sub.C <- data:
		default:
		}
	}
	return nil
}

func addressed(r notification.Recipient, u submission.UserRef) bool {
	if r.UserID != "" {
		return r.UserID == u.ID
	}
	return r.Role != "" && r.Role == u.Role
}
