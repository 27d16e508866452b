package realtime

import (
	"sync"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Hub fans notification records out to per-owner subscribers. A slow
// subscriber has events dropped rather than blocking dispatch.
type Hub struct {
	log *zap.Logger

	mu          sync.RWMutex
	subscribers map[snowflake.ID]map[*Subscription]struct{}
}

// Subscription is one live listener for an owner's notifications.
type Subscription struct {
	ownerID snowflake.ID
	ch      chan *domain.NotificationRecord
}

// C is the channel delivering the owner's notification records.
func (s *Subscription) C() <-chan *domain.NotificationRecord { return s.ch }

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:         log.Named("realtime.hub"),
		subscribers: make(map[snowflake.ID]map[*Subscription]struct{}),
	}
}

// Subscribe registers a listener for an owner. The caller must Unsubscribe
// when done.
func (h *Hub) Subscribe(ownerID snowflake.ID) *Subscription {
	sub := &Subscription{
		ownerID: ownerID,
		ch:      make(chan *domain.NotificationRecord, subscriberBuffer),
	}
	h.mu.Lock()
	set := h.subscribers[ownerID]
	if set == nil {
		set = make(map[*Subscription]struct{})
		h.subscribers[ownerID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	if set, ok := h.subscribers[sub.ownerID]; ok {
		if _, present := set[sub]; present {
			delete(set, sub)
			close(sub.ch)
		}
		if len(set) == 0 {
			delete(h.subscribers, sub.ownerID)
		}
	}
	h.mu.Unlock()
}

// Publish delivers the record to every subscriber of the owner without
// blocking. Full subscriber buffers drop the record.
func (h *Hub) Publish(ownerID snowflake.ID, record *domain.NotificationRecord) {
	if record == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[ownerID] {
		select {
		case sub.ch <- record:
		default:
			h.log.Debug("dropping realtime event for slow subscriber",
				zap.String("owner_id", ownerID.String()),
				zap.String("notification_id", record.ID.String()),
			)
		}
	}
}
