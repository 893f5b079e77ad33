package gateway

import (
	"context"
	"net/http"

	pkgredis "github.com/tracknest/core/internal/pkg/redis"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

func NewHub(rc *pkgredis.Client, logger *zap.Logger, tokenValidator func(string) bool) *Hub {
	sio := socketio.NewServer(nil, nil)
	h := &Hub{
		sidWebsite:     make(map[string]string),
		roomCount:      make(map[string]int),
		register:       make(chan clientMeta, 256),
		unregister:     make(chan clientMeta, 256),
		rc:             rc,
		logger:         logger,
		sio:            sio,
		tokenValidator: tokenValidator,
	}
	h.registerNamespace()
	return h
}

// Run starts the hub loop and the Redis subscriber.
func (h *Hub) Run(ctx context.Context) {
	go h.subscribeRedis(ctx)

	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)
		}
	}
}

func (h *Hub) registerClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.sidWebsite[c.sid]; ok {
		if old == c.websiteID {
			return
		}
		if h.roomCount[old] > 0 {
			h.roomCount[old]--
		}
	}
	h.sidWebsite[c.sid] = c.websiteID
	h.roomCount[c.websiteID]++
}

func (h *Hub) unregisterClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	websiteID, ok := h.sidWebsite[c.sid]
	if !ok {
		return
	}
	delete(h.sidWebsite, c.sid)
	if h.roomCount[websiteID] > 0 {
		h.roomCount[websiteID]--
	}
}

// ClientCount returns the number of connected dashboards, optionally filtered
// to one website.
func (h *Hub) ClientCount(websiteID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if websiteID == "" {
		return len(h.sidWebsite)
	}
	return h.roomCount[websiteID]
}

// subscribeRedis forwards published events to the matching website room.
// Malformed payloads and channels are logged and dropped, never delivered.
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rc.PSubscribe(ctx, channelPattern)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case redisMsg, ok := <-ch:
			if !ok {
				return
			}
			websiteID, ok := websiteIDFromChannel(redisMsg.Channel)
			if !ok {
				h.logger.Warn("gateway message on unexpected channel", zap.String("channel", redisMsg.Channel))
				continue
			}
			event, err := decodeEventPayload(redisMsg.Payload)
			if err != nil {
				h.logger.Warn("gateway dropping malformed event payload",
					zap.String("channel", redisMsg.Channel),
					zap.Error(err),
				)
				continue
			}
			h.deliver(websiteID, event)
		}
	}
}

func (h *Hub) deliver(websiteID string, event map[string]interface{}) {
	h.sio.Of(namespaceLive, nil).
		To(socketio.Room(websiteRoom(websiteID))).
		Emit(eventNewEvent, event)
}

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}
