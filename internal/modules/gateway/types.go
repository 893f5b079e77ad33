package gateway

import (
	"sync"

	pkgredis "github.com/tracknest/core/internal/pkg/redis"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

const (
	namespaceLive = "/live"

	eventNewEvent = "new_event"

	channelPrefix  = "events:"
	channelPattern = "events:*"

	roomPrefix = "website-"
)

type clientMeta struct {
	sid       string
	websiteID string
}

// Hub bridges Redis event fan-out to socket.io rooms. Every server instance
// subscribes to the full channel pattern, so dashboards stay live no matter
// which instance accepted the event or holds the socket.
type Hub struct {
	mu sync.RWMutex

	sidWebsite map[string]string
	roomCount  map[string]int

	register   chan clientMeta
	unregister chan clientMeta

	rc             *pkgredis.Client
	logger         *zap.Logger
	sio            *socketio.Server
	tokenValidator func(string) bool
}

func websiteRoom(websiteID string) string {
	return roomPrefix + websiteID
}
