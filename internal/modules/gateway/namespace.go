package gateway

import (
	"encoding/json"
	"errors"
	"strings"

	socketio "github.com/zishang520/socket.io/v2/socket"
)

func (h *Hub) registerNamespace() {
	liveNS := h.sio.Of(namespaceLive, nil)
	_ = liveNS.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}

		websiteID, err := h.validateHandshake(client)
		if err != nil {
			_ = client.Emit("error", map[string]interface{}{"message": err.Error()})
			client.Disconnect(true)
			return
		}

		sid := string(client.Id())
		client.Join(socketio.Room(websiteRoom(websiteID)))
		h.register <- clientMeta{sid: sid, websiteID: websiteID}

		_ = client.On("disconnect", func(_ ...any) {
			h.unregister <- clientMeta{sid: sid, websiteID: websiteID}
		})
	})
}

// validateHandshake checks the connecting dashboard's credentials. The
// handshake must name the website to watch and carry a valid access token;
// anything less is rejected before the socket joins a room.
func (h *Hub) validateHandshake(client *socketio.Socket) (string, error) {
	handshake := client.Handshake()
	if handshake == nil {
		return "", errors.New("missing handshake")
	}

	token := normalizeToken(firstNonEmptyString(
		firstValueFromMultiMap(handshake.Query, "token"),
		firstValueFromMultiMap(handshake.Headers, "authorization"),
	))
	if token == "" || h.tokenValidator == nil || !h.tokenValidator(token) {
		return "", errors.New("authentication failed")
	}

	websiteID := firstValueFromMultiMap(handshake.Query, "websiteId")
	if websiteID == "" {
		return "", errors.New("websiteId is required")
	}
	return websiteID, nil
}

// websiteIDFromChannel extracts the website id from an "events:<id>" channel.
func websiteIDFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return "", false
	}
	id := channel[len(channelPrefix):]
	if id == "" {
		return "", false
	}
	return id, true
}

// decodeEventPayload parses a published event. The payload must be a JSON
// object; anything else is a producer bug and gets dropped upstream.
func decodeEventPayload(payload string) (map[string]interface{}, error) {
	var event map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, err
	}
	return event, nil
}

func firstValueFromMultiMap(values map[string][]string, key string) string {
	if len(values) == 0 {
		return ""
	}
	for k, list := range values {
		if !strings.EqualFold(strings.TrimSpace(k), key) || len(list) == 0 {
			continue
		}
		v := strings.TrimSpace(list[0])
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

func firstNonEmptyString(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
