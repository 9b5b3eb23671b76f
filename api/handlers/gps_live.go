package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gestionparc/fleet-api/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// LiveHub tracks connected live-tracking clients. Each client may subscribe
// to a single vehicle via the vehiculeID query param; an empty subscription
// receives every position.
type LiveHub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

// NewLiveHub returns an empty hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients: make(map[*websocket.Conn]string),
	}
}

func (h *LiveHub) add(conn *websocket.Conn, vehiculeID string) {
	h.mutex.Lock()
	h.clients[conn] = vehiculeID
	h.mutex.Unlock()
}

func (h *LiveHub) remove(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
}

// Broadcast pushes a freshly ingested position to every client subscribed to
// the record's vehicle (or to all vehicles)
func (h *LiveHub) Broadcast(record models.GPSRecord) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, vehiculeID := range h.clients {
		if vehiculeID != "" && vehiculeID != record.Details.VehiculeID {
			continue
		}
		err := conn.WriteJSON(map[string]interface{}{
			"event": "position",
			"data":  record,
		})
		if err != nil {
			zap.S().Errorw("failed to push position to live client", "error", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// LiveHandler upgrades the connection and registers the client on the hub
func (g GPS) LiveHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	vehiculeID := r.URL.Query().Get("vehiculeID")

	g.Hub.add(conn, vehiculeID)
	zap.S().Infow("live tracking client connected", "vehiculeID", vehiculeID)

	conn.SetCloseHandler(func(code int, text string) error {
		g.Hub.remove(conn)
		zap.S().Infow("live tracking client disconnected", "vehiculeID", vehiculeID)
		return nil
	})

	// Keep connection alive; an abrupt disconnect surfaces here without a
	// close frame, so the client is deregistered on this path too
	for {
		if _, _, err := conn.NextReader(); err != nil {
			g.Hub.remove(conn)
			conn.Close()
			break
		}
	}
}
