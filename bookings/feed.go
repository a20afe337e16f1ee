package bookings

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/kenbiz25/manifestdublin/middleware"
	"github.com/kenbiz25/manifestdublin/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now
		return true
	},
}

// Feed pushes request/booking lifecycle events to connected admin
// consoles so pending counts update without polling.
type Feed struct {
	mu    sync.Mutex
	conns []*websocket.Conn
}

func NewFeed() *Feed {
	return &Feed{}
}

type feedEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// wsToken extracts the raw access token. Browser WebSocket clients
// cannot set headers, so a token query parameter is accepted too.
func wsToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
		return h[7:]
	}
	return r.URL.Query().Get("token")
}

func (f *Feed) HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	raw := wsToken(r)
	claims, err := middleware.ValidateJWT("Bearer " + raw)
	if err != nil || claims.UserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// The token must match the live session login/refresh recorded.
	if stored, err := rdx.RdxHget("tokki", claims.UserID); err != nil || stored != raw {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !middleware.IsAdmin(r.Context(), claims.UserID) {
		http.Error(w, "Admin access required", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.conns = append(f.conns, conn)
	f.mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	f.mu.Lock()
	newList := make([]*websocket.Conn, 0, len(f.conns))
	for _, c := range f.conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	f.conns = newList
	f.mu.Unlock()

	conn.Close()
}

func (f *Feed) Publish(eventType string, data any) {
	val, err := json.Marshal(feedEvent{Type: eventType, Data: data})
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	newList := f.conns[:0]
	for _, conn := range f.conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	f.conns = newList
}

func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		c.Close()
	}
	f.conns = nil
}

var feed *Feed

// UseFeed wires the admin feed used by the lifecycle handlers.
func UseFeed(f *Feed) {
	feed = f
}

// PublishEvent broadcasts a lifecycle event on the wired feed, if any.
func PublishEvent(eventType string, data any) {
	if feed != nil {
		feed.Publish(eventType, data)
	}
}
