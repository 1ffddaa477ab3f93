package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	util "wordrush/internal/util"
)

const historyLimit = 128

// Event is one room announcement as delivered to subscribers and kept in
// the per-room history.
type Event struct {
	Room string    `json:"room"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type client struct {
	conn *websocket.Conn
}

// Hub fans room announcements out to websocket subscribers and keeps a
// bounded history per room so poll-only transports can catch up.
type Hub struct {
	mu       sync.Mutex
	clients  map[string][]*client
	history  map[string][]Event
	upgrader websocket.Upgrader
	now      func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]*client),
		history: make(map[string][]Event),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// Announce records the event and broadcasts it to every subscriber of the
// room. Dead connections are dropped on write failure.
func (h *Hub) Announce(roomID, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := Event{Room: roomID, Text: text, At: h.now()}
	events := append(h.history[roomID], ev)
	if len(events) > historyLimit {
		events = events[len(events)-historyLimit:]
	}
	h.history[roomID] = events

	util.LogInfo("[room %s] %s", roomID, text)

	alive := h.clients[roomID][:0]
	for _, cl := range h.clients[roomID] {
		if err := cl.conn.WriteJSON(ev); err != nil {
			cl.conn.Close()
			continue
		}
		alive = append(alive, cl)
	}
	if len(alive) == 0 {
		delete(h.clients, roomID)
	} else {
		h.clients[roomID] = alive
	}
}

// History returns a copy of the room's recent announcements, oldest first.
func (h *Hub) History(roomID string) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.history[roomID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Subscribe upgrades the request to a websocket and streams the room's
// announcements until the client disconnects. Inbound frames are discarded;
// the socket is a one-way feed.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, roomID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn}
	h.mu.Lock()
	h.clients[roomID] = append(h.clients[roomID], cl)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		subs := h.clients[roomID]
		for i, c := range subs {
			if c == cl {
				h.clients[roomID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(h.clients[roomID]) == 0 {
			delete(h.clients, roomID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
