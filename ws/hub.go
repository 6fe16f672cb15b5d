package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/ashil31/Admin-Panel/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans pushed events out to every connected dashboard. It is built
// once at process start and handed to whatever needs to emit; there is
// no package-level instance. Delivery is best effort, at most once per
// currently connected client: a client whose send buffer is full is
// dropped rather than applying backpressure to the emitter.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	seq        atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run owns the client set. Call it in its own goroutine before serving.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Serve upgrades the request and registers the connection. Token
// authorization happens in the HTTP handler before this is called.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) emit(event string, data interface{}) {
	env := Envelope{
		Seq:   h.seq.Add(1),
		Event: event,
		Data:  data,
	}
	message, err := json.Marshal(env)
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}
	h.broadcast <- message
}

// BroadcastNewUser announces a fresh submission to all dashboards.
func (h *Hub) BroadcastNewUser(user *models.User) {
	h.emit(EventNewUser, user)
}

// BroadcastRewardUpdate announces a reward mutation with the updated
// user and the new ledger row.
func (h *Hub) BroadcastRewardUpdate(user *models.User, reward *models.Reward) {
	h.emit(EventRewardUpdated, RewardUpdatedPayload{User: user, Reward: reward})
}
