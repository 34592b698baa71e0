package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/utils"
)

// CartHub pushes the new cart to every open tab of a user after a mutation,
// the way browser local storage used to sync tabs for free.
type CartHub struct {
	clients    map[string]map[*websocket.Conn]bool // userID -> set of conns
	broadcast  chan cartUpdate
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	ID     string // per-connection id, for log correlation only
	Conn   *websocket.Conn
	UserID string
}

type cartUpdate struct {
	UserID string
	Items  []entity.CartItem
}

func NewCartHub() *CartHub {
	return &CartHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan cartUpdate, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

// CartChanged implements services.CartNotifier. The hub goroutine does the
// fan-out; callers only hand the update off.
func (h *CartHub) CartChanged(userID string, items []entity.CartItem) {
	h.broadcast <- cartUpdate{UserID: userID, Items: items}
}

func (h *CartHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()
			log.Printf("ws %s connected for user %s", sub.ID, sub.UserID)

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()
			log.Printf("ws %s disconnected for user %s", sub.ID, sub.UserID)

		case up := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[up.UserID] {
				payload := gin.H{"type": "cart", "items": up.Items}
				if err := conn.WriteJSON(payload); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[up.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the request and parks the connection until the client goes
// away. The feed is push-only; inbound frames are discarded.
func (h *CartHub) Serve(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	sub := subscription{ID: uuid.NewString(), Conn: conn, UserID: userID}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
