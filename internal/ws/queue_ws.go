package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	EventQueueUpdated = "queue_updated"
	EventQueueBehind  = "queue_behind"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Event is what subscribers of a queue receive.
type Event struct {
	EventType string      `json:"event_type"`
	QueueUID  string      `json:"queue_uid"`
	Data      interface{} `json:"data"`
}

// Hub keeps websocket clients grouped by queue uid.
type Hub struct {
	// For every queue uid, the set of connected clients.
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
	done       chan struct{}
	mu         sync.RWMutex
	logger     *logrus.Logger
}

// BroadcastMessage is an encoded event addressed to one queue.
type BroadcastMessage struct {
	QueueUID string
	Message  []byte
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub channels until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for uid, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, uid)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.QueueUID] == nil {
				h.clients[client.QueueUID] = make(map[*Client]bool)
			}
			h.clients[client.QueueUID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[message.QueueUID] {
				select {
				case client.Send <- message.Message:
				default:
					// Slow consumer.
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(client *Client) {
	clients, ok := h.clients[client.QueueUID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.QueueUID)
	}
}

// Publish queues an event for the subscribers of uid. It never blocks the
// caller; events are dropped when the hub is saturated.
func (h *Hub) Publish(uid, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{EventType: eventType, QueueUID: uid, Data: data})
	if err != nil {
		h.logger.WithError(err).WithField("uid", uid).Error("ws: encode event")
		return
	}

	select {
	case h.broadcast <- BroadcastMessage{QueueUID: uid, Message: payload}:
	default:
		h.logger.WithFields(logrus.Fields{"uid": uid, "event": eventType}).Warn("ws: hub saturated, event dropped")
	}
}

// Subscribers returns how many clients currently follow uid.
func (h *Hub) Subscribers(uid string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uid])
}

// Client is one websocket connection.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	QueueUID string
}

// readPump only watches for the connection going away; clients do not send commands.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.logger.WithError(err).WithField("uid", c.QueueUID).Debug("ws: connection closed")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// QueueWebSocketHandler upgrades the request and subscribes it to the queue in the path.
// @Summary		Subscribe to queue updates
// @Description	Websocket stream of queue_updated and queue_behind events for one business
// @Tags			ws
// @Param			uid	path	string	true	"Business uid"
// @Router			/api/queues/{uid}/ws [get]
func (h *Hub) QueueWebSocketHandler(c *gin.Context) {
	uid := c.Param("uid")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).WithField("uid", uid).Warn("ws: upgrade failed")
		return
	}

	client := &Client{
		Hub:      h,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		QueueUID: uid,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
