package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"kovan/store"
)

// Frame is every message the server writes.
type Frame struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// request is every message a client may send.
type request struct {
	Type           string      `json:"type"`
	ID             string      `json:"id"`
	Collection     string      `json:"collection"`
	Query          store.Query `json:"query"`
	ConversationID string      `json:"conversationId"`
}

type subscription struct {
	cancel context.CancelFunc
}

type Client struct {
	id      string
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	subs   map[string]*subscription
}

// close cancels every subscription and closes the send channel. Called by
// the manager once the client is unregistered.
func (c *Client) close() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.subs = map[string]*subscription{}
	close(c.send)
}

// queue drops msg when the client is gone or too slow to keep up.
func (c *Client) queue(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		log.Printf("⚠️ WebSocket client %s send buffer full, dropping frame", c.id)
	}
}

func (c *Client) sendFrame(f Frame) {
	msg, err := json.Marshal(f)
	if err != nil {
		log.Printf("❌ Error marshaling %s frame: %v", f.Type, err)
		return
	}
	c.queue(msg)
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error: %v", err)
			}
			break
		}

		var req request
		if err := json.Unmarshal(message, &req); err != nil {
			c.sendFrame(Frame{Type: "error", Error: "invalid message"})
			continue
		}

		switch req.Type {
		case "subscribe":
			c.subscribe(req)
		case "unsubscribe":
			c.unsubscribe(req.ID)
		case "typing_start", "typing_end":
			c.typing(req)
		case "ping":
			c.sendFrame(Frame{Type: "pong", Payload: map[string]interface{}{"time": time.Now().Unix()}})
		default:
			c.sendFrame(Frame{Type: "error", ID: req.ID, Error: "unknown message type"})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribe starts a live query. Re-using an id replaces the earlier
// subscription.
func (c *Client) subscribe(req request) {
	if req.ID == "" {
		c.sendFrame(Frame{Type: "error", Error: "subscription id is required"})
		return
	}
	q, err := c.manager.authorize(c.ctx, c.userID, req.Collection, req.Query)
	if err != nil {
		c.sendFrame(Frame{Type: "error", ID: req.ID, Error: err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	sub := &subscription{cancel: cancel}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return
	}
	if old, ok := c.subs[req.ID]; ok {
		old.cancel()
	} else if len(c.subs) >= maxSubscriptions {
		c.mu.Unlock()
		cancel()
		c.sendFrame(Frame{Type: "error", ID: req.ID, Error: "too many subscriptions"})
		return
	}
	c.subs[req.ID] = sub
	c.mu.Unlock()

	path := req.Collection
	coll := store.NewCollection(c.manager.store, path)
	go func() {
		defer c.endSubscription(req.ID, sub)
		err := coll.Subscribe(ctx, q, func(r store.Result) {
			if r.Error != "" {
				c.sendFrame(Frame{Type: "error", ID: req.ID, Error: r.Error})
				return
			}
			c.sendFrame(Frame{Type: "snapshot", ID: req.ID, Data: redact(path, r.Data)})
		})
		if err != nil {
			log.Printf("[ws] subscription %s on %s for %s ended: %v", req.ID, path, c.userID, err)
		}
	}()
}

func (c *Client) unsubscribe(id string) {
	c.mu.Lock()
	sub, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()
	if ok {
		sub.cancel()
	}
}

func (c *Client) endSubscription(id string, sub *subscription) {
	sub.cancel()
	c.mu.Lock()
	if c.subs[id] == sub {
		delete(c.subs, id)
	}
	c.mu.Unlock()
}

func (c *Client) subscriptionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// typing relays a typing indicator to the other participants of a
// conversation the client takes part in.
func (c *Client) typing(req request) {
	ctx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
	defer cancel()
	participants, err := c.manager.participants(ctx, c.userID, req.ConversationID)
	if err != nil {
		c.sendFrame(Frame{Type: "error", Error: err.Error()})
		return
	}
	others := make([]string, 0, len(participants))
	for _, p := range participants {
		if p != c.userID {
			others = append(others, p)
		}
	}
	c.manager.SendToUsers(others, req.Type, map[string]interface{}{
		"conversationId": req.ConversationID,
		"userId":         c.userID,
		"timestamp":      time.Now().Unix(),
	})
}
