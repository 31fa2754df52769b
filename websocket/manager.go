// Package websocket serves live collection subscriptions and per-user event
// delivery over gorilla/websocket.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"

	"kovan/middleware"
	"kovan/store"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = 30 * time.Second
	maxMessageSize   = 8 << 10
	sendBuffer       = 256
	maxSubscriptions = 32
)

// Manager tracks connected clients and fans events out to them.
type Manager struct {
	store     store.Store
	secret    string
	authorize Authorizer

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewManager(st store.Store, secret string) *Manager {
	return &Manager{
		store:      st,
		secret:     secret,
		authorize:  DefaultAuthorizer(st),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is done, then disconnects
// every client.
func (m *Manager) Start(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			total := len(m.clients)
			m.mu.Unlock()
			log.Printf("✅ WebSocket client %s registered for user %s. Total clients: %d", client.id, client.userID, total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				client.close()
			}
			total := len(m.clients)
			m.mu.Unlock()
			log.Printf("❌ WebSocket client %s unregistered. Total clients: %d", client.id, total)

		case <-ctx.Done():
			close(m.done)
			m.mu.Lock()
			for client := range m.clients {
				delete(m.clients, client)
				client.close()
			}
			m.mu.Unlock()
			return
		}
	}
}

// SendToUsers queues an event frame for every connection of the given users.
func (m *Manager) SendToUsers(userIDs []string, eventType string, payload interface{}) {
	msg, err := json.Marshal(Frame{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("❌ Error marshaling %s event: %v", eventType, err)
		return
	}
	targets := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for client := range m.clients {
		if targets[client.userID] {
			client.queue(msg)
		}
	}
}

func (m *Manager) ConnectedClients() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeWS authenticates the ?token= session token and upgrades the
// connection.
func (m *Manager) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		log.Printf("❌ WebSocket connection rejected: no token provided")
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}
	claims, err := middleware.ParseToken(m.secret, token)
	if err != nil {
		log.Printf("❌ WebSocket connection rejected: %v", err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		id:      uuid.Must(uuid.NewV4()).String(),
		conn:    conn,
		userID:  claims.UserID,
		send:    make(chan []byte, sendBuffer),
		manager: m,
		ctx:     ctx,
		cancel:  cancel,
		subs:    make(map[string]*subscription),
	}
	select {
	case m.register <- client:
	case <-m.done:
		cancel()
		conn.Close()
		return
	}

	client.sendFrame(Frame{Type: "connected", Payload: map[string]interface{}{
		"userId": claims.UserID,
		"time":   time.Now().Unix(),
	}})

	go client.writePump()
	go client.readPump()
}
