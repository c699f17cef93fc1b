// internal/websocket/hub.go
package websocket

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"
	wstypes "github.com/kubilayakkiz/wawainteriorsNL/internal/domain/websocket"
)

var ErrNotAdmin = errors.New("websocket connections are restricted to admin accounts")

// Authenticator resolves a bearer token into a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Session, error)
}

// Hub fans quote events out to connected admin dashboards. Only admin
// sessions may connect; customer-facing pages poll over HTTP instead.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client

	broadcast chan *wstypes.WSMessage

	auth Authenticator
}

func NewHub(auth Authenticator) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *wstypes.WSMessage, 256),
		auth:       auth,
	}
}

// AuthenticateClient validates the token and enforces the admin-only rule.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*identity.Session, error) {
	sess, err := h.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return sess, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	log.Printf("Dashboard connected: identity=%s, total=%d", client.identityID, len(h.clients))

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"identity_id": client.identityID,
		"email":       client.email,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()

		log.Printf("Dashboard disconnected: identity=%s, total=%d", client.identityID, len(h.clients))
	}
}

func (h *Hub) broadcastMessage(msg *wstypes.WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.SendMessage(msg)
	}
}

// TotalClients reports the number of connected dashboards.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// QuoteReceived pushes a freshly submitted quote to every dashboard.
func (h *Hub) QuoteReceived(q *quote.Quote) {
	h.broadcast <- wstypes.NewMessage(wstypes.EventTypeQuoteReceived, q)
}

// QuoteUpdated pushes a status or proposal change to every dashboard.
func (h *Hub) QuoteUpdated(q *quote.Quote) {
	h.broadcast <- wstypes.NewMessage(wstypes.EventTypeQuoteUpdated, q)
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
	}
}
