package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsClient struct {
	send chan []byte
}

// wsHub broadcasts payloads of one kind to its websocket clients. Every
// frame is a wsMessage whose Type is the hub's kind.
type wsHub[T any] struct {
	kind      string
	mu        sync.Mutex
	clients   map[*wsClient]struct{}
	broadcast chan T
}

func newWSHub[T any](kind string, buffer int) *wsHub[T] {
	return &wsHub[T]{
		kind:      kind,
		clients:   make(map[*wsClient]struct{}),
		broadcast: make(chan T, buffer),
	}
}

func (h *wsHub[T]) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			msg := h.message(payload)
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(msg)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues payload, dropping it when the queue is full.
func (h *wsHub[T]) Publish(payload T) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *wsHub[T]) Register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *wsHub[T]) Unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *wsHub[T]) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (h *wsHub[T]) message(payload T) wsMessage {
	return wsMessage{Type: h.kind, Payload: mustMarshal(payload)}
}

// Serve upgrades the request, sends current() straight away and again on
// every "request_<kind>" message, and keeps the client registered until
// its connection drops.
func (h *wsHub[T]) Serve(w http.ResponseWriter, r *http.Request, current func() T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &wsClient{send: make(chan []byte, 16)}
	h.Register(client)
	client.sendJSON(h.message(current()))

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	requestType := "request_" + h.kind
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == requestType {
			client.sendJSON(h.message(current()))
		}
	}
}

func (c *wsClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
