package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/bet-board/pkg/contracts/events"
)

// client serializa as escritas numa conexão; gorilla não aceita writers concorrentes
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return c.conn.WriteJSON(v)
}

// Hub mantém as views conectadas e avisa quando o snapshot muda.
// O cliente recebe só o aviso e busca as linhas de novo via REST com a própria sessão.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}

	OnConnect    func() // métricas
	OnDisconnect func()
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		clients:  make(map[*client]struct{}),
	}
}

// ServeHTTP gerencia o ciclo de vida de uma conexão WebSocket
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	h.add(c)
	defer h.remove(c)

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			_ = c.send(ServerMsg{Type: "pong"})
		}
	}
}

// Broadcast envia o aviso de snapshot para todos os clientes conectados
func (h *Hub) Broadcast(n events.SnapshotNotice) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	msg := ServerMsg{Type: "snapshot", Snapshot: &n}
	for _, c := range targets {
		if err := c.send(msg); err != nil {
			h.log.Warn("ws write failed", zap.Error(err))
			_ = c.conn.Close() // o loop de leitura remove o cliente
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	if h.OnConnect != nil {
		h.OnConnect()
	}
	h.log.Debug("ws client connected")
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
	if ok && h.OnDisconnect != nil {
		h.OnDisconnect()
	}
	h.log.Debug("ws client disconnected")
}
