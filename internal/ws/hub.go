package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/event"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
)

const broadcastBuffer = 256

// Hub держит подключения пользователей и рассылает им события жизненного цикла.
// Реализует event.Publisher: Publish никогда не блокирует вызывающий use case.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	encode     func(any) any
}

type message struct {
	userID  uuid.UUID
	payload []byte
}

// Frame: кадр, уходящий клиенту.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewHub создаёт хаб. encode переводит доменные объекты в формат API, nil оставляет данные как есть.
func NewHub(encode func(any) any) *Hub {
	if encode == nil {
		encode = func(v any) any { return v }
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, broadcastBuffer),
		done:       make(chan struct{}),
		encode:     encode,
	}
}

// Run обслуживает регистрацию и рассылку, пока не отменён ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register возвращает false, если хаб уже остановлен.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish сериализует событие и ставит его в очередь каждому получателю.
// При переполненной очереди событие отбрасывается с предупреждением.
func (h *Hub) Publish(recipients []uuid.UUID, name string, data any) {
	raw, err := json.Marshal(Frame{Type: name, Data: h.encode(data)})
	if err != nil {
		logger.Log.WithError(err).WithField("event", name).Error("ws: не удалось сериализовать событие")
		return
	}

	seen := make(map[uuid.UUID]struct{}, len(recipients))
	for _, userID := range recipients {
		if _, dup := seen[userID]; dup || userID == uuid.Nil {
			continue
		}
		seen[userID] = struct{}{}
		select {
		case h.broadcast <- message{userID: userID, payload: raw}:
		default:
			logger.Log.WithFields(logrus.Fields{"event": name, "user_id": userID}).Warn("ws: очередь переполнена, событие отброшено")
		}
	}
}

// Connected возвращает число активных подключений пользователя.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			client.closeSend()
		}
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(userID uuid.UUID, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// медленный клиент отключается
			delete(h.clients[userID], client)
			client.closeSend()
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.clients {
		for client := range clients {
			client.closeSend()
		}
		delete(h.clients, userID)
	}
}

var _ event.Publisher = (*Hub)(nil)
