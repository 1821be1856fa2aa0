// Package ws mantiene las conexiones websocket suscritas al feed de avisos.
package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

// Hub registra los clientes conectados y les reparte cada aviso publicado.
// El lock cubre también la escritura: una conexión de websocket no admite
// escrituras concurrentes.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     zerolog.Logger
}

// NewHub crea un hub vacío.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log,
	}
}

// Register suma una conexión al feed.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
	h.log.Debug().Int("clients", len(h.clients)).Msg("Cliente websocket conectado")
}

// Unregister retira una conexión del feed.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		h.log.Debug().Int("clients", len(h.clients)).Msg("Cliente websocket desconectado")
	}
}

// Broadcast envía el payload a todos los clientes. Las conexiones que fallan
// al escribir se retiran del feed; el cliente reconectará si sigue vivo.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Warn().Err(err).Msg("Fallo al escribir en websocket; se retira el cliente")
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

// Count devuelve la cantidad de clientes conectados.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
