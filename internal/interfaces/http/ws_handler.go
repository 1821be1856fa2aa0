package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/ws"
	"github.com/jhoicas/Hornada-api/pkg/jwt"
)

// pongWait es el tiempo máximo sin mensajes del cliente antes de cerrar.
const pongWait = 30 * time.Second

// WSHandler expone el feed de avisos en tiempo real por WebSocket.
type WSHandler struct {
	hub       *ws.Hub
	jwtSecret string
}

// NewWSHandler construye el handler.
func NewWSHandler(hub *ws.Hub, jwtSecret string) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret}
}

// Upgrade valida que la petición sea un upgrade WebSocket con token válido.
// El token viaja como query param (?token=...) porque el navegador no permite
// headers en el handshake de WebSocket.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	tokenString := c.Query("token")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "query param token requerido"})
	}
	userID, role, err := jwt.Parse(h.jwtSecret, tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalRole, role)
	return c.Next()
}

// Feed registra la conexión en el hub y la mantiene abierta hasta que el
// cliente se desconecte o deje de responder.
func (h *WSHandler) Feed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.hub.Register(conn)
		defer func() {
			h.hub.Unregister(conn)
			conn.Close()
		}()

		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPingHandler(func(string) error {
			// Cada ping del cliente extiende la vida de la conexión.
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			conn.SetReadDeadline(time.Now().Add(pongWait))
		}
	})
}
