package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"tessera-server/internal/engine"
	"tessera-server/pkg/api"
	"tessera-server/pkg/logger"
	"tessera-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и движком запросов.
// Все исходящие сообщения (ответы и события) идут через Hub:
// у соединения единственный писатель - writePump.
type Client struct {
	Service *engine.Service
	Conn    *websocket.Conn
	Send    chan api.ServerResponse
	ID      string
}

func NewClient(service *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Service: service,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
		ID:      utils.GenerateID(),
	}
}

// readPump читает запросы клиента и отдаёт их движку
func (c *Client) readPump() {
	defer func() {
		c.Service.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("client_id", c.ID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Service.Hub.Register(c.ID)

	// Пересылка из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	logger.Log.WithFields(logrus.Fields{
		"client_id": c.ID,
	}).Info("Client connected")

	// Первое сообщение - список доступных карт.
	c.Service.Hub.SendTo(c.ID, api.ServerResponse{
		Type:   api.TypeResult,
		Action: "LIST",
		Maps:   c.Service.ListMaps(),
	})

	// 2. ЦИКЛ ЧТЕНИЯ ЗАПРОСОВ
	for {
		var req api.ClientRequest
		err := c.Conn.ReadJSON(&req)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.Service.Hub.SendTo(c.ID, c.Service.HandleRequest(req))
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
