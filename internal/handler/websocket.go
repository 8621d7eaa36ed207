// Package handler owns the WebSocket endpoint: the upgrade handshake and the
// read/write pump pair run for every accepted connection.
package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"echokit/internal/config"
	"echokit/internal/echo"
	"echokit/pkg/monitor"
	"echokit/pkg/wsmanager"
)

type WSHandler struct {
	manager  *wsmanager.Manager
	cfg      *config.Config
	policy   *echo.Policy
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(manager *wsmanager.Manager, cfg *config.Config, policy *echo.Policy, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WSHandler{
		manager: manager,
		cfg:     cfg,
		policy:  policy,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and starts the connection's pump
// pair. An upgrade failure is local to this request: it is logged and the
// connection dropped, other connections and the listener are unaffected.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		monitor.RecordUpgradeFailure()
		h.logger.Warn("websocket upgrade failed",
			zap.String("remote", c.ClientIP()),
			zap.Error(err),
		)
		return
	}

	client := wsmanager.NewClient(uuid.NewString(), conn)
	client.IP = c.ClientIP()

	h.manager.Register(client)
	monitor.ConnectionOpened()

	h.logger.Info("connection established",
		zap.String("client_id", client.ID),
		zap.String("remote", client.IP),
	)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump is the sole reader of its connection. It applies the echo policy
// to each data frame and exits on the first read error or close frame; close
// frames surface from ReadMessage as *websocket.CloseError.
func (h *WSHandler) readPump(client *wsmanager.Client) {
	defer func() {
		h.manager.Unregister(client)
		monitor.ConnectionClosed()
		h.logger.Info("connection closed", zap.String("client_id", client.ID))
	}()

	pongWait := h.cfg.Server.PongWait.Std()
	client.Conn.SetReadLimit(h.cfg.Server.MaxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("read error",
					zap.String("client_id", client.ID),
					zap.Error(err),
				)
			}
			return
		}

		monitor.RecordMessageReceived()

		respType, resp, ok := h.policy.Apply(messageType, payload)
		if !ok {
			continue
		}
		if !client.Enqueue(wsmanager.Message{Type: respType, Data: resp}) {
			h.logger.Warn("send buffer full, dropping connection", zap.String("client_id", client.ID))
			return
		}
	}
}

// writePump is the sole writer of its connection. It drains the client's
// Send channel and keeps the peer alive with periodic pings; it exits when
// unregistration closes the client's done channel or the first write fails.
func (h *WSHandler) writePump(client *wsmanager.Client) {
	ticker := time.NewTicker(h.cfg.Server.PingPeriod.Std())
	writeTimeout := h.cfg.Server.WriteTimeout.Std()

	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case <-client.Done():
			client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case msg := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))

			if err := client.Conn.WriteMessage(msg.Type, msg.Data); err != nil {
				h.logger.Warn("write error",
					zap.String("client_id", client.ID),
					zap.Error(err),
				)
				return
			}
			monitor.RecordMessageSent()

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Health reports server liveness and the active echo behaviour.
func (h *WSHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"policy":      h.policy.Name(),
		"connections": h.manager.GetClientCount(),
		"goroutines":  runtime.NumGoroutine(),
		"timestamp":   time.Now(),
	})
}

// GetStats returns the manager's connection counters.
func (h *WSHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   h.manager.GetStats(),
	})
}

// BroadcastMessage pushes an admin-supplied text message to every open
// connection.
func (h *WSHandler) BroadcastMessage(c *gin.Context) {
	var request struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.manager.Broadcast([]byte(request.Message))

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Message broadcasted",
	})
}
