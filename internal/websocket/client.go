package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ioulasri/CodeArena/internal/match"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 매치 룸에 연결된 단일 WebSocket 구독자
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan match.Event
	matchID  string
	playerID string
	logger   *zap.Logger
}

// ServeWs WebSocket 연결을 업그레이드하고 매치 룸에 등록
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, matchID, playerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	logger, _ := zap.NewProduction()
	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan match.Event, 64),
		matchID:  matchID,
		playerID: playerID,
		logger:   logger,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump 수신 펌프 - 인바운드 메시지는 무시하고 연결 생존만 추적
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read error",
					zap.String("matchId", c.matchID),
					zap.Error(err))
			}
			break
		}
	}
}

// writePump 송신 펌프 - 이벤트 직렬화 및 주기적 핑 전송
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				c.logger.Error("Failed to marshal event", zap.Error(err))
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
