package websocket

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ioulasri/CodeArena/internal/match"
	"github.com/ioulasri/CodeArena/pkg/metrics"
)

// Hub 매치별 WebSocket 룸 관리 및 이벤트 팬아웃 (match.Notifier 구현)
// 상태의 진실 공급원이 아니며 백로그/재전송 없이 best-effort로만 전달
type Hub struct {
	// 매치별 연결 저장 (matchID -> playerID -> *Client)
	rooms map[string]map[string]*Client
	mu    sync.RWMutex

	// 팬아웃 채널 - 퍼블리셔의 임계 구역을 블로킹하지 않도록 버퍼링
	events chan busEvent

	// 등록/해제 채널
	register   chan *Client
	unregister chan *Client

	logger *zap.Logger
}

type busEvent struct {
	matchID string
	event   match.Event
}

// NewHub Hub 생성
func NewHub() *Hub {
	logger, _ := zap.NewProduction()
	return &Hub{
		rooms:      make(map[string]map[string]*Client),
		events:     make(chan busEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run Hub 실행
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.events:
			h.fanOut(ev.matchID, ev.event)
		}
	}
}

// Publish 매치 이벤트 발행 (논블로킹 - 큐가 가득 차면 버림)
func (h *Hub) Publish(matchID string, event match.Event) {
	select {
	case h.events <- busEvent{matchID: matchID, event: event}:
	default:
		h.logger.Warn("Event queue full, dropping event",
			zap.String("matchId", matchID),
			zap.String("type", event.Type))
	}
}

// registerClient 클라이언트를 매치 룸에 등록
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()

	room, ok := h.rooms[client.matchID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[client.matchID] = room
	}

	// 같은 플레이어의 기존 연결은 교체
	if old, exists := room[client.playerID]; exists {
		close(old.send)
	}
	room[client.playerID] = client

	h.mu.Unlock()

	metrics.WSConnections.Inc()
	h.logger.Info("WebSocket client registered",
		zap.String("matchId", client.matchID),
		zap.String("playerId", client.playerID))

	// 연결/해제 이벤트는 구독 전이에서 파생 - 비즈니스 상태와 무관
	h.Publish(client.matchID, match.Event{
		Type:    match.EventPlayerConnected,
		Exclude: client.playerID,
		Data:    map[string]interface{}{"player_id": client.playerID},
	})
}

// unregisterClient 클라이언트 해제 - 매치 상태는 절대 변경하지 않음
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	room, ok := h.rooms[client.matchID]
	if !ok || room[client.playerID] != client {
		h.mu.Unlock()
		return
	}

	delete(room, client.playerID)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.matchID)
	}

	h.mu.Unlock()

	metrics.WSConnections.Dec()
	h.logger.Info("WebSocket client unregistered",
		zap.String("matchId", client.matchID),
		zap.String("playerId", client.playerID))

	h.Publish(client.matchID, match.Event{
		Type:    match.EventPlayerDisconnected,
		Exclude: client.playerID,
		Data:    map[string]interface{}{"player_id": client.playerID},
	})
}

// fanOut 룸의 구독자들에게 이벤트 전달 (at-most-once)
func (h *Hub) fanOut(matchID string, event match.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[matchID]
	if !ok {
		return
	}

	for playerID, client := range room {
		if event.Exclude != "" && playerID == event.Exclude {
			continue
		}

		select {
		case client.send <- event:
		default:
			// 채널이 가득 찬 느린 클라이언트 - 이벤트는 버리고 연결 해제
			h.logger.Warn("Client send channel full, unregistering",
				zap.String("matchId", matchID),
				zap.String("playerId", playerID))
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// RoomSize 매치에 연결된 구독자 수
func (h *Hub) RoomSize(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}
