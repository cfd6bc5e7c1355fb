package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ioulasri/CodeArena/internal/config"
	"github.com/ioulasri/CodeArena/internal/match"
	"github.com/ioulasri/CodeArena/internal/websocket"
	jwtutil "github.com/ioulasri/CodeArena/pkg/jwt"
)

// WebSocketHandler 매치별 WebSocket 연결 처리
type WebSocketHandler struct {
	hub         *websocket.Hub
	coordinator *match.Coordinator
	jwtManager  *jwtutil.JWTManager
}

// NewWebSocketHandler WebSocketHandler 생성
func NewWebSocketHandler(hub *websocket.Hub, coordinator *match.Coordinator, cfg *config.Config) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		coordinator: coordinator,
		jwtManager:  jwtutil.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
	}
}

// HandleMatchWebSocket 매치 이벤트 스트림 구독 엔드포인트
// 브라우저 WebSocket은 커스텀 헤더를 못 보내므로 토큰은 쿼리 파라미터로 받음
func (h *WebSocketHandler) HandleMatchWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	claims, err := h.jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	matchID := c.Param("id")

	// 매치 참가자만 구독 가능
	detail, err := h.coordinator.GetMatch(c.Request.Context(), matchID, claims.UserID)
	if err != nil {
		if errors.Is(err, match.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch match"})
		return
	}
	if !detail.Match.HasPlayer(claims.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this match"})
		return
	}

	// WebSocket 연결 업그레이드
	websocket.ServeWs(h.hub, c.Writer, c.Request, matchID, claims.UserID)
}
