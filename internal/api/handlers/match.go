package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ioulasri/CodeArena/internal/match"
	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/internal/service"
	"github.com/ioulasri/CodeArena/pkg/logger"
)

type MatchHandler struct {
	coordinator    *match.Coordinator
	archiveService *service.ArchiveService
}

func NewMatchHandler(coordinator *match.Coordinator, archiveService *service.ArchiveService) *MatchHandler {
	return &MatchHandler{
		coordinator:    coordinator,
		archiveService: archiveService,
	}
}

// CreateMatch 매치 생성
// roomCode 또는 isPrivate가 있으면 프라이빗, 아니면 퍼블릭 큐 페어링 대상
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID := c.GetString("userId")

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	isPrivate := req.IsPrivate || req.RoomCode != ""

	m, err := h.coordinator.CreateMatch(c.Request.Context(), userID, req.PuzzleID, req.RoomCode, isPrivate)
	if err != nil {
		writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// JoinMatch 매치 참가 (룸 코드 또는 퍼블릭 큐)
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	userID := c.GetString("userId")

	var req models.JoinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	m, err := h.coordinator.JoinMatch(c.Request.Context(), userID, req.RoomCode, req.PuzzleID)
	if err != nil {
		writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// StartMatch 매치 시작 (멱등 - 이미 시작된 매치는 동일 레코드 반환)
func (h *MatchHandler) StartMatch(c *gin.Context) {
	userID := c.GetString("userId")
	matchID := c.Param("id")

	record, err := h.coordinator.StartMatch(c.Request.Context(), matchID, userID)
	if err != nil {
		writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SubmitAnswer 답안 제출
func (h *MatchHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetString("userId")
	matchID := c.Param("id")

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.coordinator.Submit(c.Request.Context(), matchID, userID, req.Answer)
	if err != nil {
		writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch 매치 상태 조회 (폴링 폴백)
// 인메모리 세션에 없으면 아카이브에서 조회
func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID := c.GetString("userId")
	matchID := c.Param("id")

	detail, err := h.coordinator.GetMatch(c.Request.Context(), matchID, userID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"match":     detail.Match,
			"inputData": detail.InputData,
		})
		return
	}
	if !errors.Is(err, match.ErrMatchNotFound) {
		writeMatchError(c, err)
		return
	}

	// 보존 기간이 지난 매치 - 아카이브 폴백
	archived, aerr := h.archiveService.FindArchivedMatch(c.Request.Context(), matchID)
	if aerr != nil {
		logger.Error("Failed to look up archived match", "matchId", matchID, "error", aerr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch match",
		})
		return
	}
	if archived == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Match not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match": archived,
	})
}

// GetSubmissions 매치 제출 기록 조회
func (h *MatchHandler) GetSubmissions(c *gin.Context) {
	matchID := c.Param("id")

	subs, err := h.coordinator.Submissions(matchID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"submissions": subs,
			"count":       len(subs),
		})
		return
	}
	if !errors.Is(err, match.ErrMatchNotFound) {
		writeMatchError(c, err)
		return
	}

	archived, aerr := h.archiveService.MatchSubmissions(c.Request.Context(), matchID)
	if aerr != nil {
		logger.Error("Failed to look up archived submissions", "matchId", matchID, "error", aerr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch submissions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": archived,
		"count":       len(archived),
	})
}

// GetHistory 내 매치 히스토리 조회
func (h *MatchHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("userId")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.archiveService.MatchHistory(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to fetch match history", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch match history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": history,
		"count":   len(history),
	})
}

// writeMatchError 코디네이터 에러 -> HTTP 응답 매핑
func writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, match.ErrMatchNotFound),
		errors.Is(err, match.ErrRoomNotFound),
		errors.Is(err, match.ErrPuzzleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, match.ErrNoOpenMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "No open match available"})

	case errors.Is(err, match.ErrCodeConflict),
		errors.Is(err, match.ErrOwnMatch),
		errors.Is(err, match.ErrRoomNotJoinable),
		errors.Is(err, match.ErrMatchFull),
		errors.Is(err, match.ErrNotReady),
		errors.Is(err, match.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, match.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this match"})

	case errors.Is(err, match.ErrIssueTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Puzzle input issuance failed, try again"})

	default:
		logger.Error("Unhandled match error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
