package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ioulasri/CodeArena/internal/service"
	"github.com/ioulasri/CodeArena/pkg/logger"
)

type PuzzleHandler struct {
	puzzleService *service.PuzzleService
}

func NewPuzzleHandler(puzzleService *service.PuzzleService) *PuzzleHandler {
	return &PuzzleHandler{puzzleService: puzzleService}
}

// ListPuzzles 활성 퍼즐 목록 조회
func (h *PuzzleHandler) ListPuzzles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	puzzles, err := h.puzzleService.ListActive(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list puzzles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch puzzles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"puzzles": puzzles,
		"count":   len(puzzles),
	})
}

// GetPuzzle 퍼즐 단건 조회
func (h *PuzzleHandler) GetPuzzle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid puzzle ID",
		})
		return
	}

	puzzle, err := h.puzzleService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Puzzle not found",
			})
			return
		}

		logger.Error("Failed to fetch puzzle", "puzzleId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch puzzle",
		})
		return
	}

	c.JSON(http.StatusOK, puzzle)
}
