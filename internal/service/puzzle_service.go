package service

import (
	"context"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/internal/repository"
)

// PuzzleService 퍼즐 카탈로그 조회
type PuzzleService struct {
	puzzleRepo *repository.PuzzleRepository
}

func NewPuzzleService(puzzleRepo *repository.PuzzleRepository) *PuzzleService {
	return &PuzzleService{puzzleRepo: puzzleRepo}
}

// ListActive 활성 퍼즐 목록 (페이지네이션)
func (s *PuzzleService) ListActive(ctx context.Context, limit, offset int) ([]*models.Puzzle, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.puzzleRepo.FindActive(ctx, limit, offset)
}

// GetByID 퍼즐 단건 조회
func (s *PuzzleService) GetByID(ctx context.Context, id int) (*models.Puzzle, error) {
	puzzle, err := s.puzzleRepo.PuzzleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if puzzle == nil || !puzzle.IsActive {
		return nil, ErrNotFound
	}
	return puzzle, nil
}
