package service

import (
	"context"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/internal/repository"
)

// StatsService 플레이어 전적/리더보드 (match.StatsRecorder 구현)
type StatsService struct {
	statsRepo *repository.StatsRepository
}

func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// RecordResult 매치 결과를 양쪽 전적에 반영
func (s *StatsService) RecordResult(ctx context.Context, winnerID, loserID string, solveSeconds *int) error {
	if err := s.statsRepo.RecordWin(ctx, winnerID, solveSeconds); err != nil {
		return fmt.Errorf("failed to record winner stats: %w", err)
	}
	if loserID != "" {
		if err := s.statsRepo.RecordLoss(ctx, loserID); err != nil {
			return fmt.Errorf("failed to record loser stats: %w", err)
		}
	}
	return nil
}

// StatsForUser 플레이어 전적 조회 (기록 없으면 0으로 채운 기본값)
func (s *StatsService) StatsForUser(ctx context.Context, userID string) (*models.MatchStats, error) {
	stats, err := s.statsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &models.MatchStats{UserID: userID}, nil
	}
	return stats, nil
}

// Leaderboard 상위 플레이어 목록
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.statsRepo.Leaderboard(ctx, limit)
}
