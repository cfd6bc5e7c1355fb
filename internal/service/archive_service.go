package service

import (
	"context"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/internal/repository"
)

// ArchiveService 코디네이터의 영속화 경계 (match.Archiver 구현)
// 종료된 매치와 제출 감사 로그를 Postgres에 기록
type ArchiveService struct {
	matchRepo      *repository.MatchArchiveRepository
	submissionRepo *repository.SubmissionRepository
}

func NewArchiveService(
	matchRepo *repository.MatchArchiveRepository,
	submissionRepo *repository.SubmissionRepository,
) *ArchiveService {
	return &ArchiveService{
		matchRepo:      matchRepo,
		submissionRepo: submissionRepo,
	}
}

// SaveSubmission 제출 기록 영속화
func (s *ArchiveService) SaveSubmission(ctx context.Context, sub models.Submission) error {
	return s.submissionRepo.SaveSubmission(ctx, sub)
}

// ArchiveMatch 종료된 매치 영속화
func (s *ArchiveService) ArchiveMatch(ctx context.Context, m models.Match) error {
	return s.matchRepo.ArchiveMatch(ctx, m)
}

// FindArchivedMatch 보존 기간이 지난 매치의 늦은 조회
func (s *ArchiveService) FindArchivedMatch(ctx context.Context, matchID string) (*models.Match, error) {
	return s.matchRepo.FindByID(ctx, matchID)
}

// MatchSubmissions 아카이브된 매치의 제출 기록
func (s *ArchiveService) MatchSubmissions(ctx context.Context, matchID string) ([]models.Submission, error) {
	return s.submissionRepo.FindByMatchID(ctx, matchID)
}

// MatchHistory 플레이어 매치 히스토리
func (s *ArchiveService) MatchHistory(ctx context.Context, playerID string, limit int) ([]models.MatchHistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.matchRepo.FindByPlayerID(ctx, playerID, limit)
}
