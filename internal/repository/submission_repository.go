package repository

import (
	"context"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/pkg/database"
)

// SubmissionRepository 제출 감사 로그 (append-only)
type SubmissionRepository struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// SaveSubmission 제출 기록 저장 - 기록은 수정/삭제되지 않음
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, sub models.Submission) error {
	query := `
		INSERT INTO submissions (id, match_id, player_id, puzzle_id,
		                         submitted_answer, is_correct, time_taken_seconds, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.MatchID,
		sub.PlayerID,
		sub.PuzzleID,
		sub.SubmittedAnswer,
		sub.IsCorrect,
		sub.TimeTakenSeconds,
		sub.SubmittedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// FindByMatchID 매치의 제출 기록 조회 (제출 순)
func (r *SubmissionRepository) FindByMatchID(ctx context.Context, matchID string) ([]models.Submission, error) {
	query := `
		SELECT id, match_id, player_id, puzzle_id,
		       submitted_answer, is_correct, time_taken_seconds, submitted_at
		FROM submissions
		WHERE match_id = $1
		ORDER BY submitted_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.MatchID,
			&sub.PlayerID,
			&sub.PuzzleID,
			&sub.SubmittedAnswer,
			&sub.IsCorrect,
			&sub.TimeTakenSeconds,
			&sub.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
