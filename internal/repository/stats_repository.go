package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/pkg/database"
)

// StatsRepository 플레이어 누적 전적과 리더보드
type StatsRepository struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// RecordWin 승자 전적 갱신 (행이 없으면 생성)
// 최단/평균 풀이 시간과 연승 기록도 함께 갱신
func (r *StatsRepository) RecordWin(ctx context.Context, userID string, solveSeconds *int) error {
	query := `
		INSERT INTO match_stats (user_id, total_matches, matches_won, total_puzzles_solved,
		                         fastest_solve_seconds, average_solve_seconds,
		                         current_streak, best_streak, updated_at)
		VALUES ($1, 1, 1, 1, $2, $2, 1, 1, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			total_matches = match_stats.total_matches + 1,
			matches_won = match_stats.matches_won + 1,
			total_puzzles_solved = match_stats.total_puzzles_solved + 1,
			fastest_solve_seconds = LEAST(COALESCE(match_stats.fastest_solve_seconds, $2), $2),
			average_solve_seconds = (
				COALESCE(match_stats.average_solve_seconds, 0) * match_stats.total_puzzles_solved
				+ COALESCE($2, 0)
			) / (match_stats.total_puzzles_solved + 1),
			current_streak = match_stats.current_streak + 1,
			best_streak = GREATEST(match_stats.best_streak, match_stats.current_streak + 1),
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, solveSeconds); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}
	return nil
}

// RecordLoss 패자 전적 갱신 (연승 초기화)
func (r *StatsRepository) RecordLoss(ctx context.Context, userID string) error {
	query := `
		INSERT INTO match_stats (user_id, total_matches, matches_lost, current_streak, updated_at)
		VALUES ($1, 1, 1, 0, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			total_matches = match_stats.total_matches + 1,
			matches_lost = match_stats.matches_lost + 1,
			current_streak = 0,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to record loss: %w", err)
	}
	return nil
}

// FindByUserID 플레이어 전적 조회 (없으면 nil)
func (r *StatsRepository) FindByUserID(ctx context.Context, userID string) (*models.MatchStats, error) {
	query := `
		SELECT user_id, total_matches, matches_won, matches_lost, total_puzzles_solved,
		       fastest_solve_seconds, average_solve_seconds,
		       current_streak, best_streak, updated_at
		FROM match_stats
		WHERE user_id = $1
	`

	stats := &models.MatchStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.TotalMatches,
		&stats.MatchesWon,
		&stats.MatchesLost,
		&stats.TotalPuzzlesSolved,
		&stats.FastestSolveSeconds,
		&stats.AverageSolveSeconds,
		&stats.CurrentStreak,
		&stats.BestStreak,
		&stats.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stats: %w", err)
	}

	return stats, nil
}

// Leaderboard 승수 기준 상위 플레이어
func (r *StatsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT s.user_id, u.username, s.matches_won, s.total_matches,
		       s.fastest_solve_seconds, s.average_solve_seconds
		FROM match_stats s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.matches_won DESC, s.fastest_solve_seconds ASC NULLS LAST
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.MatchesWon,
			&entry.TotalMatches,
			&entry.FastestSolveSeconds,
			&entry.AverageSolveSeconds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		rank++
		entry.Rank = rank
		if entry.TotalMatches > 0 {
			entry.WinRate = float64(entry.MatchesWon) / float64(entry.TotalMatches) * 100
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
