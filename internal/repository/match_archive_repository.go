package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/pkg/database"
)

// MatchArchiveRepository 종료된 매치의 영속 기록 (히스토리/늦은 조회용)
// 라이브 상태는 인메모리 코디네이터가 소유하며 여기에는 종료 후에만 기록됨
type MatchArchiveRepository struct {
	db *database.DB
}

func NewMatchArchiveRepository(db *database.DB) *MatchArchiveRepository {
	return &MatchArchiveRepository{db: db}
}

// ArchiveMatch 종료된 매치 기록 (멱등 - 같은 매치는 갱신)
func (r *MatchArchiveRepository) ArchiveMatch(ctx context.Context, m models.Match) error {
	query := `
		INSERT INTO matches (id, puzzle_id, player1_id, player2_id, status,
		                     winner_id, room_code, started_at, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			status = EXCLUDED.status,
			winner_id = EXCLUDED.winner_id,
			completed_at = EXCLUDED.completed_at
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.PuzzleID,
		m.Player1ID,
		m.Player2ID,
		m.Status,
		m.WinnerID,
		m.RoomCode,
		m.StartedAt,
		m.CompletedAt,
		m.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to archive match: %w", err)
	}

	return nil
}

// FindByID 보관된 매치 조회 (보존 기간 이후의 늦은 폴링 폴백)
func (r *MatchArchiveRepository) FindByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, puzzle_id, player1_id, player2_id, status,
		       winner_id, room_code, started_at, completed_at, created_at
		FROM matches
		WHERE id = $1
	`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.PuzzleID,
		&m.Player1ID,
		&m.Player2ID,
		&m.Status,
		&m.WinnerID,
		&m.RoomCode,
		&m.StartedAt,
		&m.CompletedAt,
		&m.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}

	return m, nil
}

// FindByPlayerID 플레이어의 매치 히스토리 (최근 순)
func (r *MatchArchiveRepository) FindByPlayerID(ctx context.Context, playerID string, limit int) ([]models.MatchHistoryEntry, error) {
	query := `
		SELECT m.id, p.day, p.title, m.player1_id, m.player2_id,
		       u1.username, u2.username,
		       m.winner_id, m.status, m.completed_at,
		       (
		           SELECT s.time_taken_seconds FROM submissions s
		           WHERE s.match_id = m.id AND s.player_id = $1 AND s.is_correct = true
		           ORDER BY s.submitted_at ASC
		           LIMIT 1
		       )
		FROM matches m
		JOIN puzzles p ON p.id = m.puzzle_id
		JOIN users u1 ON u1.id = m.player1_id
		LEFT JOIN users u2 ON u2.id = m.player2_id
		WHERE m.player1_id = $1 OR m.player2_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match history: %w", err)
	}
	defer rows.Close()

	var history []models.MatchHistoryEntry
	for rows.Next() {
		var (
			entry     models.MatchHistoryEntry
			player1ID string
			player2ID *string
			username1 string
			username2 *string
			winnerID  *string
		)

		if err := rows.Scan(
			&entry.MatchID,
			&entry.PuzzleDay,
			&entry.PuzzleTitle,
			&player1ID,
			&player2ID,
			&username1,
			&username2,
			&winnerID,
			&entry.Status,
			&entry.CompletedAt,
			&entry.TimeTakenSeconds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match history: %w", err)
		}

		if player1ID == playerID {
			entry.OpponentUsername = username2
		} else {
			entry.OpponentUsername = &username1
		}
		entry.Won = winnerID != nil && *winnerID == playerID

		history = append(history, entry)
	}

	return history, rows.Err()
}
