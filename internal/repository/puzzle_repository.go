package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/pkg/database"
)

type PuzzleRepository struct {
	db *database.DB
}

func NewPuzzleRepository(db *database.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

// PuzzleByID ID로 퍼즐 조회 (match.PuzzleProvider 구현)
func (r *PuzzleRepository) PuzzleByID(ctx context.Context, id int) (*models.Puzzle, error) {
	query := `
		SELECT id, day, title, description, story, sample_input, sample_output,
		       difficulty, generator_type, generator_params, case_sensitive,
		       is_active, created_at
		FROM puzzles
		WHERE id = $1
	`

	return r.scanPuzzle(r.db.QueryRowContext(ctx, query, id))
}

// FindActive 활성 퍼즐 목록 (day 오름차순)
func (r *PuzzleRepository) FindActive(ctx context.Context, limit, offset int) ([]*models.Puzzle, error) {
	query := `
		SELECT id, day, title, description, story, sample_input, sample_output,
		       difficulty, generator_type, generator_params, case_sensitive,
		       is_active, created_at
		FROM puzzles
		WHERE is_active = true
		ORDER BY day
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []*models.Puzzle
	for rows.Next() {
		puzzle, err := r.scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, puzzle)
	}

	return puzzles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PuzzleRepository) scanPuzzle(row rowScanner) (*models.Puzzle, error) {
	puzzle := &models.Puzzle{}
	var rawParams []byte

	err := row.Scan(
		&puzzle.ID,
		&puzzle.Day,
		&puzzle.Title,
		&puzzle.Description,
		&puzzle.Story,
		&puzzle.SampleInput,
		&puzzle.SampleOutput,
		&puzzle.Difficulty,
		&puzzle.GeneratorType,
		&rawParams,
		&puzzle.CaseSensitive,
		&puzzle.IsActive,
		&puzzle.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan puzzle: %w", err)
	}

	if len(rawParams) > 0 {
		if err := json.Unmarshal(rawParams, &puzzle.GeneratorParams); err != nil {
			return nil, fmt.Errorf("failed to decode generator params: %w", err)
		}
	}

	return puzzle, nil
}
