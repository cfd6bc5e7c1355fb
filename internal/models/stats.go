package models

import "time"

// MatchStats 플레이어 누적 전적
type MatchStats struct {
	UserID              string     `json:"userId" db:"user_id"`
	TotalMatches        int        `json:"totalMatches" db:"total_matches"`
	MatchesWon          int        `json:"matchesWon" db:"matches_won"`
	MatchesLost         int        `json:"matchesLost" db:"matches_lost"`
	TotalPuzzlesSolved  int        `json:"totalPuzzlesSolved" db:"total_puzzles_solved"`
	FastestSolveSeconds *int       `json:"fastestSolveSeconds,omitempty" db:"fastest_solve_seconds"`
	AverageSolveSeconds *float64   `json:"averageSolveSeconds,omitempty" db:"average_solve_seconds"`
	CurrentStreak       int        `json:"currentStreak" db:"current_streak"`
	BestStreak          int        `json:"bestStreak" db:"best_streak"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// WinRate 승률 (%)
func (s *MatchStats) WinRate() float64 {
	if s.TotalMatches == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.TotalMatches) * 100
}

// LeaderboardEntry 리더보드 한 줄
type LeaderboardEntry struct {
	Rank                int      `json:"rank"`
	UserID              string   `json:"userId" db:"user_id"`
	Username            string   `json:"username" db:"username"`
	MatchesWon          int      `json:"matchesWon" db:"matches_won"`
	TotalMatches        int      `json:"totalMatches" db:"total_matches"`
	WinRate             float64  `json:"winRate"`
	FastestSolveSeconds *int     `json:"fastestSolveSeconds,omitempty" db:"fastest_solve_seconds"`
	AverageSolveSeconds *float64 `json:"averageSolveSeconds,omitempty" db:"average_solve_seconds"`
}

// MatchHistoryEntry 매치 히스토리 한 줄
type MatchHistoryEntry struct {
	MatchID          string      `json:"matchId"`
	PuzzleDay        int         `json:"puzzleDay"`
	PuzzleTitle      string      `json:"puzzleTitle"`
	OpponentUsername *string     `json:"opponentUsername,omitempty"`
	Won              bool        `json:"won"`
	Status           MatchStatus `json:"status"`
	TimeTakenSeconds *int        `json:"timeTakenSeconds,omitempty"`
	CompletedAt      *time.Time  `json:"completedAt,omitempty"`
}
