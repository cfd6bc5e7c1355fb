package models

import "time"

// Submission 답안 제출 기록 (생성 후 변경/삭제 없음 - 감사 로그용)
type Submission struct {
	ID               string    `json:"id" db:"id"`
	MatchID          string    `json:"matchId" db:"match_id"`
	PlayerID         string    `json:"playerId" db:"player_id"`
	PuzzleID         int       `json:"puzzleId" db:"puzzle_id"`
	SubmittedAnswer  string    `json:"submittedAnswer" db:"submitted_answer"`
	IsCorrect        bool      `json:"isCorrect" db:"is_correct"`
	TimeTakenSeconds *int      `json:"timeTakenSeconds,omitempty" db:"time_taken_seconds"`
	SubmittedAt      time.Time `json:"submittedAt" db:"submitted_at"`
}
