package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending_match"
	MatchStatusReady     MatchStatus = "ready"
	MatchStatusActive    MatchStatus = "active"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusAbandoned MatchStatus = "abandoned"
)

// Terminal 종료 상태 여부 (completed 또는 abandoned)
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusAbandoned
}

type Match struct {
	ID          string      `json:"id" db:"id"`
	PuzzleID    int         `json:"puzzleId" db:"puzzle_id"`
	Player1ID   string      `json:"player1Id" db:"player1_id"`
	Player2ID   *string     `json:"player2Id,omitempty" db:"player2_id"`
	Status      MatchStatus `json:"status" db:"status"`
	RoomCode    *string     `json:"roomCode,omitempty" db:"room_code"`
	WinnerID    *string     `json:"winnerId,omitempty" db:"winner_id"`
	StartedAt   *time.Time  `json:"startedAt,omitempty" db:"started_at"`
	CompletedAt *time.Time  `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// HasPlayer 해당 플레이어가 매치 참가자인지 확인
func (m *Match) HasPlayer(playerID string) bool {
	if m.Player1ID == playerID {
		return true
	}
	return m.Player2ID != nil && *m.Player2ID == playerID
}

// Opponent 상대 플레이어 ID (아직 없으면 빈 문자열)
func (m *Match) Opponent(playerID string) string {
	if m.Player1ID == playerID {
		if m.Player2ID != nil {
			return *m.Player2ID
		}
		return ""
	}
	return m.Player1ID
}

// PlayerInput 매치 시작 시 플레이어별로 발급되는 퍼즐 입력
// ExpectedAnswer는 서버 내부 전용 - 클라이언트 응답에 절대 포함하지 않음
type PlayerInput struct {
	PlayerID       string `json:"playerId"`
	InputData      string `json:"inputData"`
	ExpectedAnswer string `json:"-"`
}

// ActivationRecord startMatch 결과 (멱등: 같은 매치에 대해 항상 동일)
type ActivationRecord struct {
	MatchID   string      `json:"matchId"`
	Status    MatchStatus `json:"status"`
	StartedAt time.Time   `json:"startedAt"`
	InputData string      `json:"inputData"`
}

type CreateMatchRequest struct {
	PuzzleID  int    `json:"puzzleId" binding:"required"`
	RoomCode  string `json:"roomCode"`
	IsPrivate bool   `json:"isPrivate"`
}

type JoinMatchRequest struct {
	RoomCode string `json:"roomCode"`
	PuzzleID int    `json:"puzzleId"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitResult 답안 제출 결과
type SubmitResult struct {
	IsCorrect        bool        `json:"isCorrect"`
	MatchStatus      MatchStatus `json:"matchStatus"`
	WinnerID         *string     `json:"winnerId,omitempty"`
	TimeTakenSeconds *int        `json:"timeTakenSeconds,omitempty"`
	Message          string      `json:"message"`
}
