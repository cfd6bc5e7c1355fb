package match

import "errors"

// Room Registry errors
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not joinable")
	ErrCodeConflict    = errors.New("room code already in use")
)

// Coordinator errors
var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrPuzzleNotFound = errors.New("puzzle not found or not active")
	ErrNoOpenMatch    = errors.New("no open match available")
	ErrOwnMatch       = errors.New("cannot join your own match")
	ErrMatchFull      = errors.New("match already has two players")
	ErrIssueTimeout   = errors.New("puzzle input issuance failed")
)

// 잘못된 수명주기 상태에서의 요청
var (
	ErrNotReady  = errors.New("match is not ready to start")
	ErrNotActive = errors.New("match is not active")
	ErrForbidden = errors.New("player is not a participant of this match")
)
