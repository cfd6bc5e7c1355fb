package match

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ioulasri/CodeArena/internal/models"
)

// IssueFunc 플레이어 한 명에 대한 퍼즐 입력/정답 발급
type IssueFunc func(ctx context.Context) (inputData, expectedAnswer string, err error)

// Session 매치 하나의 직렬화 실행 구간 (매치당 단일 액터)
// 모든 상태 전이와 제출 판정은 mu 아래에서만 일어남
type Session struct {
	mu          sync.Mutex
	match       models.Match
	inputs      map[string]models.PlayerInput
	submissions []models.Submission
}

// NewSession 새 매치 세션 생성 (pending_match 상태)
func NewSession(puzzleID int, creatorID string) *Session {
	return &Session{
		match: models.Match{
			ID:        uuid.NewString(),
			PuzzleID:  puzzleID,
			Player1ID: creatorID,
			Status:    models.MatchStatusPending,
			CreatedAt: time.Now().UTC(),
		},
		inputs: make(map[string]models.PlayerInput),
	}
}

// ID 매치 ID (불변이므로 잠금 불필요)
func (s *Session) ID() string {
	return s.match.ID
}

// Snapshot 현재 매치 상태의 복사본
// 폴링과 푸시가 항상 같은 상태를 보도록 유일한 진실 공급원 역할을 함
func (s *Session) Snapshot() models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// SetRoomCode 프라이빗 매치의 룸 코드 설정 (생성 직후 한 번만 호출)
func (s *Session) SetRoomCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match.RoomCode = &code
}

// Join 두 번째 플레이어 참가: pending_match -> ready
func (s *Session) Join(playerID string) (models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.Player1ID == playerID {
		return s.match, ErrOwnMatch
	}
	if s.match.Player2ID != nil {
		return s.match, ErrMatchFull
	}
	if s.match.Status != models.MatchStatusPending {
		return s.match, ErrMatchFull
	}

	p2 := playerID
	s.match.Player2ID = &p2
	s.match.Status = models.MatchStatusReady

	return s.match, nil
}

// Start 매치 시작: ready -> active
// 플레이어별 입력 발급은 이 임계 구역 안에서 타임아웃과 함께 수행되며,
// 발급이 실패하면 상태를 변경하지 않으므로 재시도가 안전함
// 이미 시작된 매치에 대해서는 동일한 활성화 레코드를 반환 (멱등)
func (s *Session) Start(ctx context.Context, requesterID string, timeout time.Duration, issue IssueFunc) (*models.ActivationRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.match.HasPlayer(requesterID) {
		return nil, false, ErrForbidden
	}

	// 이미 시작되었으면 기존 입력을 그대로 반환 (재발급 금지)
	if s.match.StartedAt != nil {
		input, ok := s.inputs[requesterID]
		if !ok {
			return nil, false, ErrNotReady
		}
		return &models.ActivationRecord{
			MatchID:   s.match.ID,
			Status:    s.match.Status,
			StartedAt: *s.match.StartedAt,
			InputData: input.InputData,
		}, false, nil
	}

	if s.match.Status != models.MatchStatusReady || s.match.Player2ID == nil {
		return nil, false, ErrNotReady
	}

	issueCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// 두 플레이어 모두 성공해야만 상태를 전이 - 실패 시 ready 유지
	issued := make(map[string]models.PlayerInput, 2)
	for _, playerID := range []string{s.match.Player1ID, *s.match.Player2ID} {
		inputData, expected, err := issue(issueCtx)
		if err != nil {
			return nil, false, err
		}
		issued[playerID] = models.PlayerInput{
			PlayerID:       playerID,
			InputData:      inputData,
			ExpectedAnswer: expected,
		}
	}

	now := time.Now().UTC()
	s.inputs = issued
	s.match.StartedAt = &now
	s.match.Status = models.MatchStatusActive

	return &models.ActivationRecord{
		MatchID:   s.match.ID,
		Status:    s.match.Status,
		StartedAt: now,
		InputData: issued[requesterID].InputData,
	}, true, nil
}

// Submit 답안 제출 판정
// 직렬화된 구간에서 첫 번째로 받아들여진 정답만 승자가 됨
// completed 이후의 제출도 기록은 남기되 승자를 바꾸지 않음
func (s *Session) Submit(playerID, answer string, caseSensitive bool) (models.SubmitResult, models.Submission, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.match.HasPlayer(playerID) {
		return models.SubmitResult{}, models.Submission{}, false, ErrForbidden
	}

	if s.match.Status != models.MatchStatusActive && s.match.Status != models.MatchStatusCompleted {
		return models.SubmitResult{}, models.Submission{}, false, ErrNotActive
	}

	input, ok := s.inputs[playerID]
	if !ok {
		return models.SubmitResult{}, models.Submission{}, false, ErrNotActive
	}

	alreadySolved := s.hasCorrectSubmission(playerID)

	// 각 플레이어는 자신에게 발급된 정답과만 비교 (입력이 서로 다르므로)
	isCorrect := normalize(answer, caseSensitive) == normalize(input.ExpectedAnswer, caseSensitive)

	now := time.Now().UTC()
	var timeTaken *int
	if s.match.StartedAt != nil {
		secs := int(now.Sub(*s.match.StartedAt).Seconds())
		timeTaken = &secs
	}

	// 판정 결과와 무관하게 모든 제출은 응답 전에 기록
	sub := models.Submission{
		ID:               uuid.NewString(),
		MatchID:          s.match.ID,
		PlayerID:         playerID,
		PuzzleID:         s.match.PuzzleID,
		SubmittedAnswer:  answer,
		IsCorrect:        isCorrect,
		TimeTakenSeconds: timeTaken,
		SubmittedAt:      now,
	}
	s.submissions = append(s.submissions, sub)

	completedNow := false
	if isCorrect && s.match.Status == models.MatchStatusActive && s.match.WinnerID == nil {
		winner := playerID
		s.match.WinnerID = &winner
		s.match.Status = models.MatchStatusCompleted
		s.match.CompletedAt = &now
		completedNow = true
	}

	result := models.SubmitResult{
		IsCorrect:        isCorrect,
		MatchStatus:      s.match.Status,
		WinnerID:         s.match.WinnerID,
		TimeTakenSeconds: timeTaken,
		Message:          submitMessage(isCorrect, alreadySolved, completedNow),
	}

	return result, sub, completedNow, nil
}

// Input 플레이어에게 발급된 입력 조회 (발급 전이면 false)
func (s *Session) Input(playerID string) (models.PlayerInput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	input, ok := s.inputs[playerID]
	return input, ok
}

// Submissions 제출 기록 복사본
func (s *Session) Submissions() []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]models.Submission, len(s.submissions))
	copy(subs, s.submissions)
	return subs
}

// Expire 유휴 타임아웃 만료: pending_match/ready -> abandoned
// active 이후에는 효력 없음
func (s *Session) Expire() (models.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.Status != models.MatchStatusPending && s.match.Status != models.MatchStatusReady {
		return s.match, false
	}

	now := time.Now().UTC()
	s.match.Status = models.MatchStatusAbandoned
	s.match.CompletedAt = &now

	return s.match, true
}

func (s *Session) hasCorrectSubmission(playerID string) bool {
	for _, sub := range s.submissions {
		if sub.PlayerID == playerID && sub.IsCorrect {
			return true
		}
	}
	return false
}

func normalize(answer string, caseSensitive bool) string {
	answer = strings.TrimSpace(answer)
	if !caseSensitive {
		answer = strings.ToLower(answer)
	}
	return answer
}

func submitMessage(isCorrect, alreadySolved, completedNow bool) string {
	switch {
	case completedNow:
		return "Correct! You win!"
	case alreadySolved:
		return "You already submitted the correct answer"
	case isCorrect:
		return "Correct answer!"
	default:
		return "Incorrect answer, try again!"
	}
}
