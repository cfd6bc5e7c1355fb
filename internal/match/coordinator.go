package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ioulasri/CodeArena/internal/models"
	"github.com/ioulasri/CodeArena/pkg/metrics"
)

// PuzzleProvider 외부 퍼즐 콘텐츠 협력자 경계
type PuzzleProvider interface {
	PuzzleByID(ctx context.Context, id int) (*models.Puzzle, error)
}

// Issuer 플레이어별 퍼즐 입력/정답 발급자
type Issuer interface {
	Issue(ctx context.Context, puzzle *models.Puzzle) (inputData, expectedAnswer string, err error)
}

// Archiver 종료된 매치와 제출 기록의 영속화 경계
// 라이브 상태 머신은 인메모리이며 Archiver는 감사/히스토리 용도
type Archiver interface {
	SaveSubmission(ctx context.Context, sub models.Submission) error
	ArchiveMatch(ctx context.Context, m models.Match) error
}

// StatsRecorder 매치 결과 기반 전적 갱신 경계
type StatsRecorder interface {
	RecordResult(ctx context.Context, winnerID, loserID string, solveSeconds *int) error
}

// Config Coordinator 동작 파라미터
type Config struct {
	IdleTimeout    time.Duration // pending_match/ready 상태 유휴 만료 (기본 5분)
	Retention      time.Duration // 종료 후 인메모리 보존 기간 (기본 5분)
	IssueTimeout   time.Duration // 입력 발급 호출 타임아웃 (기본 5초)
	RoomCodeLength int
}

func (c *Config) applyDefaults() {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 5 * time.Minute
	}
	if c.Retention <= 0 {
		c.Retention = 5 * time.Minute
	}
	if c.IssueTimeout <= 0 {
		c.IssueTimeout = 5 * time.Second
	}
	if c.RoomCodeLength <= 0 {
		c.RoomCodeLength = 6
	}
}

// Coordinator 매치 세션 코디네이터 - 생성/참가/시작/제출의 파사드
// 매치 식별자당 하나의 직렬화 구간(Session)을 두고
// 서로 다른 매치의 연산은 공유 잠금 없이 병렬로 처리
type Coordinator struct {
	cfg      Config
	store    *Store
	registry *RoomRegistry
	queue    *pendingQueue
	puzzles  PuzzleProvider
	issuer   Issuer
	notifier Notifier
	archiver Archiver
	stats    StatsRecorder
	logger   *zap.Logger

	timerMu sync.Mutex
	timers  map[string]*time.Timer
}

// NewCoordinator Coordinator 생성
// archiver와 stats는 nil 가능 (영속화 없이 동작)
func NewCoordinator(
	cfg Config,
	puzzles PuzzleProvider,
	issuer Issuer,
	notifier Notifier,
	archiver Archiver,
	stats StatsRecorder,
) *Coordinator {
	cfg.applyDefaults()
	if notifier == nil {
		notifier = NopNotifier{}
	}
	logger, _ := zap.NewProduction()

	return &Coordinator{
		cfg:      cfg,
		store:    NewStore(),
		registry: NewRoomRegistry(cfg.RoomCodeLength),
		queue:    newPendingQueue(),
		puzzles:  puzzles,
		issuer:   issuer,
		notifier: notifier,
		archiver: archiver,
		stats:    stats,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
}

// CreateMatch 매치 생성
// 프라이빗이면 룸 코드를 할당하고, 퍼블릭이면 먼저 같은 퍼즐의
// 대기 중인 퍼블릭 매치와 FIFO 페어링을 시도함
func (c *Coordinator) CreateMatch(ctx context.Context, creatorID string, puzzleID int, requestedCode string, isPrivate bool) (models.Match, error) {
	puzzle, err := c.puzzles.PuzzleByID(ctx, puzzleID)
	if err != nil {
		return models.Match{}, err
	}
	if puzzle == nil || !puzzle.IsActive {
		return models.Match{}, ErrPuzzleNotFound
	}

	if !isPrivate {
		// 퍼블릭 큐 페어링 - 성공하면 새 매치를 만들지 않고 기존 매치에 합류
		if m, ok := c.pairPublic(creatorID, puzzleID); ok {
			return m, nil
		}
	}

	sess := NewSession(puzzleID, creatorID)

	visibility := "public"
	if isPrivate {
		code, err := c.registry.Allocate(requestedCode, sess.ID())
		if err != nil {
			return models.Match{}, err
		}
		sess.SetRoomCode(code)
		visibility = "private"
	}

	c.store.Add(sess)
	if !isPrivate {
		c.queue.Push(sess.ID(), puzzleID, creatorID)
	}
	c.scheduleTimer(sess.ID(), c.cfg.IdleTimeout, func() { c.expire(sess.ID()) })

	metrics.MatchesCreated.WithLabelValues(visibility).Inc()
	metrics.ActiveMatches.Set(float64(c.store.Len()))

	m := sess.Snapshot()
	c.logger.Info("Match created",
		zap.String("matchId", m.ID),
		zap.Int("puzzleId", puzzleID),
		zap.String("player1", creatorID),
		zap.String("visibility", visibility))

	return m, nil
}

// JoinMatch 매치 참가
// roomCode가 있으면 해당 프라이빗 매치에, 없으면 퍼블릭 큐 페어링
func (c *Coordinator) JoinMatch(ctx context.Context, joinerID, roomCode string, puzzleID int) (models.Match, error) {
	if roomCode == "" {
		m, ok := c.pairPublic(joinerID, puzzleID)
		if !ok {
			return models.Match{}, ErrNoOpenMatch
		}
		return m, nil
	}

	matchID, err := c.registry.Resolve(roomCode)
	if err != nil {
		return models.Match{}, err
	}

	sess, err := c.store.Get(matchID)
	if err != nil {
		// 레지스트리에 남아 있지만 세션이 이미 사라진 경우
		c.registry.Release(roomCode)
		return models.Match{}, ErrRoomNotFound
	}

	m, err := sess.Join(joinerID)
	if err != nil {
		if errors.Is(err, ErrMatchFull) {
			return models.Match{}, ErrRoomNotJoinable
		}
		return models.Match{}, err
	}

	// pending_match를 벗어났으므로 코드 해제 (재사용 가능)
	c.registry.Release(roomCode)
	c.scheduleTimer(matchID, c.cfg.IdleTimeout, func() { c.expire(matchID) })
	c.publishReady(m)

	return m, nil
}

// pairPublic 퍼블릭 대기 매치와의 FIFO 페어링 시도
func (c *Coordinator) pairPublic(joinerID string, puzzleID int) (models.Match, bool) {
	for {
		matchID, ok := c.queue.Pop(puzzleID, joinerID)
		if !ok {
			return models.Match{}, false
		}

		sess, err := c.store.Get(matchID)
		if err != nil {
			continue // 이미 만료되어 제거된 매치
		}

		m, err := sess.Join(joinerID)
		if err != nil {
			continue // 경합에서 밀렸거나 만료된 매치 - 다음 후보로
		}

		c.scheduleTimer(matchID, c.cfg.IdleTimeout, func() { c.expire(matchID) })
		c.publishReady(m)
		return m, true
	}
}

func (c *Coordinator) publishReady(m models.Match) {
	c.logger.Info("Match ready",
		zap.String("matchId", m.ID),
		zap.String("player1", m.Player1ID),
		zap.Stringp("player2", m.Player2ID))

	c.notifier.Publish(m.ID, Event{
		Type: EventMatchReady,
		Data: map[string]interface{}{
			"match_id":   m.ID,
			"player1_id": m.Player1ID,
			"player2_id": m.Player2ID,
		},
	})
}

// StartMatch 매치 시작: ready -> active
// 멱등 - 두 번째 호출은 동일한 활성화 레코드를 반환하며 입력을 재발급하지 않음
func (c *Coordinator) StartMatch(ctx context.Context, matchID, requesterID string) (*models.ActivationRecord, error) {
	sess, err := c.store.Get(matchID)
	if err != nil {
		return nil, err
	}

	puzzle, err := c.puzzles.PuzzleByID(ctx, sess.Snapshot().PuzzleID)
	if err != nil || puzzle == nil {
		return nil, ErrPuzzleNotFound
	}

	record, started, err := sess.Start(ctx, requesterID, c.cfg.IssueTimeout, func(issueCtx context.Context) (string, string, error) {
		return c.issuer.Issue(issueCtx, puzzle)
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotReady) {
			return nil, err
		}
		// 발급 실패 - 상태는 ready로 남아 있어 재시도 가능
		metrics.IssueFailures.Inc()
		c.logger.Error("Input issuance failed, match stays ready",
			zap.String("matchId", matchID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrIssueTimeout, err)
	}

	if started {
		c.cancelTimer(matchID)
		c.logger.Info("Match started", zap.String("matchId", matchID))
		c.notifier.Publish(matchID, Event{
			Type: EventMatchStarted,
			Data: map[string]interface{}{
				"match_id":   matchID,
				"started_at": record.StartedAt,
			},
		})
	}

	return record, nil
}

// Submit 답안 제출 - Answer Arbiter 진입점
func (c *Coordinator) Submit(ctx context.Context, matchID, playerID, answer string) (models.SubmitResult, error) {
	sess, err := c.store.Get(matchID)
	if err != nil {
		return models.SubmitResult{}, err
	}

	caseSensitive := false
	if puzzle, perr := c.puzzles.PuzzleByID(ctx, sess.Snapshot().PuzzleID); perr == nil && puzzle != nil {
		caseSensitive = puzzle.CaseSensitive
	}

	result, sub, completedNow, err := sess.Submit(playerID, answer, caseSensitive)
	if err != nil {
		return models.SubmitResult{}, err
	}

	metrics.Submissions.WithLabelValues(fmt.Sprintf("%t", sub.IsCorrect)).Inc()

	// 감사 로그 영속화 - 판정 경로를 블로킹하지 않음
	if c.archiver != nil {
		go func() {
			if err := c.archiver.SaveSubmission(context.Background(), sub); err != nil {
				c.logger.Error("Failed to persist submission",
					zap.String("matchId", matchID),
					zap.Error(err))
			}
		}()
	}

	// 상대에게만 제출 사실 통지 (자신의 제출은 에코하지 않음)
	c.notifier.Publish(matchID, Event{
		Type:    EventAnswerSubmitted,
		Exclude: playerID,
		Data: map[string]interface{}{
			"player_id":  playerID,
			"is_correct": sub.IsCorrect,
		},
	})

	if completedNow {
		c.completeMatch(sess, playerID, sub.TimeTakenSeconds)
	}

	return result, nil
}

func (c *Coordinator) completeMatch(sess *Session, winnerID string, solveSeconds *int) {
	m := sess.Snapshot()

	metrics.MatchesCompleted.Inc()
	c.logger.Info("Match completed",
		zap.String("matchId", m.ID),
		zap.String("winnerId", winnerID))

	c.notifier.Publish(m.ID, Event{
		Type: EventMatchCompleted,
		Data: map[string]interface{}{
			"match_id":  m.ID,
			"winner_id": winnerID,
		},
	})

	if c.archiver != nil {
		go func() {
			if err := c.archiver.ArchiveMatch(context.Background(), m); err != nil {
				c.logger.Error("Failed to archive match",
					zap.String("matchId", m.ID),
					zap.Error(err))
			}
		}()
	}

	if c.stats != nil {
		loserID := m.Opponent(winnerID)
		go func() {
			if err := c.stats.RecordResult(context.Background(), winnerID, loserID, solveSeconds); err != nil {
				c.logger.Error("Failed to record match result stats",
					zap.String("matchId", m.ID),
					zap.Error(err))
			}
		}()
	}

	// 늦은 결과 폴링을 위해 보존 기간 동안 세션 유지 후 제거
	c.scheduleTimer(m.ID, c.cfg.Retention, func() { c.evict(m.ID) })
}

// MatchDetail 상태 조회 응답 (폴링 폴백 경로)
type MatchDetail struct {
	Match     models.Match
	InputData *string // 조회자 본인에게 발급된 입력만
}

// GetMatch 매치 상태 조회
// 이벤트 구독 여부와 무관하게 항상 현재 상태를 반환 - 폴링 폴백의 계약
func (c *Coordinator) GetMatch(ctx context.Context, matchID, viewerID string) (*MatchDetail, error) {
	sess, err := c.store.Get(matchID)
	if err != nil {
		return nil, err
	}

	detail := &MatchDetail{Match: sess.Snapshot()}
	if input, ok := sess.Input(viewerID); ok {
		detail.InputData = &input.InputData
	}

	return detail, nil
}

// Submissions 매치의 제출 기록 조회 (보존 기간 내)
func (c *Coordinator) Submissions(matchID string) ([]models.Submission, error) {
	sess, err := c.store.Get(matchID)
	if err != nil {
		return nil, err
	}
	return sess.Submissions(), nil
}

// expire 유휴 타임아웃 처리: pending_match/ready -> abandoned
func (c *Coordinator) expire(matchID string) {
	sess, err := c.store.Get(matchID)
	if err != nil {
		return
	}

	m, expired := sess.Expire()
	if !expired {
		return
	}

	if m.RoomCode != nil {
		c.registry.Release(*m.RoomCode)
	}
	c.queue.Remove(matchID)

	metrics.MatchesAbandoned.Inc()
	c.logger.Info("Match abandoned by idle timeout", zap.String("matchId", matchID))

	if c.archiver != nil {
		go func() {
			if err := c.archiver.ArchiveMatch(context.Background(), m); err != nil {
				c.logger.Error("Failed to archive abandoned match",
					zap.String("matchId", matchID),
					zap.Error(err))
			}
		}()
	}

	c.scheduleTimer(matchID, c.cfg.Retention, func() { c.evict(matchID) })
}

// evict 보존 기간 종료 후 인메모리 세션 제거
func (c *Coordinator) evict(matchID string) {
	c.cancelTimer(matchID)
	c.store.Remove(matchID)
	metrics.ActiveMatches.Set(float64(c.store.Len()))
}

// scheduleTimer 매치당 타이머 교체 등록 (기존 타이머는 취소)
func (c *Coordinator) scheduleTimer(matchID string, d time.Duration, fn func()) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if t, ok := c.timers[matchID]; ok {
		t.Stop()
	}
	c.timers[matchID] = time.AfterFunc(d, fn)
}

func (c *Coordinator) cancelTimer(matchID string) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	if t, ok := c.timers[matchID]; ok {
		t.Stop()
		delete(c.timers, matchID)
	}
}

// Shutdown 모든 매치 타이머 중지 (graceful shutdown)
func (c *Coordinator) Shutdown() {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
