package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioulasri/CodeArena/internal/models"
)

func issueFixed(input, answer string) IssueFunc {
	return func(ctx context.Context) (string, string, error) {
		return input, answer, nil
	}
}

func startedSession(t *testing.T, answer string) *Session {
	t.Helper()

	sess := NewSession(1, "p1")
	_, err := sess.Join("p2")
	require.NoError(t, err)

	_, started, err := sess.Start(context.Background(), "p1", time.Second, issueFixed("input", answer))
	require.NoError(t, err)
	require.True(t, started)

	return sess
}

func TestSession_Join(t *testing.T) {
	sess := NewSession(1, "p1")

	m, err := sess.Join("p2")
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusReady, m.Status)
	require.NotNil(t, m.Player2ID)
	assert.Equal(t, "p2", *m.Player2ID)
}

func TestSession_JoinOwnMatch(t *testing.T) {
	sess := NewSession(1, "p1")

	_, err := sess.Join("p1")
	assert.ErrorIs(t, err, ErrOwnMatch)
}

func TestSession_JoinFull(t *testing.T) {
	sess := NewSession(1, "p1")

	_, err := sess.Join("p2")
	require.NoError(t, err)

	_, err = sess.Join("p3")
	assert.ErrorIs(t, err, ErrMatchFull)
}

func TestSession_ConcurrentJoin(t *testing.T) {
	// 동시에 여러 명이 참가를 시도해도 정확히 한 명만 성공
	for trial := 0; trial < 50; trial++ {
		sess := NewSession(1, "p1")

		joiners := []string{"a", "b", "c", "d", "e"}
		successes := make(chan string, len(joiners))

		var wg sync.WaitGroup
		for _, id := range joiners {
			wg.Add(1)
			go func(playerID string) {
				defer wg.Done()
				if _, err := sess.Join(playerID); err == nil {
					successes <- playerID
				}
			}(id)
		}
		wg.Wait()
		close(successes)

		var winners []string
		for id := range successes {
			winners = append(winners, id)
		}
		require.Len(t, winners, 1)

		m := sess.Snapshot()
		require.NotNil(t, m.Player2ID)
		assert.Equal(t, winners[0], *m.Player2ID)
	}
}

func TestSession_StartRequiresReady(t *testing.T) {
	sess := NewSession(1, "p1")

	_, _, err := sess.Start(context.Background(), "p1", time.Second, issueFixed("in", "42"))
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSession_StartForbiddenForOutsider(t *testing.T) {
	sess := NewSession(1, "p1")
	_, err := sess.Join("p2")
	require.NoError(t, err)

	_, _, err = sess.Start(context.Background(), "intruder", time.Second, issueFixed("in", "42"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSession_StartIdempotent(t *testing.T) {
	calls := 0
	issue := func(ctx context.Context) (string, string, error) {
		calls++
		return "input", "42", nil
	}

	sess := NewSession(1, "p1")
	_, err := sess.Join("p2")
	require.NoError(t, err)

	first, started, err := sess.Start(context.Background(), "p1", time.Second, issue)
	require.NoError(t, err)
	require.True(t, started)
	assert.Equal(t, 2, calls) // 플레이어당 한 번

	// 두 번째 호출은 재발급 없이 동일한 레코드
	second, started, err := sess.Start(context.Background(), "p2", time.Second, issue)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, 2, calls)
	assert.Equal(t, first.MatchID, second.MatchID)
	assert.Equal(t, first.StartedAt, second.StartedAt)
}

func TestSession_StartIssueFailureKeepsReady(t *testing.T) {
	issueErr := errors.New("generator unavailable")
	failing := func(ctx context.Context) (string, string, error) {
		return "", "", issueErr
	}

	sess := NewSession(1, "p1")
	_, err := sess.Join("p2")
	require.NoError(t, err)

	_, _, err = sess.Start(context.Background(), "p1", time.Second, failing)
	require.ErrorIs(t, err, issueErr)

	// 실패 후에도 ready로 남아 재시도 가능
	assert.Equal(t, models.MatchStatusReady, sess.Snapshot().Status)
	assert.Nil(t, sess.Snapshot().StartedAt)

	_, started, err := sess.Start(context.Background(), "p1", time.Second, issueFixed("input", "42"))
	require.NoError(t, err)
	assert.True(t, started)
}

func TestSession_SubmitBeforeStart(t *testing.T) {
	sess := NewSession(1, "p1")
	_, err := sess.Join("p2")
	require.NoError(t, err)

	_, _, _, err = sess.Submit("p1", "42", false)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSession_SubmitForbidden(t *testing.T) {
	sess := startedSession(t, "42")

	_, _, _, err := sess.Submit("intruder", "42", false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSession_SubmitCorrectWins(t *testing.T) {
	sess := startedSession(t, "42")

	result, sub, completedNow, err := sess.Submit("p1", "42", false)
	require.NoError(t, err)
	assert.True(t, completedNow)
	assert.True(t, result.IsCorrect)
	assert.True(t, sub.IsCorrect)
	assert.Equal(t, models.MatchStatusCompleted, result.MatchStatus)
	require.NotNil(t, result.WinnerID)
	assert.Equal(t, "p1", *result.WinnerID)
}

func TestSession_SubmitIncorrect(t *testing.T) {
	sess := startedSession(t, "42")

	result, _, completedNow, err := sess.Submit("p1", "41", false)
	require.NoError(t, err)
	assert.False(t, completedNow)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, models.MatchStatusActive, result.MatchStatus)
	assert.Nil(t, result.WinnerID)
}

func TestSession_SubmitNormalization(t *testing.T) {
	sess := startedSession(t, "Hello World")

	result, _, _, err := sess.Submit("p1", "  hello world \n", false)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestSession_SubmitCaseSensitive(t *testing.T) {
	sess := startedSession(t, "Hello")

	result, _, _, err := sess.Submit("p1", "hello", true)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)

	result, _, _, err = sess.Submit("p1", "Hello", true)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestSession_LateCorrectDoesNotChangeWinner(t *testing.T) {
	sess := startedSession(t, "42")

	_, _, completedNow, err := sess.Submit("p1", "42", false)
	require.NoError(t, err)
	require.True(t, completedNow)

	// 이미 완료된 매치에서 상대의 정답 제출: 기록은 남지만 승자는 불변
	result, sub, completedNow, err := sess.Submit("p2", "42", false)
	require.NoError(t, err)
	assert.False(t, completedNow)
	assert.True(t, result.IsCorrect)
	assert.True(t, sub.IsCorrect)
	require.NotNil(t, result.WinnerID)
	assert.Equal(t, "p1", *result.WinnerID)

	subs := sess.Submissions()
	assert.Len(t, subs, 2)
}

func TestSession_ResubmitAfterOwnCorrect(t *testing.T) {
	sess := startedSession(t, "42")

	_, _, _, err := sess.Submit("p1", "42", false)
	require.NoError(t, err)

	result, _, _, err := sess.Submit("p1", "42", false)
	require.NoError(t, err)
	assert.Equal(t, "You already submitted the correct answer", result.Message)
	assert.Len(t, sess.Submissions(), 2)
}

func TestSession_AtMostOneWinner(t *testing.T) {
	// 두 플레이어가 동시에 정답을 제출해도 승자는 정확히 한 명
	for trial := 0; trial < 200; trial++ {
		sess := startedSession(t, "42")

		var wg sync.WaitGroup
		wins := make(chan string, 2)
		for _, playerID := range []string{"p1", "p2"} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, _, completedNow, err := sess.Submit(id, "42", false)
				assert.NoError(t, err)
				if completedNow {
					wins <- id
				}
			}(playerID)
		}
		wg.Wait()
		close(wins)

		var winners []string
		for id := range wins {
			winners = append(winners, id)
		}
		require.Len(t, winners, 1)

		m := sess.Snapshot()
		assert.Equal(t, models.MatchStatusCompleted, m.Status)
		require.NotNil(t, m.WinnerID)
		assert.Equal(t, winners[0], *m.WinnerID)
		assert.Len(t, sess.Submissions(), 2)
	}
}

func TestSession_ExpirePending(t *testing.T) {
	sess := NewSession(1, "p1")

	m, expired := sess.Expire()
	assert.True(t, expired)
	assert.Equal(t, models.MatchStatusAbandoned, m.Status)
	assert.NotNil(t, m.CompletedAt)
}

func TestSession_ExpireActiveNoop(t *testing.T) {
	sess := startedSession(t, "42")

	_, expired := sess.Expire()
	assert.False(t, expired)
	assert.Equal(t, models.MatchStatusActive, sess.Snapshot().Status)
}

func TestSession_ExpiredMatchRejectsJoin(t *testing.T) {
	sess := NewSession(1, "p1")
	_, expired := sess.Expire()
	require.True(t, expired)

	_, err := sess.Join("p2")
	assert.Error(t, err)
}
