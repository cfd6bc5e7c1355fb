package match

import "sync"

type pendingEntry struct {
	matchID   string
	puzzleID  int
	player1ID string
}

// pendingQueue 퍼블릭 대기 매치의 FIFO 인덱스
// 생성 순서가 곧 매칭 우선순위 (가장 오래된 매치부터)
type pendingQueue struct {
	mu      sync.Mutex
	entries []pendingEntry
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{}
}

// Push 퍼블릭 대기 매치 등록
func (q *pendingQueue) Push(matchID string, puzzleID int, player1ID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, pendingEntry{
		matchID:   matchID,
		puzzleID:  puzzleID,
		player1ID: player1ID,
	})
}

// Pop 조건에 맞는 가장 오래된 매치를 꺼냄
// puzzleID가 0이면 퍼즐 무관, joinerID가 만든 매치는 건너뜀
func (q *pendingQueue) Pop(puzzleID int, joinerID string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if puzzleID != 0 && e.puzzleID != puzzleID {
			continue
		}
		if e.player1ID == joinerID {
			continue
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return e.matchID, true
	}
	return "", false
}

// Remove 매치를 인덱스에서 제거 (멱등)
func (q *pendingQueue) Remove(matchID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.matchID == matchID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}
