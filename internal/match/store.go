package match

import "sync"

// Store 진행 중인 매치 세션의 인메모리 저장소
// 매치 간 연산은 완전히 병렬 - 저장소 잠금은 조회/등록에만 사용
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore Store 생성
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Add 세션 등록
func (s *Store) Add(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
}

// Get 세션 조회
func (s *Store) Get(matchID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return sess, nil
}

// Remove 세션 제거 (보존 기간 종료 후)
func (s *Store) Remove(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, matchID)
}

// Len 현재 보관 중인 세션 수
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
