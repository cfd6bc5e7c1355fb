package match

import (
	"math/rand"
	"sync"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RoomRegistry 룸 코드 -> 대기 중인 매치 ID 매핑
// 코드는 매치가 pending_match를 벗어나면 해제되어 재사용 가능
type RoomRegistry struct {
	mu      sync.Mutex
	codes   map[string]string // code -> matchID
	codeLen int
}

// NewRoomRegistry RoomRegistry 생성
func NewRoomRegistry(codeLen int) *RoomRegistry {
	if codeLen <= 0 {
		codeLen = 6
	}
	return &RoomRegistry{
		codes:   make(map[string]string),
		codeLen: codeLen,
	}
}

// Allocate 룸 코드 할당
// requested가 비어 있으면 새 코드를 생성하고, 충돌 시 재시도
// requested가 이미 사용 중이면 ErrCodeConflict
func (r *RoomRegistry) Allocate(requested, matchID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requested != "" {
		if _, taken := r.codes[requested]; taken {
			return "", ErrCodeConflict
		}
		r.codes[requested] = matchID
		return requested, nil
	}

	for {
		code := r.generateCode()
		if _, taken := r.codes[code]; !taken {
			r.codes[code] = matchID
			return code, nil
		}
	}
}

// Resolve 코드로 대기 중인 매치 ID 조회
func (r *RoomRegistry) Resolve(code string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matchID, ok := r.codes[code]
	if !ok {
		return "", ErrRoomNotFound
	}
	return matchID, nil
}

// Release 코드 해제 (멱등)
func (r *RoomRegistry) Release(code string) {
	if code == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, code)
}

func (r *RoomRegistry) generateCode() string {
	code := make([]byte, r.codeLen)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}
