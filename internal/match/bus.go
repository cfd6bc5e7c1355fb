package match

import "encoding/json"

// 이벤트 타입 - WebSocket 메시지의 type 필드 값
const (
	EventPlayerConnected    = "player_connected"
	EventPlayerDisconnected = "player_disconnected"
	EventMatchReady         = "match_ready"
	EventMatchStarted       = "match_started"
	EventAnswerSubmitted    = "answer_submitted"
	EventMatchCompleted     = "match_completed"
)

// Event 매치별 팬아웃 이벤트
// Exclude에 지정된 플레이어에게는 전달하지 않음 (자신의 제출 에코 방지)
type Event struct {
	Type    string
	Exclude string
	Data    map[string]interface{}
}

// MarshalJSON type 필드와 데이터 필드를 평탄한 객체 하나로 직렬화
func (e Event) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		flat[k] = v
	}
	flat["type"] = e.Type
	return json.Marshal(flat)
}

// Notifier 매치 이벤트 팬아웃 계약
// Publish는 best-effort이며 호출자의 임계 구역을 절대 블로킹하지 않아야 함
// 상태의 진실 공급원은 언제나 Store - 이벤트는 힌트일 뿐
type Notifier interface {
	Publish(matchID string, event Event)
}

// NopNotifier 이벤트 구독자가 없는 환경(테스트 등)용
type NopNotifier struct{}

func (NopNotifier) Publish(string, Event) {}
