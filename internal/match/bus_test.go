package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalJSON(t *testing.T) {
	ev := Event{
		Type:    EventMatchCompleted,
		Exclude: "p2",
		Data: map[string]interface{}{
			"match_id":  "m1",
			"winner_id": "p1",
		},
	}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))

	// type은 데이터와 같은 레벨로 평탄화, Exclude는 라우팅 전용이라 미포함
	assert.Equal(t, EventMatchCompleted, flat["type"])
	assert.Equal(t, "m1", flat["match_id"])
	assert.Equal(t, "p1", flat["winner_id"])
	assert.NotContains(t, flat, "Exclude")
	assert.NotContains(t, flat, "exclude")
}

func TestEvent_MarshalJSONEmptyData(t *testing.T) {
	ev := Event{Type: EventMatchReady}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"match_ready"}`, string(raw))
}
