package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_HasPlayer(t *testing.T) {
	p2 := "bob"
	m := Match{Player1ID: "alice", Player2ID: &p2}

	assert.True(t, m.HasPlayer("alice"))
	assert.True(t, m.HasPlayer("bob"))
	assert.False(t, m.HasPlayer("carol"))

	waiting := Match{Player1ID: "alice"}
	assert.False(t, waiting.HasPlayer("bob"))
}

func TestMatch_Opponent(t *testing.T) {
	p2 := "bob"
	m := Match{Player1ID: "alice", Player2ID: &p2}

	assert.Equal(t, "bob", m.Opponent("alice"))
	assert.Equal(t, "alice", m.Opponent("bob"))

	waiting := Match{Player1ID: "alice"}
	assert.Equal(t, "", waiting.Opponent("alice"))
}

func TestMatchStatus_Terminal(t *testing.T) {
	assert.False(t, MatchStatusPending.Terminal())
	assert.False(t, MatchStatusReady.Terminal())
	assert.False(t, MatchStatusActive.Terminal())
	assert.True(t, MatchStatusCompleted.Terminal())
	assert.True(t, MatchStatusAbandoned.Terminal())
}

func TestPlayerInput_ExpectedAnswerHidden(t *testing.T) {
	input := PlayerInput{
		PlayerID:       "alice",
		InputData:      "1 2 3",
		ExpectedAnswer: "6",
	}

	raw, err := json.Marshal(input)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))

	// 정답은 어떤 클라이언트 페이로드에도 포함되면 안 됨
	assert.NotContains(t, string(raw), "6")
	assert.NotContains(t, out, "expectedAnswer")
	assert.Equal(t, "1 2 3", out["inputData"])
}

func TestPuzzle_AnswerFieldsHidden(t *testing.T) {
	p := Puzzle{
		ID:            1,
		Title:         "Crystal Sum",
		GeneratorType: "crystal_sum",
		GeneratorParams: map[string]int{
			"range": 100,
		},
		CaseSensitive: true,
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "crystal_sum")
	assert.NotContains(t, string(raw), "generatorParams")
	assert.NotContains(t, string(raw), "caseSensitive")
}

func TestMatchStats_WinRate(t *testing.T) {
	stats := MatchStats{TotalMatches: 4, MatchesWon: 3, MatchesLost: 1}
	assert.InDelta(t, 75.0, stats.WinRate(), 0.001)

	empty := MatchStats{}
	assert.Equal(t, 0.0, empty.WinRate())
}
