package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRegistry_AllocateGenerated(t *testing.T) {
	reg := NewRoomRegistry(6)

	code, err := reg.Allocate("", "match-1")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	matchID, err := reg.Resolve(code)
	require.NoError(t, err)
	assert.Equal(t, "match-1", matchID)
}

func TestRoomRegistry_AllocateRequested(t *testing.T) {
	reg := NewRoomRegistry(6)

	code, err := reg.Allocate("GAME42", "match-1")
	require.NoError(t, err)
	assert.Equal(t, "GAME42", code)
}

func TestRoomRegistry_AllocateConflict(t *testing.T) {
	reg := NewRoomRegistry(6)

	_, err := reg.Allocate("GAME42", "match-1")
	require.NoError(t, err)

	_, err = reg.Allocate("GAME42", "match-2")
	assert.ErrorIs(t, err, ErrCodeConflict)
}

func TestRoomRegistry_ResolveUnknown(t *testing.T) {
	reg := NewRoomRegistry(6)

	_, err := reg.Resolve("NOPE")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomRegistry_ReleaseAllowsReuse(t *testing.T) {
	reg := NewRoomRegistry(6)

	_, err := reg.Allocate("GAME42", "match-1")
	require.NoError(t, err)

	reg.Release("GAME42")

	_, err = reg.Resolve("GAME42")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.Allocate("GAME42", "match-2")
	require.NoError(t, err)

	matchID, err := reg.Resolve("GAME42")
	require.NoError(t, err)
	assert.Equal(t, "match-2", matchID)
}

func TestRoomRegistry_ReleaseIdempotent(t *testing.T) {
	reg := NewRoomRegistry(6)

	reg.Release("GAME42")
	reg.Release("")
}

func TestPendingQueue_FIFO(t *testing.T) {
	q := newPendingQueue()
	q.Push("m1", 1, "alice")
	q.Push("m2", 1, "bob")

	matchID, ok := q.Pop(1, "carol")
	require.True(t, ok)
	assert.Equal(t, "m1", matchID)

	matchID, ok = q.Pop(1, "carol")
	require.True(t, ok)
	assert.Equal(t, "m2", matchID)

	_, ok = q.Pop(1, "carol")
	assert.False(t, ok)
}

func TestPendingQueue_SkipsOwnMatch(t *testing.T) {
	q := newPendingQueue()
	q.Push("m1", 1, "alice")
	q.Push("m2", 1, "bob")

	// alice는 자기 매치를 건너뛰고 bob의 매치와 페어링
	matchID, ok := q.Pop(1, "alice")
	require.True(t, ok)
	assert.Equal(t, "m2", matchID)
}

func TestPendingQueue_PuzzleFilter(t *testing.T) {
	q := newPendingQueue()
	q.Push("m1", 1, "alice")
	q.Push("m2", 2, "bob")

	matchID, ok := q.Pop(2, "carol")
	require.True(t, ok)
	assert.Equal(t, "m2", matchID)

	// 0은 퍼즐 무관
	matchID, ok = q.Pop(0, "carol")
	require.True(t, ok)
	assert.Equal(t, "m1", matchID)
}

func TestPendingQueue_Remove(t *testing.T) {
	q := newPendingQueue()
	q.Push("m1", 1, "alice")
	q.Remove("m1")
	q.Remove("m1") // 멱등

	_, ok := q.Pop(0, "bob")
	assert.False(t, ok)
}
