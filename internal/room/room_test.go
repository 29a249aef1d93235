package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_JoinLeaveOccupancy(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Join("1"))
	require.NoError(t, r.Join("1"))
	assert.Equal(t, 2, r.Snapshot()[0].ActiveConnections)

	clamped, err := r.Leave("1")
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, 1, r.Snapshot()[0].ActiveConnections)
}

func TestRegistry_UnknownRoom(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Join("9"), ErrRoomNotFound)
	_, err := r.Leave("9")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = r.AppendMessage("9", Message{From: "a", Text: "hi"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistry_JoinRefusedAtCapacity(t *testing.T) {
	r := NewRegistry()
	capacity := r.Snapshot()[1].Capacity

	for i := 0; i < capacity; i++ {
		require.NoError(t, r.Join("2"))
	}
	assert.ErrorIs(t, r.Join("2"), ErrRoomFull)
	assert.Equal(t, capacity, r.Snapshot()[1].ActiveConnections,
		"refused join must not mutate occupancy")
}

func TestRegistry_LeaveClampsAtZero(t *testing.T) {
	r := NewRegistry()

	clamped, err := r.Leave("3")
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, 0, r.Snapshot()[2].ActiveConnections)
}

func TestRegistry_ChatHistoryCapped(t *testing.T) {
	r := NewRegistry()

	for i := 0; i < ChatLimit+1; i++ {
		_, err := r.AppendMessage("1", Message{From: "a", Text: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
	}

	history := r.Messages("1")
	require.Len(t, history, ChatLimit)
	assert.Equal(t, "msg 1", history[0].Text, "oldest entry must be evicted first")
	assert.Equal(t, fmt.Sprintf("msg %d", ChatLimit), history[ChatLimit-1].Text)
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	snap := r.Snapshot()
	snap[0].ActiveConnections = 42

	assert.Equal(t, 0, r.Snapshot()[0].ActiveConnections)
}

func TestDirectory_AddRemoveLookup(t *testing.T) {
	d := NewDirectory("1", "2", "3")
	d.Add(Player{ID: "abc", Pseudo: "player-abc", CurrentRoom: "2"})

	assert.True(t, d.Contains("2", "abc"))
	assert.False(t, d.Contains("1", "abc"))

	path, ok := d.RoomOf("abc")
	require.True(t, ok)
	assert.Equal(t, "2", path)

	d.Remove("2", "abc")
	assert.False(t, d.Contains("2", "abc"))
	_, ok = d.RoomOf("abc")
	assert.False(t, ok)
}

func TestDirectory_PlayersPerRoom(t *testing.T) {
	d := NewDirectory("1", "2")
	d.Add(Player{ID: "a", CurrentRoom: "1"})
	d.Add(Player{ID: "b", CurrentRoom: "1"})
	d.Add(Player{ID: "c", CurrentRoom: "2"})

	assert.Len(t, d.Players("1"), 2)
	assert.Len(t, d.Players("2"), 1)

	d.Remove("1", "a")
	require.Len(t, d.Players("1"), 1)
	assert.Equal(t, "b", d.Players("1")[0].ID)
}
