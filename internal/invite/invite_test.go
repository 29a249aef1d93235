package invite

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker() *Broker {
	return NewBroker(rand.New(rand.NewSource(1)))
}

func TestOffer_PreAssignsEverything(t *testing.T) {
	b := newTestBroker()
	p := b.Offer("alice", "bob", "1")

	assert.Equal(t, "alice", p.InvitedBy)
	assert.Equal(t, "1", p.RoomPath)
	assert.Equal(t, "alice", p.Player1ID)
	assert.Equal(t, "bob", p.Player2ID)
	assert.GreaterOrEqual(t, p.GameID, 100000)
	assert.LessOrEqual(t, p.GameID, 999999)

	// Coin flip picks the starter, the other participant goes second.
	assert.Contains(t, []string{"alice", "bob"}, p.CurrentID)
	assert.Contains(t, []string{"alice", "bob"}, p.NextID)
	assert.NotEqual(t, p.CurrentID, p.NextID)
}

func TestOffer_CoinFlipUsesBothSides(t *testing.T) {
	b := newTestBroker()
	starters := map[string]bool{}
	for i := 0; i < 50; i++ {
		p := b.Offer("alice", "bob", "1")
		starters[p.CurrentID] = true
	}
	assert.Len(t, starters, 2, "both participants should start eventually")
}

func TestOffer_LastWriterWinsPerInvitee(t *testing.T) {
	b := newTestBroker()
	b.Offer("alice", "bob", "1")
	second := b.Offer("carol", "bob", "2")
	assert.Equal(t, 1, b.Len())

	p, err := b.Accept("bob")
	require.NoError(t, err)
	assert.Equal(t, second.GameID, p.GameID)
	assert.Equal(t, "carol", p.InvitedBy)
}

func TestAccept_ConsumesInvitation(t *testing.T) {
	b := newTestBroker()
	offered := b.Offer("alice", "bob", "1")

	p, err := b.Accept("bob")
	require.NoError(t, err)
	assert.Equal(t, offered, p)

	_, err = b.Accept("bob")
	assert.ErrorIs(t, err, ErrNoInvitation, "double accept must fail cleanly")
}

func TestAccept_MissingInvitation(t *testing.T) {
	b := newTestBroker()
	_, err := b.Accept("nobody")
	assert.ErrorIs(t, err, ErrNoInvitation)
}

func TestDecline_DropsInvitation(t *testing.T) {
	b := newTestBroker()
	b.Offer("alice", "bob", "1")

	p, ok := b.Decline("bob")
	require.True(t, ok)
	assert.Equal(t, "alice", p.InvitedBy)

	_, ok = b.Decline("bob")
	assert.False(t, ok)
}

func TestDropFor_RemovesAsInviteeAndInviter(t *testing.T) {
	b := newTestBroker()
	b.Offer("alice", "bob", "1")
	b.Offer("carol", "alice", "1")
	require.Equal(t, 2, b.Len())

	b.DropFor("alice")
	assert.Equal(t, 0, b.Len(), "alice's own invitation and the one she sent must both go")
}
