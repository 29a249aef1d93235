package invite

import (
	"errors"
	"math/rand"
)

var ErrNoInvitation = errors.New("no pending invitation")

// Pending is a one-to-one game offer, fully pre-assigned at offer time:
// player 1 is the inviter, player 2 the invitee, and a coin flip already
// decided who takes the first turn.
type Pending struct {
	GameID    int
	InvitedBy string
	RoomPath  string
	Player1ID string
	Player2ID string
	CurrentID string
	NextID    string
}

// Broker holds at most one pending invitation per invitee. A new offer to the
// same invitee overwrites the previous one, last writer wins.
type Broker struct {
	pending map[string]Pending
	rng     *rand.Rand
}

func NewBroker(rng *rand.Rand) *Broker {
	return &Broker{pending: make(map[string]Pending), rng: rng}
}

// Offer records an invitation keyed by invitee and returns it.
func (b *Broker) Offer(inviterID, inviteeID, roomPath string) Pending {
	p := Pending{
		GameID:    b.newGameID(),
		InvitedBy: inviterID,
		RoomPath:  roomPath,
		Player1ID: inviterID,
		Player2ID: inviteeID,
	}
	p.CurrentID, p.NextID = inviterID, inviteeID
	if b.rng.Intn(2) == 1 {
		p.CurrentID, p.NextID = inviteeID, inviterID
	}
	b.pending[inviteeID] = p
	return p
}

// Accept consumes the invitee's pending invitation. Accepting when none
// exists (already consumed, declined, or never sent) is reported as
// ErrNoInvitation, never a crash.
func (b *Broker) Accept(inviteeID string) (Pending, error) {
	p, ok := b.pending[inviteeID]
	if !ok {
		return Pending{}, ErrNoInvitation
	}
	delete(b.pending, inviteeID)
	return p, nil
}

// Decline drops the invitee's pending invitation, returning it so the caller
// can notify the inviter.
func (b *Broker) Decline(inviteeID string) (Pending, bool) {
	p, ok := b.pending[inviteeID]
	if ok {
		delete(b.pending, inviteeID)
	}
	return p, ok
}

// DropFor removes every invitation involving the connection id, as invitee or
// inviter. Used on disconnect.
func (b *Broker) DropFor(connID string) {
	delete(b.pending, connID)
	for invitee, p := range b.pending {
		if p.InvitedBy == connID {
			delete(b.pending, invitee)
		}
	}
}

// Len reports the number of pending invitations.
func (b *Broker) Len() int { return len(b.pending) }

// Game ids are 6-digit numbers, matching what clients display.
func (b *Broker) newGameID() int {
	return 100000 + b.rng.Intn(900000)
}
