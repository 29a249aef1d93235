package coordinator

import (
	"gomoku-server/internal/grid"
	"gomoku-server/internal/room"
	"gomoku-server/internal/types"
)

type Msg interface{ isMsg() }

// Connect registers a client and its outbox channel.
type Connect struct {
	ConnID string
	Outbox chan types.ServerMessage
}

// Disconnect runs full cleanup for a connection: room membership, pending
// invitations, and any active game (forfeited to the opponent).
type Disconnect struct{ ConnID string }

type JoinRoom struct {
	ConnID   string
	RoomPath string
}

type LeaveRoom struct {
	ConnID   string
	RoomPath string
}

// SendInvite offers a game to another connection in the same room.
type SendInvite struct {
	ConnID    string
	InviteeID string
}

// AcceptInvite consumes the sender's own pending invitation.
type AcceptInvite struct{ ConnID string }

// DeclineInvite drops the sender's pending invitation and notifies the
// inviter named in the payload.
type DeclineInvite struct {
	ConnID    string
	InviterID string
}

// UpdateGrid submits a full grid snapshot as the sender's move. SubmitterID
// is the client-claimed id from the payload; it must match ConnID.
type UpdateGrid struct {
	ConnID      string
	SubmitterID string
	Grid        grid.Grid
}

type RoomMessage struct {
	ConnID string
	Text   string
}

type GameMessage struct {
	ConnID string
	Text   string
}

// LeaveGame aborts the sender's active game as a loss, without touching room
// membership.
type LeaveGame struct{ ConnID string }

type Shutdown struct{}

// GetView reflects internal counters without data races. Test-only.
type GetView struct{ Reply chan View }

// GetRooms replies with a snapshot of the room list.
type GetRooms struct{ Reply chan []room.Room }

func (Connect) isMsg()       {}
func (Disconnect) isMsg()    {}
func (JoinRoom) isMsg()      {}
func (LeaveRoom) isMsg()     {}
func (SendInvite) isMsg()    {}
func (AcceptInvite) isMsg()  {}
func (DeclineInvite) isMsg() {}
func (UpdateGrid) isMsg()    {}
func (RoomMessage) isMsg()   {}
func (GameMessage) isMsg()   {}
func (LeaveGame) isMsg()     {}
func (Shutdown) isMsg()      {}
func (GetView) isMsg()       {}
func (GetRooms) isMsg()      {}

// View is a race-free copy of the coordinator's bookkeeping for tests.
type View struct {
	NumClients     int
	Rooms          []room.Room
	PendingInvites int
	ActiveGames    int
}
