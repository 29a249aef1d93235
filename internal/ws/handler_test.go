package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gomoku-server/internal/coordinator"
	"gomoku-server/internal/grid"
	"gomoku-server/internal/types"
)

func TestToCoordinatorMsg(t *testing.T) {
	cases := []struct {
		name string
		in   types.ClientMessage
		want coordinator.Msg
	}{
		{
			name: "joinRoom",
			in:   types.ClientMessage{Event: types.EvtJoinRoom, Room: "1"},
			want: coordinator.JoinRoom{ConnID: "c1", RoomPath: "1"},
		},
		{
			name: "leaveRoom",
			in:   types.ClientMessage{Event: types.EvtLeaveRoom, Room: "2"},
			want: coordinator.LeaveRoom{ConnID: "c1", RoomPath: "2"},
		},
		{
			name: "sendInvite carries the invitee",
			in:   types.ClientMessage{Event: types.EvtSendInvite, PlayerID: "c2"},
			want: coordinator.SendInvite{ConnID: "c1", InviteeID: "c2"},
		},
		{
			name: "acceptInvite",
			in:   types.ClientMessage{Event: types.EvtAcceptInvite},
			want: coordinator.AcceptInvite{ConnID: "c1"},
		},
		{
			name: "declineInvite carries the inviter",
			in:   types.ClientMessage{Event: types.EvtDeclineInvite, PlayerID: "c2"},
			want: coordinator.DeclineInvite{ConnID: "c1", InviterID: "c2"},
		},
		{
			name: "sentMessageInRoom",
			in:   types.ClientMessage{Event: types.EvtSentMessageInRoom, Text: "hi"},
			want: coordinator.RoomMessage{ConnID: "c1", Text: "hi"},
		},
		{
			name: "sentMessageInGame",
			in:   types.ClientMessage{Event: types.EvtSentMessageInGame, Text: "gg"},
			want: coordinator.GameMessage{ConnID: "c1", Text: "gg"},
		},
		{
			name: "leaveGameRoom",
			in:   types.ClientMessage{Event: types.EvtLeaveGameRoom},
			want: coordinator.LeaveGame{ConnID: "c1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toCoordinatorMsg("c1", tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToCoordinatorMsg_Grid(t *testing.T) {
	g := grid.New()
	g[3][4] = grid.MarkX

	got, ok := toCoordinatorMsg("c1", types.ClientMessage{
		Event:    types.EvtSetUpdateGrid,
		PlayerID: "c1",
		Grid:     g,
	})
	require.True(t, ok)

	msg, isUpdate := got.(coordinator.UpdateGrid)
	require.True(t, isUpdate)
	assert.Equal(t, "c1", msg.ConnID)
	assert.Equal(t, "c1", msg.SubmitterID)
	assert.Equal(t, grid.MarkX, msg.Grid[3][4])
}

func TestToCoordinatorMsg_UnknownEvent(t *testing.T) {
	_, ok := toCoordinatorMsg("c1", types.ClientMessage{Event: "shrug"})
	assert.False(t, ok)
}

// When the coordinator closes a client's outbox the writer must close the
// websocket too, so the reader unblocks instead of hanging on a dead peer.
func TestHandler_ClosedOutboxClosesConnection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := coordinator.New(ctx, zaptest.NewLogger(t))
	srv := httptest.NewServer(Handler(c, nil, zaptest.NewLogger(t)))
	defer srv.Close()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	// Handshake proves the bridge is up before we tear it down.
	_, _, err = conn.Read(ctx)
	require.NoError(t, err)

	c.Inbox() <- coordinator.Shutdown{}

	for {
		if _, _, err = conn.Read(ctx); err != nil {
			break
		}
	}
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}
