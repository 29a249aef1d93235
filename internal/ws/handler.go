package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gomoku-server/internal/coordinator"
	"gomoku-server/internal/types"
)

// Handler upgrades the request to a websocket and bridges it to the
// coordinator: one Connect on arrival, one Disconnect when the socket dies,
// inbound JSON events decoded into coordinator messages in between.
func Handler(c *coordinator.Coordinator, origins []string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			logger.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		out := make(chan types.ServerMessage, 16)

		c.Inbox() <- coordinator.Connect{ConnID: connID, Outbox: out}
		defer func() { c.Inbox() <- coordinator.Disconnect{ConnID: connID} }()

		// Writer goroutine; exits when the coordinator closes the outbox.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					logger.Warn("marshal outbound event", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			// Outbox closed: the coordinator dropped this client (too slow)
			// or is shutting down. Closing the connection unblocks the
			// reader so the deferred Disconnect runs.
			_ = conn.Close(websocket.StatusPolicyViolation, "outbox closed")
		}()

		// Reader loop. No idle deadline: a silent client keeps its state
		// until the connection actually drops.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			msg, ok := toCoordinatorMsg(connID, cm)
			if !ok {
				writeError(r.Context(), conn, "unknown event")
				continue
			}
			c.Inbox() <- msg
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, message string) {
	payload, _ := json.Marshal(types.ServerMessage{
		Event: types.EvtError,
		Data:  types.ErrorPayload{Message: message},
	})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toCoordinatorMsg(connID string, m types.ClientMessage) (coordinator.Msg, bool) {
	switch m.Event {
	case types.EvtJoinRoom:
		return coordinator.JoinRoom{ConnID: connID, RoomPath: m.Room}, true
	case types.EvtLeaveRoom:
		return coordinator.LeaveRoom{ConnID: connID, RoomPath: m.Room}, true
	case types.EvtSendInvite:
		return coordinator.SendInvite{ConnID: connID, InviteeID: m.PlayerID}, true
	case types.EvtAcceptInvite:
		return coordinator.AcceptInvite{ConnID: connID}, true
	case types.EvtDeclineInvite:
		return coordinator.DeclineInvite{ConnID: connID, InviterID: m.PlayerID}, true
	case types.EvtSetUpdateGrid:
		return coordinator.UpdateGrid{ConnID: connID, SubmitterID: m.PlayerID, Grid: m.Grid}, true
	case types.EvtSentMessageInRoom:
		return coordinator.RoomMessage{ConnID: connID, Text: m.Text}, true
	case types.EvtSentMessageInGame:
		return coordinator.GameMessage{ConnID: connID, Text: m.Text}, true
	case types.EvtLeaveGameRoom:
		return coordinator.LeaveGame{ConnID: connID}, true
	default:
		return nil, false
	}
}
