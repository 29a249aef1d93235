package coordinator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"gomoku-server/internal/game"
	"gomoku-server/internal/invite"
	"gomoku-server/internal/room"
	"gomoku-server/internal/types"
)

// Coordinator owns all session state: rooms, players, pending invitations and
// active games. Every handler runs to completion on the single loop
// goroutine, so none of the owned components need locking; events from one
// connection are processed in arrival order.
type Coordinator struct {
	inbox   chan Msg
	clients map[string]chan types.ServerMessage

	rooms   *room.Registry
	players *room.Directory
	invites *invite.Broker
	games   *game.Manager

	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)

	rooms := room.NewRegistry()
	c := &Coordinator{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan types.ServerMessage),
		rooms:   rooms,
		players: room.NewDirectory(rooms.Paths()...),
		invites: invite.NewBroker(rand.New(rand.NewSource(time.Now().UnixNano()))),
		games:   game.NewManager(),
		log:     logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	go c.loop()
	return c
}

// Inbox exposes the message channel to the transport layer and tests.
func (c *Coordinator) Inbox() chan<- Msg { return c.inbox }

func (c *Coordinator) loop() {
	for {
		select {
		case <-c.ctx.Done():
			c.shutdown()
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case Connect:
				c.handleConnect(msg)
			case Disconnect:
				c.handleDisconnect(msg.ConnID)
			case JoinRoom:
				c.handleJoinRoom(msg.ConnID, msg.RoomPath)
			case LeaveRoom:
				c.handleLeaveRoom(msg.ConnID, msg.RoomPath)
			case SendInvite:
				c.handleSendInvite(msg.ConnID, msg.InviteeID)
			case AcceptInvite:
				c.handleAcceptInvite(msg.ConnID)
			case DeclineInvite:
				c.handleDeclineInvite(msg.ConnID, msg.InviterID)
			case UpdateGrid:
				c.handleUpdateGrid(msg)
			case RoomMessage:
				c.handleRoomMessage(msg.ConnID, msg.Text)
			case GameMessage:
				c.handleGameMessage(msg.ConnID, msg.Text)
			case LeaveGame:
				c.abortGame(msg.ConnID)
			case GetRooms:
				msg.Reply <- c.rooms.Snapshot()
			case GetView:
				msg.Reply <- View{
					NumClients:     len(c.clients),
					Rooms:          c.rooms.Snapshot(),
					PendingInvites: c.invites.Len(),
					ActiveGames:    c.games.Len(),
				}
			case Shutdown:
				c.shutdown()
				return
			}
		}
	}
}

func (c *Coordinator) handleConnect(msg Connect) {
	c.clients[msg.ConnID] = msg.Outbox
	c.sendTo(msg.ConnID, types.EvtSocketConnected, msg.ConnID)
	c.sendTo(msg.ConnID, types.EvtRoomInformation, c.rooms.Snapshot())
	c.log.Info("client connected", zap.String("conn", msg.ConnID))
}

func (c *Coordinator) handleDisconnect(connID string) {
	if out, ok := c.clients[connID]; ok {
		close(out)
		delete(c.clients, connID)
	}

	c.invites.DropFor(connID)
	c.abortGame(connID)

	if path, ok := c.players.RoomOf(connID); ok {
		c.players.Remove(path, connID)
		c.leaveCounted(path)
		c.broadcastAll(types.EvtRoomInformation, c.rooms.Snapshot())
		c.broadcastRoom(path, types.EvtUpdatePlayers, c.players.Players(path))
	}
	c.log.Info("client disconnected", zap.String("conn", connID))
}

func (c *Coordinator) handleJoinRoom(connID, path string) {
	if c.players.Contains(path, connID) {
		return
	}
	// Claim a seat in the target room before touching anything else: a
	// refused join must leave every other piece of state untouched.
	switch err := c.rooms.Join(path); err {
	case nil:
	case room.ErrRoomFull:
		c.sendTo(connID, types.EvtRoomFull,
			fmt.Sprintf("room %s is full, try again later", path))
		return
	default:
		c.log.Debug("join for unknown room", zap.String("room", path))
		return
	}
	// A connection sits in at most one room; switching rooms implies leaving
	// the previous one, forfeiting any game played there.
	if prev, ok := c.players.RoomOf(connID); ok {
		c.handleLeaveRoom(connID, prev)
	}

	c.players.Add(room.Player{ID: connID, Pseudo: pseudo(connID), CurrentRoom: path})
	c.broadcastAll(types.EvtRoomInformation, c.rooms.Snapshot())
	c.broadcastRoom(path, types.EvtUserJoined, c.players.Players(path))
	if history := c.rooms.Messages(path); len(history) > 0 {
		c.sendTo(connID, types.EvtReceivedMessageInRoom, history)
	}
	c.log.Info("client joined room", zap.String("conn", connID), zap.String("room", path))
}

func (c *Coordinator) handleLeaveRoom(connID, path string) {
	if !c.players.Contains(path, connID) {
		return
	}

	// Leaving the lobby also walks out of any game and drops invitations.
	c.invites.DropFor(connID)
	c.abortGame(connID)

	c.leaveCounted(path)
	c.players.Remove(path, connID)
	c.broadcastAll(types.EvtRoomInformation, c.rooms.Snapshot())
	c.broadcastRoom(path, types.EvtUserLeft, c.players.Players(path))
	c.log.Info("client left room", zap.String("conn", connID), zap.String("room", path))
}

func (c *Coordinator) handleSendInvite(connID, inviteeID string) {
	roomPath, ok := c.players.RoomOf(connID)
	if !ok {
		return
	}
	if inviteeID == connID {
		c.sendTo(connID, types.EvtDeclinedInvite, connID)
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "you cannot invite yourself"})
		return
	}
	if inviteeRoom, ok := c.players.RoomOf(inviteeID); !ok || inviteeRoom != roomPath {
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "player is not in your room"})
		return
	}
	// A connection plays at most one game at a time; invitations involving a
	// busy participant are refused outright.
	if _, ok := c.games.FindByPlayer(connID); ok {
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "you are already in a game"})
		return
	}
	if _, ok := c.games.FindByPlayer(inviteeID); ok {
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "player is already in a game"})
		return
	}

	p := c.invites.Offer(connID, inviteeID, roomPath)
	c.sendTo(connID, types.EvtPlayerSymbol, game.SymbolPlayer1)
	c.sendTo(inviteeID, types.EvtReceivedInvite, connID)
	c.log.Info("invitation sent",
		zap.String("inviter", connID),
		zap.String("invitee", inviteeID),
		zap.Int("game", p.GameID))
}

func (c *Coordinator) handleAcceptInvite(connID string) {
	if _, ok := c.games.FindByPlayer(connID); ok {
		// The invitation stays pending; it can be accepted once this
		// game is over.
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "you are already in a game"})
		return
	}
	p, err := c.invites.Accept(connID)
	if err != nil {
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "no pending invitation"})
		return
	}
	if _, ok := c.games.FindByPlayer(p.InvitedBy); ok {
		// The offer went stale while the inviter started another game.
		c.sendTo(connID, types.EvtError, types.ErrorPayload{Message: "player is already in a game"})
		return
	}

	g := c.games.Create(p.GameID, p.RoomPath, p.Player1ID, p.Player2ID, p.CurrentID, p.NextID)
	c.sendTo(connID, types.EvtPlayerSymbol, game.SymbolPlayer2)
	for _, id := range []string{g.Player1ID, g.Player2ID} {
		c.sendTo(id, types.EvtGameInitialization, types.GameInit{
			PlayerID:        id,
			Grid:            g.Grid,
			CurrentPlayerID: g.CurrentPlayerID,
			GameID:          g.ID,
		})
	}
	c.broadcastRoom(p.RoomPath, types.EvtGameList, c.games.Snapshot(p.RoomPath))
	c.log.Info("game started",
		zap.Int("game", g.ID),
		zap.String("player1", g.Player1ID),
		zap.String("player2", g.Player2ID),
		zap.String("first", g.CurrentPlayerID))
}

func (c *Coordinator) handleDeclineInvite(connID, inviterID string) {
	if p, ok := c.invites.Decline(connID); ok {
		inviterID = p.InvitedBy
	}
	if inviterID != "" {
		c.sendTo(inviterID, types.EvtDeclinedInvite, connID)
	}
}

func (c *Coordinator) handleUpdateGrid(msg UpdateGrid) {
	if msg.SubmitterID != "" && msg.SubmitterID != msg.ConnID {
		c.log.Debug("grid submitted for another connection", zap.String("conn", msg.ConnID))
		return
	}

	res, err := c.games.ApplyMove(msg.ConnID, msg.Grid)
	if err != nil {
		// Out-of-turn and malformed submissions are dropped silently.
		c.log.Debug("move rejected", zap.String("conn", msg.ConnID), zap.Error(err))
		return
	}

	if !res.Won {
		c.broadcastGame(res.Game, types.EvtGridUpdated, types.GridUpdate{
			Grid:            res.Grid,
			CurrentPlayerID: res.Game.CurrentPlayerID,
		})
		return
	}

	c.broadcastGame(res.Game, types.EvtGameOver, types.GameOver{
		Grid:         res.Grid,
		SubmittedBy:  msg.ConnID,
		WinnerID:     res.WinnerID,
		WinningCells: res.Cells,
	})
	c.broadcastRoom(res.Game.RoomPath, types.EvtGameList, c.games.Snapshot(res.Game.RoomPath))
	c.broadcastAll(types.EvtRoomInformation, c.rooms.Snapshot())
	c.log.Info("game won", zap.Int("game", res.Game.ID), zap.String("winner", res.WinnerID))
}

func (c *Coordinator) handleRoomMessage(connID, text string) {
	path, ok := c.players.RoomOf(connID)
	if !ok {
		return
	}
	history, err := c.rooms.AppendMessage(path, room.Message{From: connID, Text: text})
	if err != nil {
		return
	}
	c.broadcastRoom(path, types.EvtReceivedMessageInRoom, history)
}

func (c *Coordinator) handleGameMessage(connID, text string) {
	g, err := c.games.PostMessage(connID, text)
	if err != nil {
		return
	}
	c.broadcastGame(g, types.EvtReceivedMessageInGame, g.Messages())
}

// abortGame forfeits the leaver's active game, if any, to the opponent. The
// teardown matches a normal finish: gameOver to the participants, then the
// room's game list and the room information refresh.
func (c *Coordinator) abortGame(leaverID string) {
	res, ok := c.games.Abort(leaverID)
	if !ok {
		return
	}
	c.broadcastGame(res.Game, types.EvtGameOver, types.GameOver{
		Grid:         res.Grid,
		SubmittedBy:  leaverID,
		WinnerID:     res.WinnerID,
		WinningCells: res.Cells,
	})
	c.broadcastRoom(res.Game.RoomPath, types.EvtGameList, c.games.Snapshot(res.Game.RoomPath))
	c.broadcastAll(types.EvtRoomInformation, c.rooms.Snapshot())
	c.log.Info("game forfeited",
		zap.Int("game", res.Game.ID),
		zap.String("leaver", leaverID),
		zap.String("winner", res.WinnerID))
}

// leaveCounted decrements a room's occupancy; a clamped decrement means the
// counters drifted and is logged rather than propagated.
func (c *Coordinator) leaveCounted(path string) {
	clamped, err := c.rooms.Leave(path)
	if err != nil {
		return
	}
	if clamped {
		c.log.Warn("occupancy already zero on leave", zap.String("room", path))
	}
}

func (c *Coordinator) sendTo(connID, event string, data any) {
	out, ok := c.clients[connID]
	if !ok {
		return
	}
	select {
	case out <- types.ServerMessage{Event: event, Data: data}:
	default:
		// Client is slow/full - drop them. The transport's writer closes
		// the connection once its outbox drains, which unblocks the reader
		// and sends the Disconnect for the rest of the cleanup.
		close(out)
		delete(c.clients, connID)
	}
}

func (c *Coordinator) broadcastAll(event string, data any) {
	for connID := range c.clients {
		c.sendTo(connID, event, data)
	}
}

func (c *Coordinator) broadcastRoom(path, event string, data any) {
	for _, p := range c.players.Players(path) {
		c.sendTo(p.ID, event, data)
	}
}

func (c *Coordinator) broadcastGame(g *game.Game, event string, data any) {
	c.sendTo(g.Player1ID, event, data)
	c.sendTo(g.Player2ID, event, data)
}

func (c *Coordinator) shutdown() {
	for id, out := range c.clients {
		close(out)
		delete(c.clients, id)
	}
	c.cancel()
}

func pseudo(connID string) string {
	if len(connID) > 6 {
		connID = connID[:6]
	}
	return "player-" + connID
}
