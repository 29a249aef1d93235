package types

import "gomoku-server/internal/grid"

// Inbound event names.
const (
	EvtJoinRoom          = "joinRoom"
	EvtLeaveRoom         = "leaveRoom"
	EvtSendInvite        = "sendInvite"
	EvtAcceptInvite      = "acceptInvite"
	EvtDeclineInvite     = "declineInvite"
	EvtSetUpdateGrid     = "setUpdateGrid"
	EvtSentMessageInRoom = "sentMessageInRoom"
	EvtSentMessageInGame = "sentMessageInGame"
	EvtLeaveGameRoom     = "leaveGameRoom"
)

// Outbound event names.
const (
	EvtSocketConnected       = "socketConnected"
	EvtRoomInformation       = "roomInformation"
	EvtUserJoined            = "userJoined"
	EvtUserLeft              = "userLeft"
	EvtUpdatePlayers         = "updatePlayers"
	EvtReceivedInvite        = "receivedInvite"
	EvtDeclinedInvite        = "declinedInvite"
	EvtPlayerSymbol          = "playerSymbol"
	EvtGameInitialization    = "gameInitialization"
	EvtGameList              = "gameList"
	EvtGridUpdated           = "gridUpdated"
	EvtGameOver              = "gameOver"
	EvtRoomFull              = "roomFull"
	EvtReceivedMessageInRoom = "receivedMessageInRoom"
	EvtReceivedMessageInGame = "receivedMessageInGame"
	EvtError                 = "error"
)

// ClientMessage is the single inbound wire shape; which fields matter depends
// on the event. PlayerID carries the invitee id for sendInvite, the inviter
// id for declineInvite and the submitter id for setUpdateGrid.
type ClientMessage struct {
	Event    string    `json:"event"`
	Room     string    `json:"room,omitempty"`
	PlayerID string    `json:"playerId,omitempty"`
	Grid     grid.Grid `json:"grid,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// ServerMessage is the outbound envelope.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Outbound payloads.

type GameInit struct {
	PlayerID        string    `json:"playerId"`
	Grid            grid.Grid `json:"grid"`
	CurrentPlayerID string    `json:"currentPlayerId"`
	GameID          int       `json:"gameId"`
}

type GridUpdate struct {
	Grid            grid.Grid `json:"grid"`
	CurrentPlayerID string    `json:"currentPlayerId"`
}

type GameOver struct {
	Grid         grid.Grid `json:"grid"`
	SubmittedBy  string    `json:"submittedBy"`
	WinnerID     string    `json:"winnerId"`
	WinningCells [][2]int  `json:"winningCells"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
