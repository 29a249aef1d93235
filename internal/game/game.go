package game

import (
	"errors"

	"gomoku-server/internal/grid"
)

var ErrNoGame = errors.New("no active game for connection")
var ErrNotYourTurn = errors.New("not this player's turn")
var ErrBadGrid = errors.New("malformed grid")

// Player 1 always marks "O", player 2 "X".
const (
	SymbolPlayer1 = grid.MarkO
	SymbolPlayer2 = grid.MarkX
)

// ChatLimit caps a game's chat log; the oldest entry is evicted first.
const ChatLimit = 100

type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Game is one active match. Player ids are fixed for its lifetime; exactly
// one of CurrentPlayerID/NextPlayerID equals each participant until a winner
// is recorded.
type Game struct {
	ID              int       `json:"id"`
	Player1ID       string    `json:"joueur1Id"`
	Player2ID       string    `json:"joueur2Id"`
	RoomPath        string    `json:"room"`
	Grid            grid.Grid `json:"grid"`
	CurrentPlayerID string    `json:"currentPlayerId"`
	NextPlayerID    string    `json:"nextPlayerId"`
	Winner          string    `json:"winner,omitempty"`
	WinningCells    [][2]int  `json:"winningCells,omitempty"`

	messages []Message
}

func (g *Game) has(connID string) bool {
	return g.Player1ID == connID || g.Player2ID == connID
}

// opponent returns the other participant's id.
func (g *Game) opponent(connID string) string {
	if g.Player1ID == connID {
		return g.Player2ID
	}
	return g.Player1ID
}

// SymbolOf returns the mark assigned to a participant.
func (g *Game) SymbolOf(connID string) string {
	if g.Player1ID == connID {
		return SymbolPlayer1
	}
	return SymbolPlayer2
}

// Messages returns the game's chat log, oldest first.
func (g *Game) Messages() []Message { return g.messages }
