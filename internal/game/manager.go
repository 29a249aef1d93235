package game

import (
	"github.com/samber/lo"

	"gomoku-server/internal/grid"
)

// Manager owns the active games, grouped by room path. A room may host
// several games at once; a connection id appears in at most one.
type Manager struct {
	byRoom map[string][]*Game
}

func NewManager() *Manager {
	return &Manager{byRoom: make(map[string][]*Game)}
}

// Create opens a game from an accepted invitation, with an empty grid and the
// pre-assigned turn order.
func (m *Manager) Create(id int, roomPath, player1ID, player2ID, currentID, nextID string) *Game {
	g := &Game{
		ID:              id,
		Player1ID:       player1ID,
		Player2ID:       player2ID,
		RoomPath:        roomPath,
		Grid:            grid.New(),
		CurrentPlayerID: currentID,
		NextPlayerID:    nextID,
	}
	m.byRoom[roomPath] = append(m.byRoom[roomPath], g)
	return g
}

// List returns the active games of a room.
func (m *Manager) List(roomPath string) []*Game {
	return m.byRoom[roomPath]
}

// Snapshot returns value copies of a room's games. Broadcasts must use this,
// never List: the transport marshals payloads on its own goroutine after the
// coordinator has moved on to the next event.
func (m *Manager) Snapshot(roomPath string) []Game {
	games := m.byRoom[roomPath]
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, *g)
	}
	return out
}

// FindByPlayer locates the game a connection id participates in.
func (m *Manager) FindByPlayer(connID string) (*Game, bool) {
	for _, games := range m.byRoom {
		for _, g := range games {
			if g.has(connID) {
				return g, true
			}
		}
	}
	return nil, false
}

// Len reports the total number of active games.
func (m *Manager) Len() int {
	n := 0
	for _, games := range m.byRoom {
		n += len(games)
	}
	return n
}

func (m *Manager) remove(g *Game) {
	m.byRoom[g.RoomPath] = lo.Reject(m.byRoom[g.RoomPath], func(other *Game, _ int) bool {
		return other.ID == g.ID
	})
}

// MoveResult reports the outcome of an accepted move. Grid is the board as
// it stood when the move resolved; on a win the game's own grid has already
// been cleared.
type MoveResult struct {
	Game     *Game
	Grid     grid.Grid
	Won      bool
	WinnerID string
	Cells    [][2]int
}

// ApplyMove handles a full-grid submission from a participant. The turn check
// is the sole legality check: submissions from anyone but the current
// turn-holder leave the game untouched. The submitted grid replaces the
// stored one entirely; the server does not diff cells.
//
// On a win the game is recorded as finished and removed from its room's
// list; otherwise the turn pointers swap.
func (m *Manager) ApplyMove(submitterID string, submitted grid.Grid) (MoveResult, error) {
	g, ok := m.FindByPlayer(submitterID)
	if !ok {
		return MoveResult{}, ErrNoGame
	}
	if submitterID != g.CurrentPlayerID {
		return MoveResult{}, ErrNotYourTurn
	}
	if !submitted.Valid() {
		return MoveResult{}, ErrBadGrid
	}
	g.Grid = submitted

	if line, won := g.Grid.Winner(); won {
		winnerID := g.Player1ID
		if line.Mark == SymbolPlayer2 {
			winnerID = g.Player2ID
		}
		g.Winner = winnerID
		g.WinningCells = line.Cells
		final := g.Grid
		g.Grid = grid.New()
		m.remove(g)
		return MoveResult{Game: g, Grid: final, Won: true, WinnerID: winnerID, Cells: line.Cells}, nil
	}

	g.CurrentPlayerID, g.NextPlayerID = g.NextPlayerID, g.CurrentPlayerID
	return MoveResult{Game: g, Grid: g.Grid}, nil
}

// Abort forfeits the game the leaver participates in: the remaining player is
// declared winner and the game is removed, same as a normal finish. The
// second value is false when the leaver had no active game.
func (m *Manager) Abort(leaverID string) (MoveResult, bool) {
	g, ok := m.FindByPlayer(leaverID)
	if !ok {
		return MoveResult{}, false
	}
	winnerID := g.opponent(leaverID)
	g.Winner = winnerID
	m.remove(g)
	return MoveResult{Game: g, Grid: g.Grid, Won: true, WinnerID: winnerID}, true
}

// PostMessage appends to the capped chat log of the sender's game and returns
// the game so the caller can broadcast the updated log.
func (m *Manager) PostMessage(senderID, text string) (*Game, error) {
	g, ok := m.FindByPlayer(senderID)
	if !ok {
		return nil, ErrNoGame
	}
	g.messages = append(g.messages, Message{From: senderID, Text: text})
	if len(g.messages) > ChatLimit {
		g.messages = g.messages[len(g.messages)-ChatLimit:]
	}
	return g, nil
}
