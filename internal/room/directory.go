package room

import "github.com/samber/lo"

// Player is a room membership record, keyed by the opaque connection id.
type Player struct {
	ID          string `json:"id"`
	Pseudo      string `json:"pseudo"`
	CurrentRoom string `json:"currentRoom"`
}

// Directory tracks which players sit in which room. A connection id is
// expected to appear in at most one room; callers enforce that by removing
// before re-adding.
type Directory struct {
	byRoom map[string][]Player
}

func NewDirectory(paths ...string) *Directory {
	d := &Directory{byRoom: make(map[string][]Player, len(paths))}
	for _, p := range paths {
		d.byRoom[p] = []Player{}
	}
	return d
}

func (d *Directory) Add(p Player) {
	d.byRoom[p.CurrentRoom] = append(d.byRoom[p.CurrentRoom], p)
}

func (d *Directory) Remove(roomPath, id string) {
	d.byRoom[roomPath] = lo.Reject(d.byRoom[roomPath], func(p Player, _ int) bool {
		return p.ID == id
	})
}

// Contains reports whether the connection id is already a member of the room.
func (d *Directory) Contains(roomPath, id string) bool {
	return lo.ContainsBy(d.byRoom[roomPath], func(p Player) bool { return p.ID == id })
}

// RoomOf finds the room holding a connection id. Disconnect events carry no
// room, so this is how cleanup locates the membership to drop.
func (d *Directory) RoomOf(id string) (string, bool) {
	for path, players := range d.byRoom {
		if lo.ContainsBy(players, func(p Player) bool { return p.ID == id }) {
			return path, true
		}
	}
	return "", false
}

// Players returns the membership list of a room.
func (d *Directory) Players(roomPath string) []Player {
	return d.byRoom[roomPath]
}
