package room

import "errors"

var ErrRoomNotFound = errors.New("room not found")
var ErrRoomFull = errors.New("room is full")

// ChatLimit caps a room's chat history; the oldest entry is evicted first.
const ChatLimit = 100

type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

type Room struct {
	Name              string `json:"name"`
	Capacity          int    `json:"capacity"`
	Path              string `json:"path"`
	ActiveConnections int    `json:"activeConnections"`

	messages []Message
}

// Registry owns the fixed set of lobby rooms. Rooms are created once at
// startup and live for the whole process.
type Registry struct {
	rooms []*Room
}

// NewRegistry builds the static lobby list.
func NewRegistry() *Registry {
	return &Registry{rooms: []*Room{
		{Name: "Salle 1", Capacity: 100, Path: "1"},
		{Name: "Salle 2", Capacity: 100, Path: "2"},
		{Name: "Salle 3", Capacity: 100, Path: "3"},
	}}
}

func (r *Registry) find(path string) *Room {
	for _, rm := range r.rooms {
		if rm.Path == path {
			return rm
		}
	}
	return nil
}

// Paths lists the room paths in declaration order.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.rooms))
	for _, rm := range r.rooms {
		paths = append(paths, rm.Path)
	}
	return paths
}

// Snapshot returns value copies of every room, safe to hand to a broadcast.
func (r *Registry) Snapshot() []Room {
	out := make([]Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, Room{
			Name:              rm.Name,
			Capacity:          rm.Capacity,
			Path:              rm.Path,
			ActiveConnections: rm.ActiveConnections,
		})
	}
	return out
}

// Join increments a room's occupancy. Refused with ErrRoomFull when the room
// is at capacity, so ActiveConnections never exceeds Capacity.
func (r *Registry) Join(path string) error {
	rm := r.find(path)
	if rm == nil {
		return ErrRoomNotFound
	}
	if rm.ActiveConnections >= rm.Capacity {
		return ErrRoomFull
	}
	rm.ActiveConnections++
	return nil
}

// Leave decrements a room's occupancy, clamping at zero. clamped is true when
// the counter was already zero, which means bookkeeping went wrong upstream.
func (r *Registry) Leave(path string) (clamped bool, err error) {
	rm := r.find(path)
	if rm == nil {
		return false, ErrRoomNotFound
	}
	if rm.ActiveConnections == 0 {
		return true, nil
	}
	rm.ActiveConnections--
	return false, nil
}

// AppendMessage records a chat message in the room's capped history and
// returns the updated log.
func (r *Registry) AppendMessage(path string, m Message) ([]Message, error) {
	rm := r.find(path)
	if rm == nil {
		return nil, ErrRoomNotFound
	}
	rm.messages = append(rm.messages, m)
	if len(rm.messages) > ChatLimit {
		rm.messages = rm.messages[len(rm.messages)-ChatLimit:]
	}
	return rm.messages, nil
}

// Messages returns the room's chat history, oldest first.
func (r *Registry) Messages(path string) []Message {
	rm := r.find(path)
	if rm == nil {
		return nil
	}
	return rm.messages
}
