package httpapi

import (
	"encoding/json"
	"net/http"

	"gomoku-server/internal/coordinator"
	"gomoku-server/internal/room"
)

// ListRooms exposes the lobby list over plain HTTP so clients can render it
// before opening the websocket.
func ListRooms(c *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []room.Room, 1)
		c.Inbox() <- coordinator.GetRooms{Reply: reply}
		rooms := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rooms)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
