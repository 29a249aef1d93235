package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gomoku-server/internal/coordinator"
	"gomoku-server/internal/ws"
)

func SetupRoutes(c *coordinator.Coordinator, origins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/rooms", ListRooms(c))
	r.Get("/ws", ws.Handler(c, origins, logger))
	return r
}
