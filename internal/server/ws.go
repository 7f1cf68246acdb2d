package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler bundles the HTTP surface: room creation and the socket endpoint.
type Handler struct {
	registry *Registry
	config   engine.Config
	catalog  engine.Catalog
	log      *zap.Logger
}

func NewHandler(registry *Registry, cfg engine.Config, cat engine.Catalog, log *zap.Logger) *Handler {
	return &Handler{registry: registry, config: cfg, catalog: cat, log: log}
}

// CreateRoom answers POST /rooms with the new room's code.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s := h.registry.Create(h.config, h.catalog)
	h.log.Info("room created", zap.String("room", s.Code()))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"code": s.Code()})
}

// Socket upgrades GET /ws?room=CODE&name=NAME[&player=ID][&spectate=1].
func (h *Handler) Socket(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	session, ok := h.registry.Get(code)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if r.URL.Query().Get("spectate") != "" {
		session.Spectate(conn)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "anonymous"
	}
	session.Join(conn, r.URL.Query().Get("player"), name)
}
