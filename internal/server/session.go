package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// Session owns one room. A single mutex serializes player intents and the
// timer poller, so no two mutations of the same room ever interleave.
type Session struct {
	mu         sync.Mutex
	code       string
	game       *engine.GameState
	hostID     string
	conns      map[string]*websocket.Conn
	spectators map[*websocket.Conn]bool
	lastLog    int
	log        *zap.Logger
	done       chan struct{}
	stopOnce   sync.Once
}

func newSession(code string, cfg engine.Config, cat engine.Catalog, log *zap.Logger) *Session {
	return &Session{
		code:       code,
		game:       engine.NewGame(cfg, cat, gameSeed()),
		conns:      map[string]*websocket.Conn{},
		spectators: map[*websocket.Conn]bool{},
		log:        log,
		done:       make(chan struct{}),
	}
}

func (s *Session) Code() string { return s.code }

func (s *Session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// runPoller drives timer-based transitions. It shares the session mutex
// with the intent path, keeping room mutations strictly sequential.
func (s *Session) runPoller() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.game.TickExpiry(now)
			s.broadcastLocked()
			if s.game.Phase == engine.PhaseEnded && len(s.conns) == 0 {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		}
	}
}

// Join seats a new player, or re-binds the connection of a returning one,
// and pumps their messages until the socket closes.
func (s *Session) Join(conn *websocket.Conn, playerID, name string) {
	s.mu.Lock()
	if playerID == "" {
		playerID = uuid.NewString()
	}
	if len(s.conns) == 0 && s.hostID == "" {
		s.hostID = playerID
	}
	s.game.AddPlayer(playerID, name)
	s.game.SetConnected(playerID, true, time.Now())
	if old, ok := s.conns[playerID]; ok && old != conn {
		_ = old.Close()
	}
	s.conns[playerID] = conn
	s.sendStateLocked(conn, playerID)
	s.mu.Unlock()

	s.readLoop(conn, playerID)

	s.mu.Lock()
	if s.conns[playerID] == conn {
		delete(s.conns, playerID)
		s.game.SetConnected(playerID, false, time.Now())
		s.broadcastLocked()
	}
	s.mu.Unlock()
}

// Spectate attaches a read-only viewer.
func (s *Session) Spectate(conn *websocket.Conn) {
	s.mu.Lock()
	s.spectators[conn] = true
	s.sendStateLocked(conn, "")
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.spectators, conn)
	s.mu.Unlock()
}

func (s *Session) readLoop(conn *websocket.Conn, playerID string) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.mu.Lock()
			s.sendError(conn, "bad_request", "invalid json")
			s.mu.Unlock()
			continue
		}
		s.handleMessage(conn, playerID, msg)
	}
}

func (s *Session) handleMessage(conn *websocket.Conn, playerID string, msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	switch msg.Type {
	case "start":
		if playerID != s.hostID {
			s.sendError(conn, "not_host", "only the host may start the game")
			return
		}
		s.game.Start(now)
	case "ready":
		s.game.SetReady(playerID, msg.Ready)
	case "play_card":
		s.game.PlayCard(playerID, msg.CardID, now)
	case "unplay_card":
		s.game.UnplayCard(playerID)
	case "claim_card":
		s.game.ClaimCard(playerID, msg.CardID)
	case "resolution_action", "yew_target":
		choice, err := parseChoice(msg)
		if err != nil {
			s.sendError(conn, "bad_choice", err.Error())
			return
		}
		s.game.ResolvePending(playerID, choice, now)
	case "end_discussion":
		s.game.EndDiscussion(playerID, now)
	case "send_rune":
		s.sendRuneLocked(playerID, msg.ToPlayerID, msg.Message)
	default:
		s.sendError(conn, "unknown_type", "unknown message type")
		return
	}
	s.broadcastLocked()
}

// sendRuneLocked relays a private message to its recipient and records only
// the fact of its sending in the public log.
func (s *Session) sendRuneLocked(fromID, toID, message string) {
	target, ok := s.conns[toID]
	if !ok || message == "" {
		return
	}
	s.game.RecordRune(fromID, toID)
	payload := ServerMessage{Type: "rune", Rune: &RuneView{FromPlayerID: fromID, Message: message}}
	if err := target.WriteJSON(payload); err != nil {
		s.log.Warn("rune delivery failed", zap.Error(err))
	}
}

// broadcastLocked pushes a per-viewer projection to every connection plus
// the spectator view, with the log entries appended since the last push.
func (s *Session) broadcastLocked() {
	events := buildEvents(s.game, s.lastLog)
	s.lastLog = len(s.game.Log)
	for playerID, conn := range s.conns {
		msg := ServerMessage{
			Type:   "state",
			State:  BuildRoomView(s.code, s.game, playerID),
			Events: events,
		}
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Warn("broadcast failed", zap.String("player", playerID), zap.Error(err))
		}
	}
	if len(s.spectators) > 0 {
		msg := ServerMessage{
			Type:   "state",
			State:  BuildRoomView(s.code, s.game, ""),
			Events: events,
		}
		for conn := range s.spectators {
			_ = conn.WriteJSON(msg)
		}
	}
}

func (s *Session) sendStateLocked(conn *websocket.Conn, viewerID string) {
	msg := ServerMessage{Type: "state", State: BuildRoomView(s.code, s.game, viewerID)}
	_ = conn.WriteJSON(msg)
}

// sendError requires s.mu: the poller writes to the same connections, and
// gorilla allows only one writer per connection.
func (s *Session) sendError(conn *websocket.Conn, code, message string) {
	_ = conn.WriteJSON(ServerMessage{Type: "error", Error: &ErrorView{Code: code, Message: message}})
}
