package server

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

const (
	roomCodeLength = 4
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Registry holds all live rooms keyed by code. Rooms share no mutable
// state, so the registry lock only guards the map itself.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Session
	log   *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		rooms: make(map[string]*Session),
		log:   log,
	}
}

// Create opens a room with a fresh unique code and starts its timer poller.
func (r *Registry) Create(cfg engine.Config, cat engine.Catalog) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := generateRoomCode()
	for {
		if _, taken := r.rooms[code]; !taken {
			break
		}
		code = generateRoomCode()
	}
	s := newSession(code, cfg, cat, r.log.With(zap.String("room", code)))
	r.rooms[code] = s
	go s.runPoller()
	return s
}

func (r *Registry) Get(code string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rooms[code]
	return s, ok
}

// Remove tears a room down and stops its poller.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	s, ok := r.rooms[code]
	delete(r.rooms, code)
	r.mu.Unlock()
	if ok {
		s.stop()
	}
}

func generateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeChars))))
		if err != nil {
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
			continue
		}
		code[i] = roomCodeChars[n.Int64()]
	}
	return string(code)
}

func gameSeed() int64 {
	return time.Now().UnixNano()
}
