package rooms

import (
	"fmt"
	"sync"
	"time"

	"beastduel/internal/broadcast"
	"beastduel/internal/dataset"
	"beastduel/internal/events"
	"beastduel/internal/game"
	"beastduel/internal/wshub"
)

const staleTTL = 2 * time.Hour

// Store creates and tracks active rooms over a shared immutable pool.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
	pool  []*dataset.Animal
	cfg   game.Config
}

func NewStore(pool []*dataset.Animal, cfg game.Config) *Store {
	s := &Store{
		rooms: make(map[string]*Room),
		pool:  pool,
		cfg:   cfg,
	}
	go s.sweepStale()
	return s
}

// Create opens a new session room and starts its first round.
func (s *Store) Create(playerID, playerName string, mode game.Mode, audioAllowed bool) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		bus := events.NewBus()
		g := game.New(s.pool, mode, audioAllowed, s.cfg, bus, time.Now())
		if err := g.Start(); err != nil {
			return nil, fmt.Errorf("starting game: %w", err)
		}

		room := &Room{
			Code:        code,
			Game:        g,
			Broadcaster: broadcast.NewBroadcaster(bus),
			Hub:         wshub.NewHub(),
			CreatedAt:   time.Now(),
			PlayerID:    playerID,
			PlayerName:  playerName,
		}
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[code]; ok {
		room.Game.Stop()
		delete(s.rooms, code)
	}
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for code, room := range s.rooms {
			if now.Sub(room.CreatedAt) > staleTTL {
				room.Game.Stop()
				delete(s.rooms, code)
			}
		}
		s.mu.Unlock()
	}
}
