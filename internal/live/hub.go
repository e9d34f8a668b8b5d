package live

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/pkg/metrics"
)

const TypeScoreUpdated = "score_updated"

// Message is the frame sent to viewers.
type Message struct {
	Type       string           `json:"type"`
	MatchID    uint             `json:"match_id"`
	Scoreboard match.Scoreboard `json:"scoreboard"`
}

type viewer struct {
	id   string
	send chan []byte
}

// Hub fans score_updated snapshots out to the viewers of each match.
// Publish never waits on a viewer; a full buffer means that viewer misses
// the frame.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[uint]map[string]*viewer
	buffer  int
	metrics *metrics.Recorder
	logger  *zap.Logger
}

func NewHub(buffer int, m *metrics.Recorder, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:   make(map[uint]map[string]*viewer),
		buffer:  buffer,
		metrics: m,
		logger:  logger,
	}
}

var _ match.Broadcaster = (*Hub)(nil)

// Subscription is one viewer's feed. Close it when the viewer leaves.
type Subscription struct {
	ID      string
	MatchID uint
	C       <-chan []byte

	hub  *Hub
	once sync.Once
}

func (h *Hub) Subscribe(matchID uint) *Subscription {
	v := &viewer{id: uuid.NewString(), send: make(chan []byte, h.buffer)}

	h.mu.Lock()
	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[string]*viewer)
		h.rooms[matchID] = room
	}
	room[v.id] = v
	h.mu.Unlock()

	h.metrics.ViewerJoined()
	h.logger.Debug("viewer joined", zap.Uint("match_id", matchID), zap.String("viewer_id", v.id))
	return &Subscription{ID: v.id, MatchID: matchID, C: v.send, hub: h}
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		if room, ok := h.rooms[s.MatchID]; ok {
			if v, ok := room[s.ID]; ok {
				delete(room, s.ID)
				close(v.send)
			}
			if len(room) == 0 {
				delete(h.rooms, s.MatchID)
			}
		}
		h.mu.Unlock()
		h.metrics.ViewerLeft()
		h.logger.Debug("viewer left", zap.Uint("match_id", s.MatchID), zap.String("viewer_id", s.ID))
	})
}

// Publish encodes the snapshot once and offers it to every viewer of the match.
func (h *Hub) Publish(matchID uint, sb match.Scoreboard) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room := h.rooms[matchID]
	if len(room) == 0 {
		return
	}
	frame, err := json.Marshal(Message{Type: TypeScoreUpdated, MatchID: matchID, Scoreboard: sb})
	if err != nil {
		h.logger.Error("encode score_updated", zap.Uint("match_id", matchID), zap.Error(err))
		return
	}
	dropped := 0
	for _, v := range room {
		select {
		case v.send <- frame:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("slow viewers skipped", zap.Uint("match_id", matchID), zap.Int("dropped", dropped))
	}
	h.metrics.RecordBroadcast(dropped)
}

// Close ends every feed. Streams see their channel close and hang up.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for matchID, room := range h.rooms {
		for _, v := range room {
			close(v.send)
		}
		delete(h.rooms, matchID)
	}
}

// Viewers reports how many viewers are watching a match.
func (h *Hub) Viewers(matchID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}
