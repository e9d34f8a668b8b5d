package match

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryData struct {
	nextID  uint
	matches map[uint]Match
	players map[uint][]MatchPlayer
	scores  map[uint][]TeamInningsScore
	stats   map[uint][]PlayerMatchStat
	balls   map[uint][]BallEvent
	events  []MatchEvent
}

func newMemoryData() *memoryData {
	return &memoryData{
		matches: make(map[uint]Match),
		players: make(map[uint][]MatchPlayer),
		scores:  make(map[uint][]TeamInningsScore),
		stats:   make(map[uint][]PlayerMatchStat),
		balls:   make(map[uint][]BallEvent),
	}
}

func (d *memoryData) id() uint {
	d.nextID++
	return d.nextID
}

func (d *memoryData) clone() *memoryData {
	out := newMemoryData()
	out.nextID = d.nextID
	for k, v := range d.matches {
		out.matches[k] = v
	}
	for k, v := range d.players {
		out.players[k] = append([]MatchPlayer(nil), v...)
	}
	for k, v := range d.scores {
		out.scores[k] = append([]TeamInningsScore(nil), v...)
	}
	for k, v := range d.stats {
		out.stats[k] = append([]PlayerMatchStat(nil), v...)
	}
	for k, v := range d.balls {
		out.balls[k] = append([]BallEvent(nil), v...)
	}
	out.events = append([]MatchEvent(nil), d.events...)
	return out
}

// MemoryRepository keeps everything in process memory. It backs local runs
// with APP_STORE=memory and the service tests.
type MemoryRepository struct {
	mu   *sync.RWMutex
	root **memoryData
	data *memoryData // set on transaction-scoped copies
}

func NewMemoryRepository() *MemoryRepository {
	d := newMemoryData()
	return &MemoryRepository{mu: &sync.RWMutex{}, root: &d}
}

// do runs fn against the live data, or the staged copy inside a transaction.
func (r *MemoryRepository) do(write bool, fn func(d *memoryData) error) error {
	if r.data != nil {
		return fn(r.data)
	}
	if write {
		r.mu.Lock()
		defer r.mu.Unlock()
	} else {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return fn(*r.root)
}

// WithTransaction stages writes on a copy and publishes it only if txFunc succeeds.
func (r *MemoryRepository) WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error {
	if r.data != nil {
		return txFunc(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := (*r.root).clone()
	if err := txFunc(&MemoryRepository{mu: r.mu, root: r.root, data: staged}); err != nil {
		return err
	}
	*r.root = staged
	return nil
}

func (r *MemoryRepository) ReadSnapshot(ctx context.Context, fn func(MatchRepository) error) error {
	if r.data != nil {
		return fn(r)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(&MemoryRepository{mu: r.mu, root: r.root, data: *r.root})
}

func (r *MemoryRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.do(true, func(d *memoryData) error {
		now := time.Now()
		match.ID = d.id()
		match.CreatedAt, match.UpdatedAt = now, now
		d.matches[match.ID] = *match
		return nil
	})
}

func (r *MemoryRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var out *Match
	err := r.do(false, func(d *memoryData) error {
		if m, ok := d.matches[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MemoryRepository) ReplacePlayingXI(ctx context.Context, matchID, teamID uint, players []MatchPlayer) error {
	return r.do(true, func(d *memoryData) error {
		kept := d.players[matchID][:0:0]
		for _, p := range d.players[matchID] {
			if p.TeamID != teamID {
				kept = append(kept, p)
			}
		}
		for i := range players {
			players[i].ID = d.id()
			kept = append(kept, players[i])
		}
		d.players[matchID] = kept
		return nil
	})
}

func (r *MemoryRepository) LoadState(ctx context.Context, matchID uint, forUpdate bool) (*MatchState, error) {
	var st *MatchState
	err := r.do(false, func(d *memoryData) error {
		m, ok := d.matches[matchID]
		if !ok {
			return nil
		}
		st = &MatchState{
			Match:   m,
			Players: append([]MatchPlayer(nil), d.players[matchID]...),
			Balls:   append([]BallEvent(nil), d.balls[matchID]...),
		}
		for _, sc := range d.scores[matchID] {
			c := sc
			st.Scores = append(st.Scores, &c)
		}
		sort.Slice(st.Scores, func(i, j int) bool { return st.Scores[i].InningsNumber < st.Scores[j].InningsNumber })
		for _, s := range d.stats[matchID] {
			c := s
			st.Stats = append(st.Stats, &c)
		}
		return nil
	})
	return st, err
}

func (r *MemoryRepository) SaveMatch(ctx context.Context, match *Match) error {
	return r.do(true, func(d *memoryData) error {
		match.UpdatedAt = time.Now()
		d.matches[match.ID] = *match
		return nil
	})
}

func (r *MemoryRepository) SaveScores(ctx context.Context, scores []*TeamInningsScore) error {
	return r.do(true, func(d *memoryData) error {
		for _, sc := range scores {
			if sc.ID == 0 {
				sc.ID = d.id()
			}
			rows := d.scores[sc.MatchID]
			replaced := false
			for i := range rows {
				if rows[i].ID == sc.ID {
					rows[i] = *sc
					replaced = true
				}
			}
			if !replaced {
				rows = append(rows, *sc)
			}
			d.scores[sc.MatchID] = rows
		}
		return nil
	})
}

func (r *MemoryRepository) SaveStats(ctx context.Context, stats []*PlayerMatchStat) error {
	return r.do(true, func(d *memoryData) error {
		for _, s := range stats {
			if s.ID == 0 {
				s.ID = d.id()
			}
			rows := d.stats[s.MatchID]
			replaced := false
			for i := range rows {
				if rows[i].ID == s.ID {
					rows[i] = *s
					replaced = true
				}
			}
			if !replaced {
				rows = append(rows, *s)
			}
			d.stats[s.MatchID] = rows
		}
		return nil
	})
}

func (r *MemoryRepository) AppendBall(ctx context.Context, ball *BallEvent) error {
	return r.do(true, func(d *memoryData) error {
		for _, b := range d.balls[ball.MatchID] {
			if b.Sequence == ball.Sequence {
				return illegalf("ball %d of match %d is already recorded", ball.Sequence, ball.MatchID)
			}
		}
		ball.ID = d.id()
		d.balls[ball.MatchID] = append(d.balls[ball.MatchID], *ball)
		return nil
	})
}

func (r *MemoryRepository) ListBalls(ctx context.Context, matchID uint) ([]BallEvent, error) {
	var out []BallEvent
	err := r.do(false, func(d *memoryData) error {
		out = append([]BallEvent(nil), d.balls[matchID]...)
		return nil
	})
	return out, err
}

func (r *MemoryRepository) AppendEvent(ctx context.Context, event *MatchEvent) error {
	return r.do(true, func(d *memoryData) error {
		for _, e := range d.events {
			if e.MatchID == event.MatchID && e.Type == event.Type {
				return illegalf("%s already recorded for match %d", event.Type, event.MatchID)
			}
		}
		event.ID = d.id()
		d.events = append(d.events, *event)
		return nil
	})
}

func (r *MemoryRepository) PendingEvents(ctx context.Context, limit int) ([]MatchEvent, error) {
	var out []MatchEvent
	err := r.do(false, func(d *memoryData) error {
		for _, e := range d.events {
			if e.DeliveredAt == nil {
				out = append(out, e)
			}
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *MemoryRepository) MarkEventDelivered(ctx context.Context, id uint, at time.Time) error {
	return r.do(true, func(d *memoryData) error {
		for i := range d.events {
			if d.events[i].ID == id {
				d.events[i].DeliveredAt = &at
				d.events[i].LastError = ""
			}
		}
		return nil
	})
}

func (r *MemoryRepository) MarkEventFailed(ctx context.Context, id uint, reason string) error {
	return r.do(true, func(d *memoryData) error {
		for i := range d.events {
			if d.events[i].ID == id {
				d.events[i].Attempts++
				d.events[i].LastError = reason
			}
		}
		return nil
	})
}
