package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/crease/pkg/metrics"
)

// CompletionSink consumes match_completed. It must tolerate redelivery.
type CompletionSink interface {
	HandleMatchCompleted(ctx context.Context, evt MatchCompleted) error
}

// Broadcaster pushes score_updated snapshots to viewers. Publish must not block.
type Broadcaster interface {
	Publish(matchID uint, sb Scoreboard)
}

// Service is the match state controller. It is the only writer of a match's
// innings totals, ledger and player stats.
type Service struct {
	repo        MatchRepository
	sink        CompletionSink
	broadcaster Broadcaster
	metrics     *metrics.Recorder
	logger      *zap.Logger
	locks       *matchLocks
	now         func() time.Time
}

type Option func(*Service)

func WithCompletionSink(sink CompletionSink) Option {
	return func(s *Service) { s.sink = sink }
}

func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) { s.broadcaster = b }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo MatchRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: zap.NewNop(),
		locks:  newMatchLocks(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Fixture intake ---

// FixtureInput is the match shell handed over by the tournament side.
type FixtureInput struct {
	TournamentID    *uint  `json:"tournament_id,omitempty"`
	RoundNumber     int    `json:"round_number,omitempty"`
	TeamAID         uint   `json:"team_a_id" binding:"required"`
	TeamAName       string `json:"team_a_name" binding:"required"`
	TeamBID         uint   `json:"team_b_id" binding:"required"`
	TeamBName       string `json:"team_b_name" binding:"required"`
	OversPerInnings int    `json:"overs_per_innings" binding:"required,min=1,max=50"`
}

func (s *Service) CreateFixture(ctx context.Context, in FixtureInput) (*Match, error) {
	if in.TeamAID == 0 || in.TeamBID == 0 || in.TeamAID == in.TeamBID {
		return nil, validationf("a fixture needs two different teams")
	}
	if in.OversPerInnings <= 0 {
		return nil, validationf("overs per innings must be positive, got %d", in.OversPerInnings)
	}
	m := &Match{
		TournamentID:    in.TournamentID,
		RoundNumber:     in.RoundNumber,
		TeamAID:         in.TeamAID,
		TeamAName:       in.TeamAName,
		TeamBID:         in.TeamBID,
		TeamBName:       in.TeamBName,
		OversPerInnings: in.OversPerInnings,
		Status:          StatusTossPending,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	s.logger.Info("fixture created", zap.Uint("match_id", m.ID))
	return m, nil
}

func (s *Service) GetMatch(ctx context.Context, matchID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if m == nil {
		return nil, notFoundf("match %d not found", matchID)
	}
	return m, nil
}

// PlayerInput is one Playing XI nomination.
type PlayerInput struct {
	PlayerID     uint   `json:"player_id" binding:"required"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	BattingOrder *int   `json:"batting_order,omitempty"`
}

// SetPlayingXI replaces a team's nominations. Only allowed before the match starts.
func (s *Service) SetPlayingXI(ctx context.Context, matchID, teamID uint, players []PlayerInput) error {
	if len(players) == 0 || len(players) > 11 {
		return validationf("a playing XI needs between 1 and 11 players, got %d", len(players))
	}
	seen := make(map[uint]bool, len(players))
	rows := make([]MatchPlayer, 0, len(players))
	for _, p := range players {
		if p.PlayerID == 0 {
			return validationf("player id is required")
		}
		if seen[p.PlayerID] {
			return validationf("player %d is listed twice", p.PlayerID)
		}
		seen[p.PlayerID] = true
		rows = append(rows, MatchPlayer{
			MatchID:      matchID,
			TeamID:       teamID,
			PlayerID:     p.PlayerID,
			PlayerName:   p.Name,
			Role:         p.Role,
			BattingOrder: p.BattingOrder,
		})
	}

	unlock := s.locks.lock(matchID)
	defer unlock()
	return s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		st, err := tx.LoadState(ctx, matchID, true)
		if err != nil {
			return fmt.Errorf("load match: %w", err)
		}
		if st == nil {
			return notFoundf("match %d not found", matchID)
		}
		if !st.isTeam(teamID) {
			return notFoundf("team %d is not playing in match %d", teamID, matchID)
		}
		switch st.Match.Status {
		case StatusTossPending, StatusTossCompleted:
		default:
			return illegalf("playing XI is locked once the match is %s", st.Match.Status)
		}
		for _, p := range st.Players {
			if p.TeamID != teamID && seen[p.PlayerID] {
				return validationf("player %d is already in the other team's XI", p.PlayerID)
			}
		}
		return tx.ReplacePlayingXI(ctx, matchID, teamID, rows)
	})
}

// --- Commands ---

func (s *Service) RecordToss(ctx context.Context, matchID, winnerTeamID uint, decision TossDecision) (*Scoreboard, error) {
	st, err := s.execute(ctx, "record_toss", matchID, func(st *MatchState) error {
		return st.RecordToss(winnerTeamID, decision)
	})
	return s.board(st), err
}

func (s *Service) StartMatch(ctx context.Context, matchID uint) (*Scoreboard, error) {
	st, err := s.execute(ctx, "start_match", matchID, func(st *MatchState) error {
		return st.Start(s.now())
	})
	return s.board(st), err
}

func (s *Service) SetOpeningBatters(ctx context.Context, matchID, strikerID, nonStrikerID uint) (*Scoreboard, error) {
	st, err := s.execute(ctx, "set_opening_batters", matchID, func(st *MatchState) error {
		return st.SetOpeningBatters(strikerID, nonStrikerID)
	})
	return s.board(st), err
}

func (s *Service) SetNextBatter(ctx context.Context, matchID, playerID uint) (*Scoreboard, error) {
	st, err := s.execute(ctx, "set_next_batter", matchID, func(st *MatchState) error {
		return st.SetNextBatter(playerID)
	})
	return s.board(st), err
}

func (s *Service) SelectBowler(ctx context.Context, matchID, bowlerID uint) (*Scoreboard, error) {
	st, err := s.execute(ctx, "select_bowler", matchID, func(st *MatchState) error {
		return st.SelectBowler(bowlerID)
	})
	return s.board(st), err
}

// ValidateBowler runs the selection checks without changing anything.
func (s *Service) ValidateBowler(ctx context.Context, matchID, bowlerID uint) error {
	err := s.read(ctx, matchID, func(st *MatchState) error {
		return st.CheckBowler(bowlerID)
	})
	s.metrics.RecordCommand("validate_bowler", KindName(err))
	return err
}

// RecordBallResult pairs the ball outcome with the snapshot after it.
type RecordBallResult struct {
	BallResult
	Scoreboard Scoreboard `json:"scoreboard"`
}

func (s *Service) RecordBall(ctx context.Context, matchID uint, in BallInput, recordedBy *uint) (*RecordBallResult, error) {
	var res *BallResult
	st, err := s.execute(ctx, "record_ball", matchID, func(st *MatchState) error {
		var err error
		res, err = st.RecordBall(in, recordedBy, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBall()
	return &RecordBallResult{BallResult: *res, Scoreboard: ProjectScoreboard(st)}, nil
}

func (s *Service) EndInnings(ctx context.Context, matchID uint) (*Scoreboard, error) {
	st, err := s.execute(ctx, "end_innings", matchID, func(st *MatchState) error {
		return st.EndInnings()
	})
	return s.board(st), err
}

// CompleteMatch finalizes the result and hands match_completed to the sink.
func (s *Service) CompleteMatch(ctx context.Context, matchID uint) (*MatchCompleted, error) {
	var evt *MatchCompleted
	_, err := s.execute(ctx, "complete_match", matchID, func(st *MatchState) error {
		var err error
		evt, err = st.Complete(s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("match completed",
		zap.Uint("match_id", matchID),
		zap.String("result", evt.ResultText),
	)
	if _, err := s.DeliverPending(ctx, 0); err != nil {
		s.logger.Error("deliver completion event", zap.Uint("match_id", matchID), zap.Error(err))
	}
	return evt, nil
}

// --- Queries ---

func (s *Service) GetScoreboard(ctx context.Context, matchID uint) (*Scoreboard, error) {
	var sb Scoreboard
	err := s.read(ctx, matchID, func(st *MatchState) error {
		sb = ProjectScoreboard(st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

func (s *Service) GetAvailableBatters(ctx context.Context, matchID, teamID uint) ([]Roster, error) {
	var out []Roster
	err := s.read(ctx, matchID, func(st *MatchState) error {
		var err error
		out, err = AvailableBatters(st, teamID)
		return err
	})
	return out, err
}

func (s *Service) GetAvailableBowlers(ctx context.Context, matchID, teamID uint, excludeHint *uint) ([]Roster, error) {
	var out []Roster
	err := s.read(ctx, matchID, func(st *MatchState) error {
		var err error
		out, err = AvailableBowlers(st, teamID, excludeHint)
		return err
	})
	return out, err
}

func (s *Service) ListBalls(ctx context.Context, matchID uint) ([]BallEvent, error) {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}
	balls, err := s.repo.ListBalls(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list balls: %w", err)
	}
	if balls == nil {
		balls = []BallEvent{}
	}
	return balls, nil
}

// --- Outbox ---

// DeliverPending hands undelivered completion events to the sink, oldest
// first. It returns how many were delivered.
func (s *Service) DeliverPending(ctx context.Context, limit int) (int, error) {
	if s.sink == nil {
		return 0, nil
	}
	events, err := s.repo.PendingEvents(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("pending events: %w", err)
	}
	delivered := 0
	for _, e := range events {
		if e.Type != EventMatchCompleted {
			continue
		}
		var evt MatchCompleted
		if err := json.Unmarshal(e.Payload, &evt); err != nil {
			s.failEvent(ctx, e, fmt.Errorf("decode payload: %w", err))
			continue
		}
		if err := s.sink.HandleMatchCompleted(ctx, evt); err != nil {
			s.failEvent(ctx, e, err)
			continue
		}
		if err := s.repo.MarkEventDelivered(ctx, e.ID, s.now()); err != nil {
			return delivered, fmt.Errorf("mark event %d delivered: %w", e.ID, err)
		}
		s.metrics.RecordOutboxDelivery(true)
		delivered++
	}
	return delivered, nil
}

func (s *Service) failEvent(ctx context.Context, e MatchEvent, cause error) {
	s.metrics.RecordOutboxDelivery(false)
	s.logger.Error("outbox delivery failed",
		zap.Uint("event_id", e.ID),
		zap.Uint("match_id", e.MatchID),
		zap.Int("attempts", e.Attempts+1),
		zap.Error(cause),
	)
	if err := s.repo.MarkEventFailed(ctx, e.ID, cause.Error()); err != nil {
		s.logger.Error("mark outbox event failed", zap.Uint("event_id", e.ID), zap.Error(err))
	}
}

// --- plumbing ---

// execute runs one command as a single unit: lock the match, load it, apply,
// persist, commit. On any error nothing is written. The committed state is
// returned for projection and broadcast.
func (s *Service) execute(ctx context.Context, name string, matchID uint, apply func(*MatchState) error) (*MatchState, error) {
	unlock := s.locks.lock(matchID)
	defer unlock()

	var committed *MatchState
	err := s.repo.WithTransaction(ctx, func(tx MatchRepository) error {
		st, err := tx.LoadState(ctx, matchID, true)
		if err != nil {
			return fmt.Errorf("load match: %w", err)
		}
		if st == nil {
			return notFoundf("match %d not found", matchID)
		}
		if err := apply(st); err != nil {
			return err
		}
		if err := persist(ctx, tx, st); err != nil {
			return fmt.Errorf("persist %s: %w", name, err)
		}
		committed = st
		return nil
	})

	s.metrics.RecordCommand(name, KindName(err))
	if err != nil {
		var domainErr *Error
		if errors.As(err, &domainErr) {
			s.logger.Info("command rejected",
				zap.String("command", name),
				zap.Uint("match_id", matchID),
				zap.String("kind", KindName(err)),
				zap.String("reason", domainErr.Reason),
			)
		} else {
			s.logger.Error("command failed", zap.String("command", name), zap.Uint("match_id", matchID), zap.Error(err))
		}
		return nil, err
	}
	s.logger.Debug("command applied", zap.String("command", name), zap.Uint("match_id", matchID))
	s.publish(committed)
	return committed, nil
}

// persist flushes the changes recorded on st.
func persist(ctx context.Context, tx MatchRepository, st *MatchState) error {
	if st.matchDirty {
		if err := tx.SaveMatch(ctx, &st.Match); err != nil {
			return err
		}
	}
	if st.scoresDirty {
		if err := tx.SaveScores(ctx, st.Scores); err != nil {
			return err
		}
	}
	if stats := st.DirtyStats(); len(stats) > 0 {
		if err := tx.SaveStats(ctx, stats); err != nil {
			return err
		}
	}
	for i := range st.newBalls {
		if err := tx.AppendBall(ctx, &st.newBalls[i]); err != nil {
			return err
		}
	}
	for i := range st.newEvents {
		if err := tx.AppendEvent(ctx, &st.newEvents[i]); err != nil {
			return err
		}
	}
	st.matchDirty, st.scoresDirty = false, false
	st.dirtyStats, st.newBalls, st.newEvents = nil, nil, nil
	return nil
}

// read runs fn against a consistent snapshot of one match.
func (s *Service) read(ctx context.Context, matchID uint, fn func(*MatchState) error) error {
	return s.repo.ReadSnapshot(ctx, func(r MatchRepository) error {
		st, err := r.LoadState(ctx, matchID, false)
		if err != nil {
			return fmt.Errorf("load match: %w", err)
		}
		if st == nil {
			return notFoundf("match %d not found", matchID)
		}
		return fn(st)
	})
}

// publish is best effort; a broadcaster problem never reaches the scorer.
func (s *Service) publish(st *MatchState) {
	if s.broadcaster == nil || st == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("broadcast panicked", zap.Uint("match_id", st.Match.ID), zap.Any("panic", r))
		}
	}()
	s.broadcaster.Publish(st.Match.ID, ProjectScoreboard(st))
}

func (s *Service) board(st *MatchState) *Scoreboard {
	if st == nil {
		return nil
	}
	sb := ProjectScoreboard(st)
	return &sb
}

// matchLocks is a per-match mutex registry; entries are dropped when unused.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*matchLock)}
}

func (l *matchLocks) lock(matchID uint) func() {
	l.mu.Lock()
	ml, ok := l.locks[matchID]
	if !ok {
		ml = &matchLock{}
		l.locks[matchID] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.mu.Lock()
	return func() {
		ml.mu.Unlock()
		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, matchID)
		}
		l.mu.Unlock()
	}
}
