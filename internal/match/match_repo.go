package match

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines methods to interact with match scoring data
type MatchRepository interface {
	// Fixture methods
	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, id uint) (*Match, error)
	ReplacePlayingXI(ctx context.Context, matchID, teamID uint, players []MatchPlayer) error

	// Scoring methods
	LoadState(ctx context.Context, matchID uint, forUpdate bool) (*MatchState, error)
	SaveMatch(ctx context.Context, match *Match) error
	SaveScores(ctx context.Context, scores []*TeamInningsScore) error
	SaveStats(ctx context.Context, stats []*PlayerMatchStat) error
	AppendBall(ctx context.Context, ball *BallEvent) error
	ListBalls(ctx context.Context, matchID uint) ([]BallEvent, error)

	// Outbox methods
	AppendEvent(ctx context.Context, event *MatchEvent) error
	PendingEvents(ctx context.Context, limit int) ([]MatchEvent, error)
	MarkEventDelivered(ctx context.Context, id uint, at time.Time) error
	MarkEventFailed(ctx context.Context, id uint, reason string) error

	// Transaction support
	WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error
	// ReadSnapshot runs fn against a single consistent view of the data.
	ReadSnapshot(ctx context.Context, fn func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ReadSnapshot runs fn in a read-only REPEATABLE READ transaction, so a
// scoreboard never mixes rows from before and after a ball commit.
func (r *GormMatchRepository) ReadSnapshot(ctx context.Context, fn func(MatchRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormMatchRepository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

// CreateMatch creates a new match
func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

// GetMatchByID retrieves a match by ID
func (r *GormMatchRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var match Match
	result := r.db.WithContext(ctx).First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &match, nil
}

// ReplacePlayingXI swaps out a team's nominations for a match
func (r *GormMatchRepository) ReplacePlayingXI(ctx context.Context, matchID, teamID uint, players []MatchPlayer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("match_id = ? AND team_id = ?", matchID, teamID).
			Delete(&MatchPlayer{}).Error; err != nil {
			return err
		}
		if len(players) == 0 {
			return nil
		}
		return tx.Create(&players).Error
	})
}

// LoadState reads the whole scoring aggregate of a match. With forUpdate the
// match row is locked until the surrounding transaction ends, which serializes
// writers across instances.
func (r *GormMatchRepository) LoadState(ctx context.Context, matchID uint, forUpdate bool) (*MatchState, error) {
	db := r.db.WithContext(ctx)
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	st := &MatchState{}
	if err := q.First(&st.Match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := db.Where("match_id = ?", matchID).Order("team_id, id").Find(&st.Players).Error; err != nil {
		return nil, err
	}
	if err := db.Where("match_id = ?", matchID).Order("innings_number").Find(&st.Scores).Error; err != nil {
		return nil, err
	}
	if err := db.Where("match_id = ?", matchID).Order("id").Find(&st.Stats).Error; err != nil {
		return nil, err
	}
	if err := db.Where("match_id = ?", matchID).Order("sequence").Find(&st.Balls).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// SaveMatch updates an existing match
func (r *GormMatchRepository) SaveMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

func (r *GormMatchRepository) SaveScores(ctx context.Context, scores []*TeamInningsScore) error {
	for _, sc := range scores {
		if err := r.db.WithContext(ctx).Save(sc).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormMatchRepository) SaveStats(ctx context.Context, stats []*PlayerMatchStat) error {
	for _, s := range stats {
		if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
			return err
		}
	}
	return nil
}

// AppendBall inserts a ledger row. A duplicate sequence fails on the unique index.
func (r *GormMatchRepository) AppendBall(ctx context.Context, ball *BallEvent) error {
	return r.db.WithContext(ctx).Create(ball).Error
}

func (r *GormMatchRepository) ListBalls(ctx context.Context, matchID uint) ([]BallEvent, error) {
	var balls []BallEvent
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("sequence").Find(&balls).Error; err != nil {
		return nil, err
	}
	return balls, nil
}

func (r *GormMatchRepository) AppendEvent(ctx context.Context, event *MatchEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// PendingEvents returns undelivered outbox records, oldest first. Two relays
// may pick the same row; the consumer is idempotent.
func (r *GormMatchRepository) PendingEvents(ctx context.Context, limit int) ([]MatchEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []MatchEvent
	err := r.db.WithContext(ctx).
		Where("delivered_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormMatchRepository) MarkEventDelivered(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&MatchEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"delivered_at": at, "last_error": ""}).Error
}

func (r *GormMatchRepository) MarkEventFailed(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).Model(&MatchEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
}

// Models lists every table this package owns, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Match{}, &MatchPlayer{}, &TeamInningsScore{}, &BallEvent{}, &PlayerMatchStat{}, &MatchEvent{},
	}
}
