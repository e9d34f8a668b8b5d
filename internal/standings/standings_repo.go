package standings

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StandingsRepository defines methods to interact with tournament tables
type StandingsRepository interface {
	// EnsureEntry creates a zeroed entry unless one exists, and returns it.
	EnsureEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error)
	// LockEntry fetches an entry for update. It returns nil when absent.
	LockEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error)
	SaveEntry(ctx context.Context, entry *StandingsEntry) error
	ListEntries(ctx context.Context, tournamentID uint) ([]StandingsEntry, error)
	// ClaimContribution records that a match counted for a team. It reports
	// false when the match was already counted.
	ClaimContribution(ctx context.Context, c *StandingsContribution) (bool, error)

	WithTransaction(ctx context.Context, txFunc func(StandingsRepository) error) error
}

// GormStandingsRepository implements StandingsRepository using GORM
type GormStandingsRepository struct {
	db *gorm.DB
}

func NewGormStandingsRepository(db *gorm.DB) *GormStandingsRepository {
	return &GormStandingsRepository{db: db}
}

func (r *GormStandingsRepository) WithTransaction(ctx context.Context, txFunc func(StandingsRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&GormStandingsRepository{db: tx})
	})
}

func (r *GormStandingsRepository) EnsureEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error) {
	entry := &StandingsEntry{TournamentID: tournamentID, TeamID: teamID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tournament_id"}, {Name: "team_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
	if err != nil {
		return nil, err
	}
	var stored StandingsEntry
	if err := r.db.WithContext(ctx).
		Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormStandingsRepository) LockEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error) {
	var entry StandingsEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormStandingsRepository) SaveEntry(ctx context.Context, entry *StandingsEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *GormStandingsRepository) ListEntries(ctx context.Context, tournamentID uint) ([]StandingsEntry, error) {
	var entries []StandingsEntry
	err := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("team_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *GormStandingsRepository) ClaimContribution(ctx context.Context, c *StandingsContribution) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(c)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MemoryStandingsRepository keeps tables in process memory for APP_STORE=memory and tests.
type MemoryStandingsRepository struct {
	mu      *sync.Mutex
	inTx    bool
	nextID  *uint
	entries map[[2]uint]StandingsEntry
	claims  map[[3]uint]bool
}

func NewMemoryStandingsRepository() *MemoryStandingsRepository {
	var id uint
	return &MemoryStandingsRepository{
		mu:      &sync.Mutex{},
		nextID:  &id,
		entries: make(map[[2]uint]StandingsEntry),
		claims:  make(map[[3]uint]bool),
	}
}

func (r *MemoryStandingsRepository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// WithTransaction stages changes on copies of the maps and swaps them in on success.
func (r *MemoryStandingsRepository) WithTransaction(ctx context.Context, txFunc func(StandingsRepository) error) error {
	if r.inTx {
		return txFunc(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	nextID := *r.nextID
	staged := &MemoryStandingsRepository{
		mu:      r.mu,
		inTx:    true,
		nextID:  &nextID,
		entries: make(map[[2]uint]StandingsEntry, len(r.entries)),
		claims:  make(map[[3]uint]bool, len(r.claims)),
	}
	for k, v := range r.entries {
		staged.entries[k] = v
	}
	for k, v := range r.claims {
		staged.claims[k] = v
	}
	if err := txFunc(staged); err != nil {
		return err
	}
	r.entries, r.claims, *r.nextID = staged.entries, staged.claims, nextID
	return nil
}

func (r *MemoryStandingsRepository) EnsureEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error) {
	defer r.lock()()
	key := [2]uint{tournamentID, teamID}
	e, ok := r.entries[key]
	if !ok {
		*r.nextID++
		e = StandingsEntry{TournamentID: tournamentID, TeamID: teamID}
		e.ID = *r.nextID
		r.entries[key] = e
	}
	return &e, nil
}

func (r *MemoryStandingsRepository) LockEntry(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error) {
	defer r.lock()()
	e, ok := r.entries[[2]uint{tournamentID, teamID}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *MemoryStandingsRepository) SaveEntry(ctx context.Context, entry *StandingsEntry) error {
	defer r.lock()()
	if entry.ID == 0 {
		*r.nextID++
		entry.ID = *r.nextID
	}
	r.entries[[2]uint{entry.TournamentID, entry.TeamID}] = *entry
	return nil
}

func (r *MemoryStandingsRepository) ListEntries(ctx context.Context, tournamentID uint) ([]StandingsEntry, error) {
	defer r.lock()()
	out := []StandingsEntry{}
	for k, e := range r.entries {
		if k[0] == tournamentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *MemoryStandingsRepository) ClaimContribution(ctx context.Context, c *StandingsContribution) (bool, error) {
	defer r.lock()()
	key := [3]uint{c.TournamentID, c.TeamID, c.MatchID}
	if r.claims[key] {
		return false, nil
	}
	*r.nextID++
	c.ID = *r.nextID
	r.claims[key] = true
	return true, nil
}
