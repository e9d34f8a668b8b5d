package standings

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

var ErrInvalidInput = errors.New("invalid input")

// Service owns tournament tables. It is the match package's CompletionSink.
type Service struct {
	repo   StandingsRepository
	logger *zap.Logger
}

func NewService(repo StandingsRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

var _ match.CompletionSink = (*Service)(nil)

// HandleMatchCompleted applies a finished match to its tournament table.
// Delivering the same event again changes nothing.
func (s *Service) HandleMatchCompleted(ctx context.Context, evt match.MatchCompleted) error {
	if evt.TournamentID == nil {
		s.logger.Debug("friendly match, standings untouched", zap.Uint("match_id", evt.MatchID))
		return nil
	}
	tournamentID := *evt.TournamentID
	if evt.Innings[0].TeamID == 0 || evt.Innings[1].TeamID == 0 {
		return fmt.Errorf("%w: match %d carries no innings teams", ErrInvalidInput, evt.MatchID)
	}

	applied := 0
	err := s.repo.WithTransaction(ctx, func(tx StandingsRepository) error {
		for _, r := range Split(evt) {
			claimed, err := tx.ClaimContribution(ctx, &StandingsContribution{
				TournamentID: tournamentID,
				TeamID:       r.TeamID,
				MatchID:      evt.MatchID,
			})
			if err != nil {
				return fmt.Errorf("claim contribution: %w", err)
			}
			if !claimed {
				continue
			}
			if _, err := tx.EnsureEntry(ctx, tournamentID, r.TeamID); err != nil {
				return fmt.Errorf("ensure entry: %w", err)
			}
			entry, err := tx.LockEntry(ctx, tournamentID, r.TeamID)
			if err != nil {
				return fmt.Errorf("lock entry: %w", err)
			}
			if entry == nil {
				return fmt.Errorf("entry for team %d vanished", r.TeamID)
			}
			ApplyResult(entry, r)
			if err := tx.SaveEntry(ctx, entry); err != nil {
				return fmt.Errorf("save entry: %w", err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if applied == 0 {
		s.logger.Info("match already counted", zap.Uint("match_id", evt.MatchID), zap.Uint("tournament_id", tournamentID))
		return nil
	}
	s.logger.Info("standings updated",
		zap.Uint("match_id", evt.MatchID),
		zap.Uint("tournament_id", tournamentID),
		zap.Int("teams", applied),
	)
	return nil
}

// Enroll gives a team a zeroed line in the tournament table.
func (s *Service) Enroll(ctx context.Context, tournamentID, teamID uint) (*StandingsEntry, error) {
	if tournamentID == 0 || teamID == 0 {
		return nil, fmt.Errorf("%w: tournament and team ids are required", ErrInvalidInput)
	}
	entry, err := s.repo.EnsureEntry(ctx, tournamentID, teamID)
	if err != nil {
		return nil, fmt.Errorf("enroll team %d: %w", teamID, err)
	}
	return entry, nil
}

// GetTable returns the ranked table. An unknown tournament yields no rows.
func (s *Service) GetTable(ctx context.Context, tournamentID uint) ([]Row, error) {
	entries, err := s.repo.ListEntries(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	return Rank(entries), nil
}
