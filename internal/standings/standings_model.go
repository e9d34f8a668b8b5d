package standings

import (
	"time"

	"gorm.io/gorm"
)

// Points awarded per result.
const (
	PointsWin  = 2
	PointsTie  = 1
	PointsLoss = 0
)

// StandingsEntry is one team's line in a tournament table. Only completed
// matches change it.
type StandingsEntry struct {
	gorm.Model
	TournamentID uint    `json:"tournament_id" gorm:"not null;uniqueIndex:idx_standings_tournament_team"`
	TeamID       uint    `json:"team_id" gorm:"not null;uniqueIndex:idx_standings_tournament_team"`
	Played       int     `json:"played" gorm:"default:0"`
	Won          int     `json:"won" gorm:"default:0"`
	Lost         int     `json:"lost" gorm:"default:0"`
	Tied         int     `json:"tied" gorm:"default:0"`
	Points       int     `json:"points" gorm:"default:0"`
	RunsFor      int     `json:"runs_for" gorm:"default:0"`
	BallsFaced   int     `json:"balls_faced" gorm:"default:0"`
	RunsAgainst  int     `json:"runs_against" gorm:"default:0"`
	BallsBowled  int     `json:"balls_bowled" gorm:"default:0"`
	NetRunRate   float64 `json:"net_run_rate" gorm:"type:decimal(8,3);default:0"`
}

// StandingsContribution marks that a match has been counted for a team.
// Its unique key is what makes completion handling safe to repeat.
type StandingsContribution struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	TournamentID uint      `json:"tournament_id" gorm:"not null;uniqueIndex:idx_contribution_key"`
	TeamID       uint      `json:"team_id" gorm:"not null;uniqueIndex:idx_contribution_key"`
	MatchID      uint      `json:"match_id" gorm:"not null;uniqueIndex:idx_contribution_key"`
}

// Row is one ranked line of the table as served to clients.
type Row struct {
	Position    int     `json:"position"`
	TeamID      uint    `json:"team_id"`
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	Lost        int     `json:"lost"`
	Tied        int     `json:"tied"`
	Points      int     `json:"points"`
	RunsFor     int     `json:"runs_for"`
	OversFaced  string  `json:"overs_faced"`
	RunsAgainst int     `json:"runs_against"`
	OversBowled string  `json:"overs_bowled"`
	NetRunRate  float64 `json:"net_run_rate"`
}

func Models() []interface{} {
	return []interface{}{&StandingsEntry{}, &StandingsContribution{}}
}
