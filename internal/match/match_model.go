package match

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusTossPending    MatchStatus = "toss_pending"
	StatusTossCompleted  MatchStatus = "toss_completed"
	StatusLive           MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
	StatusMatchCancelled MatchStatus = "cancelled" // set externally only
)

type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// DismissalType for cricket wickets
type DismissalType string

const (
	DismissalTypeBowled      DismissalType = "bowled"
	DismissalTypeCaught      DismissalType = "caught"
	DismissalTypeLBW         DismissalType = "lbw"
	DismissalTypeRunOut      DismissalType = "run_out"
	DismissalTypeStumped     DismissalType = "stumped"
	DismissalTypeHitWicket   DismissalType = "hit_wicket"
	DismissalTypeHandledBall DismissalType = "handled_ball"
	DismissalTypeObstructing DismissalType = "obstructing_the_field"
	DismissalTypeTimedOut    DismissalType = "timed_out"
	DismissalTypeRetiredOut  DismissalType = "retired_out"
)

// Match is one fixture between two teams. Immutable once completed.
type Match struct {
	gorm.Model
	TournamentID    *uint       `json:"tournament_id,omitempty" gorm:"index"`
	RoundNumber     int         `json:"round_number,omitempty"`
	TeamAID         uint        `json:"team_a_id" gorm:"index;not null"`
	TeamAName       string      `json:"team_a_name"`
	TeamBID         uint        `json:"team_b_id" gorm:"index;not null"`
	TeamBName       string      `json:"team_b_name"`
	OversPerInnings int         `json:"overs_per_innings" gorm:"not null;default:20"`
	Status          MatchStatus `json:"status" gorm:"index;default:'toss_pending'"`

	// Toss Information
	TossWinnerTeamID *uint        `json:"toss_winner_team_id,omitempty"`
	TossDecision     TossDecision `json:"toss_decision,omitempty"`

	// Current assignment. Swapped when the first innings ends.
	BattingTeamID  *uint `json:"batting_team_id,omitempty"`
	BowlingTeamID  *uint `json:"bowling_team_id,omitempty"`
	CurrentInnings int   `json:"current_innings"` // 0 before start, then 1 or 2

	// Match Result
	WinningTeamID *uint      `json:"winning_team_id,omitempty" gorm:"index"`
	IsTie         bool       `json:"is_tie" gorm:"default:false"`
	ResultSummary string     `json:"result_summary,omitempty" gorm:"type:text"` // e.g., "Team A won by 5 wickets"
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// MatchPlayer is one Playing XI nomination, as supplied by the fixture owner.
type MatchPlayer struct {
	gorm.Model
	MatchID      uint   `json:"match_id" gorm:"not null;uniqueIndex:idx_match_player_xi"`
	TeamID       uint   `json:"team_id" gorm:"index;not null"`
	PlayerID     uint   `json:"player_id" gorm:"not null;uniqueIndex:idx_match_player_xi"`
	PlayerName   string `json:"player_name"`
	Role         string `json:"role,omitempty"`          // e.g., "captain", "wicket_keeper"
	BattingOrder *int   `json:"batting_order,omitempty"` // Nullable, 1-indexed
}

// TeamInningsScore is one team's batting total in a match.
type TeamInningsScore struct {
	gorm.Model
	MatchID       uint   `json:"match_id" gorm:"not null;uniqueIndex:idx_match_team_innings"`
	TeamID        uint   `json:"team_id" gorm:"not null;uniqueIndex:idx_match_team_innings"`
	InningsNumber int    `json:"innings_number" gorm:"not null"`
	Runs          int    `json:"runs" gorm:"default:0"`
	Wickets       int    `json:"wickets" gorm:"default:0"`
	LegalBalls    int    `json:"legal_balls" gorm:"default:0"`
	Overs         string `json:"overs" gorm:"default:'0.0'"` // cricket notation, 13 legal balls -> "2.1"

	// Breakdown of Extras
	Extras      int `json:"extras" gorm:"default:0"`
	WideRuns    int `json:"wide_runs" gorm:"default:0"`
	NoBallRuns  int `json:"no_ball_runs" gorm:"default:0"`
	ByeRuns     int `json:"bye_runs" gorm:"default:0"`
	LegByeRuns  int `json:"leg_bye_runs" gorm:"default:0"`
	Fours       int `json:"fours" gorm:"default:0"`
	Sixes       int `json:"sixes" gorm:"default:0"`

	RunRate     float64 `json:"run_rate" gorm:"default:0"`
	IsBatting   bool    `json:"is_batting" gorm:"default:false"`
	IsFinalized bool    `json:"is_finalized" gorm:"default:false"`
}

// BallEvent records every delivery. THIS IS THE AUDIT SOURCE OF LIVE SCORING.
// Rows are never updated; Sequence is the ordering and uniqueness key.
type BallEvent struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	MatchID       uint      `json:"match_id" gorm:"not null;uniqueIndex:idx_match_sequence"`
	Sequence      uint      `json:"sequence" gorm:"not null;uniqueIndex:idx_match_sequence"`
	InningsNumber int       `json:"innings_number" gorm:"not null"`
	BattingTeamID uint      `json:"batting_team_id" gorm:"index;not null"`
	OverNumber    int       `json:"over_number" gorm:"not null"`  // continuous across innings, 1-indexed
	BallInOver    int       `json:"ball_in_over" gorm:"not null"` // legal slot 1..6, shared by extras

	StrikerID    uint `json:"striker_id" gorm:"index;not null"`
	NonStrikerID uint `json:"non_striker_id" gorm:"index;not null"`
	BowlerID     uint `json:"bowler_id" gorm:"index;not null"`

	Runs        int  `json:"runs"`         // run or hit, excluding the wide/no-ball penalty
	PenaltyRuns int  `json:"penalty_runs"` // 1 on wide and no-ball
	TotalRuns   int  `json:"total_runs"`   // credited to the batting team
	IsWide      bool `json:"is_wide"`
	IsNoBall    bool `json:"is_no_ball"`
	IsBye       bool `json:"is_bye"`
	IsLegBye    bool `json:"is_leg_bye"`
	IsFour      bool `json:"is_four"`
	IsSix       bool `json:"is_six"`
	IsLegal     bool `json:"is_legal"`

	IsWicket          bool           `json:"is_wicket"`
	DismissalType     *DismissalType `json:"dismissal_type,omitempty"`
	DismissedPlayerID *uint          `json:"dismissed_player_id,omitempty"`

	CompletesOver bool   `json:"completes_over"`
	StrikeSwapped bool   `json:"strike_swapped"`
	Note          string `json:"note,omitempty" gorm:"type:text"`
	RecordedBy    *uint  `json:"recorded_by,omitempty"`
}

// PlayerMatchStat tracks one player's figures in one match plus the crease flags.
type PlayerMatchStat struct {
	gorm.Model
	MatchID  uint `json:"match_id" gorm:"not null;uniqueIndex:idx_match_player_stat"`
	PlayerID uint `json:"player_id" gorm:"not null;uniqueIndex:idx_match_player_stat"`
	TeamID   uint `json:"team_id" gorm:"index;not null"`

	// Batting Stats
	Runs                int            `json:"runs" gorm:"default:0"`
	BallsFaced          int            `json:"balls_faced" gorm:"default:0"`
	Fours               int            `json:"fours" gorm:"default:0"`
	Sixes               int            `json:"sixes" gorm:"default:0"`
	StrikeRate          float64        `json:"strike_rate" gorm:"default:0"`
	IsOut               bool           `json:"is_out" gorm:"default:false"`
	HowOut              *DismissalType `json:"how_out,omitempty"`
	DismissedByBowlerID *uint          `json:"dismissed_by_bowler_id,omitempty"`
	BattingPosition     int            `json:"batting_position" gorm:"default:0"` // order of arrival, 0 if yet to bat

	// Bowling Stats
	LegalBallsBowled int     `json:"legal_balls_bowled" gorm:"default:0"`
	OversBowled      string  `json:"overs_bowled" gorm:"default:'0.0'"`
	RunsConceded     int     `json:"runs_conceded" gorm:"default:0"`
	WicketsTaken     int     `json:"wickets_taken" gorm:"default:0"`
	Maidens          int     `json:"maidens" gorm:"default:0"`
	Dots             int     `json:"dots" gorm:"default:0"`
	Wides            int     `json:"wides" gorm:"default:0"`
	NoBalls          int     `json:"no_balls" gorm:"default:0"`
	EconomyRate      float64 `json:"economy_rate" gorm:"default:0"`

	IsBatting bool `json:"is_batting" gorm:"default:false"`
	IsBowling bool `json:"is_bowling" gorm:"default:false"`
	OnStrike  bool `json:"on_strike" gorm:"default:false"`
}

const EventMatchCompleted = "match_completed"

// MatchEvent is an outbox record written in the same transaction as the state
// change it describes. DeliveredAt stays nil until the consumer has applied it.
type MatchEvent struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time      `json:"created_at"`
	MatchID     uint           `json:"match_id" gorm:"not null;uniqueIndex:idx_match_event_type"`
	Type        string         `json:"type" gorm:"not null;uniqueIndex:idx_match_event_type"`
	Payload     datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty" gorm:"index"`
	Attempts    int            `json:"attempts" gorm:"default:0"`
	LastError   string         `json:"last_error,omitempty" gorm:"type:text"`
}

// InningsTotal is the final line of one team's innings as carried by MatchCompleted.
type InningsTotal struct {
	TeamID     uint `json:"team_id"`
	Runs       int  `json:"runs"`
	Wickets    int  `json:"wickets"`
	LegalBalls int  `json:"legal_balls"`
}

// MatchCompleted is emitted once per match when complete_match commits.
type MatchCompleted struct {
	MatchID      uint            `json:"match_id"`
	TournamentID *uint           `json:"tournament_id,omitempty"`
	WinnerTeamID *uint           `json:"winner_team_id,omitempty"`
	IsTie        bool            `json:"is_tie"`
	ResultText   string          `json:"result_text"`
	Innings      [2]InningsTotal `json:"innings"` // batting order
	CompletedAt  time.Time       `json:"completed_at"`
}
