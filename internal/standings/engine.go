package standings

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

type Outcome int

const (
	Loss Outcome = iota
	Win
	Tie
)

// TeamResult is one team's share of a completed match.
type TeamResult struct {
	TeamID      uint
	Outcome     Outcome
	RunsFor     int
	BallsFaced  int
	RunsAgainst int
	BallsBowled int
}

// Split turns a completion event into the two teams' results.
func Split(evt match.MatchCompleted) [2]TeamResult {
	first, second := evt.Innings[0], evt.Innings[1]
	var out [2]TeamResult
	for i, pair := range [2][2]match.InningsTotal{{first, second}, {second, first}} {
		us, them := pair[0], pair[1]
		r := TeamResult{
			TeamID:      us.TeamID,
			RunsFor:     us.Runs,
			BallsFaced:  us.LegalBalls,
			RunsAgainst: them.Runs,
			BallsBowled: them.LegalBalls,
		}
		switch {
		case evt.IsTie:
			r.Outcome = Tie
		case evt.WinnerTeamID != nil && *evt.WinnerTeamID == us.TeamID:
			r.Outcome = Win
		default:
			r.Outcome = Loss
		}
		out[i] = r
	}
	return out
}

// ApplyResult folds one match into an entry and recomputes its NRR.
func ApplyResult(e *StandingsEntry, r TeamResult) {
	e.Played++
	switch r.Outcome {
	case Win:
		e.Won++
		e.Points += PointsWin
	case Tie:
		e.Tied++
		e.Points += PointsTie
	default:
		e.Lost++
		e.Points += PointsLoss
	}
	e.RunsFor += r.RunsFor
	e.BallsFaced += r.BallsFaced
	e.RunsAgainst += r.RunsAgainst
	e.BallsBowled += r.BallsBowled
	e.NetRunRate = NetRunRate(e.RunsFor, e.BallsFaced, e.RunsAgainst, e.BallsBowled)
}

// NetRunRate is runs per over scored minus runs per over conceded, rounded
// half-up to 3 places. A side with no overs contributes 0.
func NetRunRate(runsFor, ballsFaced, runsAgainst, ballsBowled int) float64 {
	return perOver(runsFor, ballsFaced).Sub(perOver(runsAgainst, ballsBowled)).Round(3).InexactFloat64()
}

func perOver(runs, balls int) decimal.Decimal {
	if balls == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(runs)).
		Mul(decimal.NewFromInt(match.BallsPerOver)).
		DivRound(decimal.NewFromInt(int64(balls)), 12)
}

// Rank orders entries by points, then NRR, then wins, then team id.
func Rank(entries []StandingsEntry) []Row {
	sorted := append([]StandingsEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.NetRunRate != b.NetRunRate {
			return a.NetRunRate > b.NetRunRate
		}
		if a.Won != b.Won {
			return a.Won > b.Won
		}
		return a.TeamID < b.TeamID
	})
	rows := make([]Row, 0, len(sorted))
	for i, e := range sorted {
		rows = append(rows, Row{
			Position:    i + 1,
			TeamID:      e.TeamID,
			Played:      e.Played,
			Won:         e.Won,
			Lost:        e.Lost,
			Tied:        e.Tied,
			Points:      e.Points,
			RunsFor:     e.RunsFor,
			OversFaced:  match.FormatOvers(e.BallsFaced),
			RunsAgainst: e.RunsAgainst,
			OversBowled: match.FormatOvers(e.BallsBowled),
			NetRunRate:  e.NetRunRate,
		})
	}
	return rows
}
