package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

func uintPtr(v uint) *uint { return &v }

func completed(matchID uint, first, second match.InningsTotal, winner *uint) match.MatchCompleted {
	return match.MatchCompleted{
		MatchID:      matchID,
		TournamentID: uintPtr(9),
		WinnerTeamID: winner,
		IsTie:        winner == nil,
		Innings:      [2]match.InningsTotal{first, second},
	}
}

func TestNetRunRate(t *testing.T) {
	assert.Equal(t, 1.5, NetRunRate(180, 120, 150, 120))
	assert.Equal(t, -1.5, NetRunRate(150, 120, 180, 120))
	// 20 off 2.1 overs is 9.2307..., not 20 / 2.1
	assert.Equal(t, 9.231, NetRunRate(20, 13, 0, 0))
	assert.Equal(t, 0.0, NetRunRate(0, 0, 0, 0))
	assert.Equal(t, -6.0, NetRunRate(0, 0, 6, 6))
}

// A win by runs: points, results and NRR come from that match alone.
func TestWinByRunsFirstMatch(t *testing.T) {
	evt := completed(1,
		match.InningsTotal{TeamID: 1, Runs: 180, Wickets: 7, LegalBalls: 120},
		match.InningsTotal{TeamID: 2, Runs: 150, Wickets: 10, LegalBalls: 120},
		uintPtr(1),
	)
	results := Split(evt)

	var winner, loser StandingsEntry
	ApplyResult(&winner, results[0])
	ApplyResult(&loser, results[1])

	assert.Equal(t, 1, winner.Played)
	assert.Equal(t, 1, winner.Won)
	assert.Equal(t, 0, winner.Lost)
	assert.Equal(t, PointsWin, winner.Points)
	assert.Equal(t, 1.5, winner.NetRunRate)

	assert.Equal(t, 1, loser.Played)
	assert.Equal(t, 0, loser.Won)
	assert.Equal(t, 1, loser.Lost)
	assert.Equal(t, PointsLoss, loser.Points)
	assert.Equal(t, -1.5, loser.NetRunRate)
	assert.Equal(t, 180, loser.RunsAgainst)
	assert.Equal(t, 120, loser.BallsBowled)
}

func TestSplitTie(t *testing.T) {
	evt := completed(1,
		match.InningsTotal{TeamID: 1, Runs: 140, LegalBalls: 120},
		match.InningsTotal{TeamID: 2, Runs: 140, Wickets: 3, LegalBalls: 120},
		nil,
	)
	results := Split(evt)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, Tie, r.Outcome)
	}
	var e StandingsEntry
	ApplyResult(&e, results[1])
	assert.Equal(t, PointsTie, e.Points)
	assert.Equal(t, 1, e.Tied)
	assert.Equal(t, 0.0, e.NetRunRate)
}

func TestNetRunRateAccumulatesAcrossMatches(t *testing.T) {
	var e StandingsEntry
	ApplyResult(&e, TeamResult{TeamID: 1, Outcome: Win, RunsFor: 180, BallsFaced: 120, RunsAgainst: 150, BallsBowled: 120})
	ApplyResult(&e, TeamResult{TeamID: 1, Outcome: Loss, RunsFor: 100, BallsFaced: 60, RunsAgainst: 101, BallsBowled: 90})

	// (280/30) - (251/35) = 9.3333 - 7.1714
	assert.Equal(t, 2.162, e.NetRunRate)
	assert.Equal(t, 2, e.Played)
	assert.Equal(t, PointsWin, e.Points)
}

func TestRank(t *testing.T) {
	entries := []StandingsEntry{
		{TeamID: 4, Points: 2, Won: 1, NetRunRate: 0.5, BallsFaced: 120},
		{TeamID: 1, Points: 4, Won: 2, NetRunRate: -0.2},
		{TeamID: 3, Points: 2, Won: 1, NetRunRate: 0.5, BallsFaced: 117},
		{TeamID: 2, Points: 2, Won: 0, Tied: 2, NetRunRate: 0.5},
		{TeamID: 5, Points: 2, Won: 1, NetRunRate: 1.1},
	}
	rows := Rank(entries)
	require.Len(t, rows, 5)

	var order []uint
	for _, r := range rows {
		order = append(order, r.TeamID)
	}
	assert.Equal(t, []uint{1, 5, 3, 4, 2}, order)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 5, rows[4].Position)
	assert.Equal(t, "19.3", rows[2].OversFaced)
	assert.Equal(t, "20.0", rows[3].OversFaced)

	assert.Empty(t, Rank(nil))
}
