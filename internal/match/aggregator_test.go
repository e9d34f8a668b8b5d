package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dismissal(kind DismissalType, player uint) (*DismissalType, *uint) {
	return &kind, &player
}

func TestBallInputValidate(t *testing.T) {
	caught, striker := dismissal(DismissalTypeCaught, 101)
	runOut, _ := dismissal(DismissalTypeRunOut, 101)
	stumped, _ := dismissal(DismissalTypeStumped, 101)
	unknown, _ := dismissal("hit_the_ball_twice", 101)

	tests := []struct {
		name string
		in   BallInput
		kind error
	}{
		{"dot", BallInput{}, nil},
		{"six", BallInput{Runs: 6, Six: true}, nil},
		{"seven off the bat", BallInput{Runs: 7}, ErrValidation},
		{"negative", BallInput{Runs: -1}, ErrValidation},
		{"seven with overthrows on a no-ball", BallInput{Runs: 7, NoBall: true}, nil},
		{"eight on a wide", BallInput{Runs: 8, Wide: true}, ErrValidation},
		{"wide and no-ball", BallInput{Wide: true, NoBall: true}, ErrValidation},
		{"bye and leg-bye", BallInput{Runs: 1, Bye: true, LegBye: true}, ErrValidation},
		{"bye off a wide", BallInput{Runs: 1, Wide: true, Bye: true}, ErrValidation},
		{"four flag with three runs", BallInput{Runs: 3, Four: true}, ErrValidation},
		{"six off a leg-bye", BallInput{Runs: 6, Six: true, LegBye: true}, ErrValidation},
		{"dismissal without wicket", BallInput{DismissalType: caught}, ErrValidation},
		{"wicket without type", BallInput{Wicket: true, DismissedPlayerID: striker}, ErrRefereeRuleViolation},
		{"wicket without player", BallInput{Wicket: true, DismissalType: caught}, ErrRefereeRuleViolation},
		{"unknown dismissal", BallInput{Wicket: true, DismissalType: unknown, DismissedPlayerID: striker}, ErrValidation},
		{"caught off a wide", BallInput{Wide: true, Wicket: true, DismissalType: caught, DismissedPlayerID: striker}, ErrRefereeRuleViolation},
		{"stumped off a wide", BallInput{Wide: true, Wicket: true, DismissalType: stumped, DismissedPlayerID: striker}, nil},
		{"stumped off a no-ball", BallInput{NoBall: true, Wicket: true, DismissalType: stumped, DismissedPlayerID: striker}, ErrRefereeRuleViolation},
		{"run out off a no-ball", BallInput{NoBall: true, Runs: 1, Wicket: true, DismissalType: runOut, DismissedPlayerID: striker}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.validate()
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

type aggregateFixture struct {
	sc      *TeamInningsScore
	striker *PlayerMatchStat
	bowler  *PlayerMatchStat
}

func newAggregateFixture() aggregateFixture {
	return aggregateFixture{
		sc:      &TeamInningsScore{TeamID: 1, InningsNumber: 1},
		striker: &PlayerMatchStat{PlayerID: 101, TeamID: 1, IsBatting: true, OnStrike: true},
		bowler:  &PlayerMatchStat{PlayerID: 201, TeamID: 2, IsBowling: true},
	}
}

func TestApplyBallWide(t *testing.T) {
	f := newAggregateFixture()
	applyBall(f.sc, f.striker, f.bowler, nil, BallInput{Wide: true, Runs: 2})

	assert.Equal(t, 3, f.sc.Runs)
	assert.Equal(t, 3, f.sc.WideRuns)
	assert.Equal(t, 3, f.sc.Extras)
	assert.Equal(t, 0, f.sc.LegalBalls)
	assert.Equal(t, 0, f.striker.BallsFaced)
	assert.Equal(t, 0, f.striker.Runs)
	assert.Equal(t, 3, f.bowler.RunsConceded)
	assert.Equal(t, 1, f.bowler.Wides)
	assert.Equal(t, 0, f.bowler.LegalBallsBowled)
}

func TestApplyBallNoBallHitForFour(t *testing.T) {
	f := newAggregateFixture()
	applyBall(f.sc, f.striker, f.bowler, nil, BallInput{NoBall: true, Runs: 4, Four: true})

	assert.Equal(t, 5, f.sc.Runs)
	assert.Equal(t, 1, f.sc.NoBallRuns)
	assert.Equal(t, 1, f.sc.Extras)
	assert.Equal(t, 1, f.sc.Fours)
	assert.Equal(t, 0, f.sc.LegalBalls)
	assert.Equal(t, 4, f.striker.Runs)
	assert.Equal(t, 1, f.striker.Fours)
	assert.Equal(t, 1, f.striker.BallsFaced)
	assert.Equal(t, 5, f.bowler.RunsConceded)
	assert.Equal(t, 1, f.bowler.NoBalls)
}

func TestApplyBallLegByeBoundary(t *testing.T) {
	f := newAggregateFixture()
	applyBall(f.sc, f.striker, f.bowler, nil, BallInput{LegBye: true, Runs: 4})

	assert.Equal(t, 4, f.sc.Runs)
	assert.Equal(t, 4, f.sc.LegByeRuns)
	assert.Equal(t, 1, f.sc.Fours, "team boundary counts on delivered runs")
	assert.Equal(t, 1, f.sc.LegalBalls)
	assert.Equal(t, 0, f.striker.Runs)
	assert.Equal(t, 0, f.striker.Fours, "striker boundary only off the bat")
	assert.Equal(t, 1, f.striker.BallsFaced)
	assert.Equal(t, 0, f.bowler.RunsConceded)
	assert.Equal(t, 1, f.bowler.LegalBallsBowled)
	assert.Equal(t, "0.1", f.bowler.OversBowled)
}

func TestApplyBallWicketCredit(t *testing.T) {
	caught, out := dismissal(DismissalTypeCaught, 101)
	f := newAggregateFixture()
	applyBall(f.sc, f.striker, f.bowler, f.striker, BallInput{Wicket: true, DismissalType: caught, DismissedPlayerID: out})

	assert.Equal(t, 1, f.sc.Wickets)
	assert.True(t, f.striker.IsOut)
	assert.False(t, f.striker.IsBatting)
	require.NotNil(t, f.striker.DismissedByBowlerID)
	assert.Equal(t, uint(201), *f.striker.DismissedByBowlerID)
	assert.Equal(t, 1, f.bowler.WicketsTaken)
	assert.Equal(t, 1, f.bowler.Dots)

	runOut, nonStrikerID := dismissal(DismissalTypeRunOut, 102)
	g := newAggregateFixture()
	nonStriker := &PlayerMatchStat{PlayerID: 102, TeamID: 1, IsBatting: true}
	applyBall(g.sc, g.striker, g.bowler, nonStriker, BallInput{Runs: 1, Wicket: true, DismissalType: runOut, DismissedPlayerID: nonStrikerID})

	assert.Equal(t, 1, g.sc.Wickets)
	assert.True(t, nonStriker.IsOut)
	assert.Nil(t, nonStriker.DismissedByBowlerID)
	assert.Equal(t, 0, g.bowler.WicketsTaken, "run outs are not the bowler's")
	assert.Equal(t, 1, g.striker.Runs)
}

func TestIsMaiden(t *testing.T) {
	over := func(bowler uint, charges ...int) []BallEvent {
		var out []BallEvent
		for _, c := range charges {
			out = append(out, BallEvent{InningsNumber: 1, OverNumber: 2, BowlerID: bowler, TotalRuns: c, IsLegal: true})
		}
		return out
	}
	assert.True(t, isMaiden(over(201, 0, 0, 0, 0, 0, 0)))
	assert.False(t, isMaiden(over(201, 0, 0, 1, 0, 0, 0)))

	byes := over(201, 0, 0, 0, 0, 0, 0)
	byes[2].IsBye, byes[2].Runs, byes[2].TotalRuns = true, 2, 2
	assert.True(t, isMaiden(byes), "byes do not spoil a maiden")

	earlier := append(over(202, 4), over(201, 0, 0, 0, 0, 0, 0)...)
	earlier[0].OverNumber = 1
	assert.True(t, isMaiden(earlier))
}
