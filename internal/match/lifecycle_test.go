package match

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lions  uint = 1
	tigers uint = 2
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// newFixture is a tossed-but-not-started shell: Lions 101-111, Tigers 201-211.
func newFixture(overs int) *MatchState {
	st := &MatchState{Match: Match{
		TeamAID:         lions,
		TeamAName:       "Lions",
		TeamBID:         tigers,
		TeamBName:       "Tigers",
		OversPerInnings: overs,
		Status:          StatusTossPending,
	}}
	st.Match.ID = 7
	for i := uint(1); i <= 11; i++ {
		st.Players = append(st.Players,
			MatchPlayer{MatchID: 7, TeamID: lions, PlayerID: 100 + i, PlayerName: fmt.Sprintf("Lion %d", i)},
			MatchPlayer{MatchID: 7, TeamID: tigers, PlayerID: 200 + i, PlayerName: fmt.Sprintf("Tiger %d", i)},
		)
	}
	return st
}

// liveState has Lions batting with 101 on strike, 102 at the other end and 201 bowling.
func liveState(t *testing.T, overs int) *MatchState {
	t.Helper()
	st := newFixture(overs)
	require.NoError(t, st.RecordToss(lions, TossBat))
	require.NoError(t, st.Start(testNow))
	require.NoError(t, st.SetOpeningBatters(101, 102))
	require.NoError(t, st.SelectBowler(201))
	return st
}

func bowl(t *testing.T, st *MatchState, in BallInput) *BallResult {
	t.Helper()
	res, err := st.RecordBall(in, nil, testNow)
	require.NoError(t, err)
	return res
}

func onStrike(st *MatchState) uint {
	s, _ := st.crease(st.battingTeam())
	if s == nil {
		return 0
	}
	return s.PlayerID
}

func bowledOut(player uint) BallInput {
	kind := DismissalTypeBowled
	return BallInput{Wicket: true, DismissalType: &kind, DismissedPlayerID: &player}
}

func TestRecordToss(t *testing.T) {
	st := newFixture(20)
	err := st.RecordToss(99, TossBat)
	assert.ErrorIs(t, err, ErrValidation)
	err = st.RecordToss(lions, "field")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, st.RecordToss(lions, TossBowl))
	assert.Equal(t, StatusTossCompleted, st.Match.Status)
	assert.Equal(t, tigers, *st.Match.BattingTeamID)
	assert.Equal(t, lions, *st.Match.BowlingTeamID)

	err = st.RecordToss(tigers, TossBat)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestStartMatch(t *testing.T) {
	st := newFixture(20)
	assert.ErrorIs(t, st.Start(testNow), ErrIllegalTransition, "no toss yet")

	require.NoError(t, st.RecordToss(tigers, TossBat))
	require.NoError(t, st.Start(testNow))
	assert.Equal(t, StatusLive, st.Match.Status)
	assert.Equal(t, 1, st.Match.CurrentInnings)
	require.Len(t, st.Scores, 2)
	assert.True(t, st.score(tigers).IsBatting)
	assert.Equal(t, 1, st.score(tigers).InningsNumber)
	assert.Equal(t, 2, st.score(lions).InningsNumber)
	assert.Len(t, st.Stats, 22)

	// starting again is a no-op
	require.NoError(t, st.Start(testNow.Add(time.Hour)))
	assert.Equal(t, testNow, *st.Match.StartedAt)
}

func TestStartNeedsBothElevens(t *testing.T) {
	st := newFixture(20)
	var lionsOnly []MatchPlayer
	for _, p := range st.Players {
		if p.TeamID == lions {
			lionsOnly = append(lionsOnly, p)
		}
	}
	st.Players = lionsOnly
	require.NoError(t, st.RecordToss(lions, TossBat))
	assert.ErrorIs(t, st.Start(testNow), ErrIllegalTransition)
}

func TestCommandsRejectedBeforeLive(t *testing.T) {
	st := newFixture(20)
	_, err := st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.ErrorIs(t, st.SetOpeningBatters(101, 102), ErrIllegalTransition)
	assert.ErrorIs(t, st.SelectBowler(201), ErrIllegalTransition)
	assert.ErrorIs(t, st.EndInnings(), ErrIllegalTransition)
	_, err = st.Complete(testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	st.Match.Status = StatusMatchCancelled
	_, err = st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestOpeningBattersEligibility(t *testing.T) {
	st := newFixture(20)
	require.NoError(t, st.RecordToss(lions, TossBat))
	require.NoError(t, st.Start(testNow))

	assert.ErrorIs(t, st.SetOpeningBatters(101, 101), ErrValidation)
	assert.ErrorIs(t, st.SetOpeningBatters(101, 201), ErrPlayerNotEligible, "fielder cannot open")
	assert.ErrorIs(t, st.SetOpeningBatters(101, 999), ErrPlayerNotEligible)
	require.NoError(t, st.SetOpeningBatters(101, 102))
	assert.ErrorIs(t, st.SetOpeningBatters(103, 104), ErrIllegalTransition)
	assert.ErrorIs(t, st.SelectBowler(101), ErrPlayerNotEligible, "batting side cannot bowl")
}

func TestRecordBallNeedsBowler(t *testing.T) {
	st := newFixture(20)
	require.NoError(t, st.RecordToss(lions, TossBat))
	require.NoError(t, st.Start(testNow))
	require.NoError(t, st.SetOpeningBatters(101, 102))

	_, err := st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// naming the bowler on the delivery works too
	res := bowl(t, st, BallInput{BowlerID: 201})
	assert.Equal(t, uint(201), res.Ball.BowlerID)
	assert.True(t, st.stat(201).IsBowling)
}

// Scenario A
func TestFullInningsTotals(t *testing.T) {
	st := liveState(t, 20)
	nextIn := uint(103)
	for i := 0; i < 120; i++ {
		var in BallInput
		switch {
		case i%20 == 19:
			in = bowledOut(onStrike(st))
		case i%10 == 0:
			in = BallInput{Runs: 4, Four: true}
		default:
			in = BallInput{Runs: 1}
		}
		res := bowl(t, st, in)

		sc := st.score(lions)
		replay := ReplayInnings(st.Balls, 1, nil)
		require.Equal(t, replay.Runs, sc.Runs, "runs after ball %d", i)
		require.Equal(t, replay.LegalBalls, sc.LegalBalls)
		require.Equal(t, replay.Wickets, sc.Wickets)

		if in.Wicket && i < 119 {
			require.NoError(t, st.SetNextBatter(nextIn))
			nextIn++
		}
		if res.OverCompleted && i < 119 {
			require.True(t, res.NeedsBowlerSelection)
			nextOver := (i + 1) / 6
			bowler := uint(201)
			if nextOver%2 == 1 {
				bowler = 202
			}
			require.NoError(t, st.SelectBowler(bowler))
		}
	}

	sc := st.score(lions)
	assert.Equal(t, 150, sc.Runs)
	assert.Equal(t, 6, sc.Wickets)
	assert.Equal(t, 120, sc.LegalBalls)
	assert.Equal(t, "20.0", sc.Overs)
	assert.Equal(t, 7.5, sc.RunRate)
	assert.Equal(t, 0, sc.Extras)

	_, err := st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition, "overs exhausted")
	assert.Equal(t, "10.0", st.stat(201).OversBowled)
	assert.Equal(t, "10.0", st.stat(202).OversBowled)
}

// Scenario B
func TestWideDoesNotAdvanceBall(t *testing.T) {
	st := liveState(t, 20)
	for i := 0; i < 15; i++ {
		res := bowl(t, st, BallInput{})
		if res.OverCompleted {
			require.NoError(t, st.SelectBowler([]uint{202, 201}[(i/BallsPerOver)%2]))
		}
	}
	sc := st.score(lions)
	before := *sc

	res := bowl(t, st, BallInput{Wide: true})
	assert.Equal(t, 3, res.Ball.OverNumber)
	assert.Equal(t, 4, res.Ball.BallInOver)
	assert.False(t, res.Ball.IsLegal)
	assert.Equal(t, before.Runs+1, sc.Runs)
	assert.Equal(t, before.Extras+1, sc.Extras)
	assert.Equal(t, before.LegalBalls, sc.LegalBalls)

	next := bowl(t, st, BallInput{})
	assert.Equal(t, 3, next.Ball.OverNumber)
	assert.Equal(t, 4, next.Ball.BallInOver, "the legal ball takes the slot the wide did not use")
	assert.Greater(t, next.Ball.Sequence, res.Ball.Sequence)
}

// Scenario C
func TestOverEndingOnOddRunsSwapsStrike(t *testing.T) {
	st := liveState(t, 20)
	for i := 0; i < 5; i++ {
		bowl(t, st, BallInput{})
	}
	require.Equal(t, uint(101), onStrike(st))

	res := bowl(t, st, BallInput{Runs: 3})
	assert.True(t, res.OverCompleted)
	assert.True(t, res.StrikeSwapped)
	assert.Equal(t, uint(102), onStrike(st))
	assert.True(t, res.NeedsBowlerSelection)
}

func TestOverNeedsSixLegalBalls(t *testing.T) {
	st := liveState(t, 20)
	seq := []BallInput{
		{Wide: true},
		{},
		{NoBall: true},
		{},
		{Wide: true, Runs: 1},
		{},
		{},
		{},
	}
	for _, in := range seq {
		res := bowl(t, st, in)
		assert.False(t, res.OverCompleted)
		assert.False(t, res.NeedsBowlerSelection)
	}
	assert.Equal(t, 5, st.score(lions).LegalBalls)

	res := bowl(t, st, BallInput{})
	assert.True(t, res.OverCompleted)
	assert.Equal(t, 1, res.Ball.OverNumber)
	assert.Equal(t, 6, res.Ball.BallInOver)
	assert.True(t, res.NeedsBowlerSelection)
	assert.True(t, ProjectScoreboard(st).NeedsBowlerSelection)

	_, err := st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition, "bowler must be chosen first")

	err = st.SelectBowler(201)
	assert.ErrorIs(t, err, ErrRefereeRuleViolation)
	assert.ErrorIs(t, st.CheckBowler(201), ErrRefereeRuleViolation)

	require.NoError(t, st.SelectBowler(202))
	assert.False(t, ProjectScoreboard(st).NeedsBowlerSelection)
	next := bowl(t, st, BallInput{})
	assert.Equal(t, Coordinate{Over: 2, Ball: 1}, Coordinate{Over: next.Ball.OverNumber, Ball: next.Ball.BallInOver})

	// still the most recently completed over's bowler mid-way through the next
	assert.ErrorIs(t, st.CheckBowler(201), ErrRefereeRuleViolation)
}

func TestBowlerCannotChangeMidOver(t *testing.T) {
	st := liveState(t, 20)
	bowl(t, st, BallInput{})
	_, err := st.RecordBall(BallInput{BowlerID: 203}, nil, testNow)
	assert.ErrorIs(t, err, ErrRefereeRuleViolation)
	assert.Len(t, st.Balls, 1)
}

func TestWicketOnLastBallOfOver(t *testing.T) {
	st := liveState(t, 20)
	for i := 0; i < 5; i++ {
		bowl(t, st, BallInput{})
	}
	res := bowl(t, st, bowledOut(101))
	assert.True(t, res.OverCompleted)
	assert.False(t, res.StrikeSwapped)
	assert.Equal(t, uint(0), onStrike(st), "striker's end is vacant")

	require.NoError(t, st.SetNextBatter(103))
	assert.Equal(t, uint(103), onStrike(st))
	assert.ErrorIs(t, st.SetNextBatter(104), ErrIllegalTransition, "no vacancy")
	assert.ErrorIs(t, st.SetNextBatter(101), ErrIllegalTransition)
}

func TestRunOutOfNonStriker(t *testing.T) {
	st := liveState(t, 20)
	kind := DismissalTypeRunOut
	out := uint(102)
	res := bowl(t, st, BallInput{Runs: 1, Wicket: true, DismissalType: &kind, DismissedPlayerID: &out})
	assert.False(t, res.StrikeSwapped)
	assert.Equal(t, uint(101), onStrike(st))
	assert.Equal(t, 1, st.stat(101).Runs)
	assert.Equal(t, 0, st.stat(201).WicketsTaken)

	require.NoError(t, st.SetNextBatter(103))
	assert.Equal(t, uint(101), onStrike(st))
	_, non := st.crease(lions)
	assert.Equal(t, uint(103), non.PlayerID)
}

func TestRejectedBallChangesNothing(t *testing.T) {
	st := liveState(t, 20)
	bowl(t, st, BallInput{Runs: 2})
	before := st.Clone()

	_, err := st.RecordBall(BallInput{Runs: 9}, nil, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = st.RecordBall(BallInput{Runs: 1, StrikerID: 999}, nil, testNow)
	assert.ErrorIs(t, err, ErrPlayerNotEligible)

	_, err = st.RecordBall(BallInput{Runs: 1, StrikerID: 105}, nil, testNow)
	assert.ErrorIs(t, err, ErrRefereeRuleViolation, "in the XI but not at the crease")

	_, err = st.RecordBall(bowledOut(105), nil, testNow)
	assert.ErrorIs(t, err, ErrRefereeRuleViolation)

	_, err = st.RecordBall(BallInput{Runs: 1, BowlerID: 101}, nil, testNow)
	assert.Error(t, err)

	assert.Equal(t, before.Balls, st.Balls)
	assert.Equal(t, *before.score(lions), *st.score(lions))
	for _, s := range before.Stats {
		assert.Equal(t, *s, *st.stat(s.PlayerID))
	}
}

func TestStrikerOverrideCrossesBatters(t *testing.T) {
	st := liveState(t, 20)
	res := bowl(t, st, BallInput{Runs: 2, StrikerID: 102})
	assert.Equal(t, uint(102), res.Ball.StrikerID)
	assert.Equal(t, uint(101), res.Ball.NonStrikerID)
	assert.Equal(t, 2, st.stat(102).Runs)
	assert.Equal(t, uint(102), onStrike(st))
}

func TestMaidenAndDots(t *testing.T) {
	st := liveState(t, 20)
	for i := 0; i < 6; i++ {
		bowl(t, st, BallInput{})
	}
	assert.Equal(t, 1, st.stat(201).Maidens)
	assert.Equal(t, 6, st.stat(201).Dots)
	assert.False(t, st.stat(201).IsBowling)

	require.NoError(t, st.SelectBowler(202))
	bowl(t, st, BallInput{Wide: true})
	for i := 0; i < 6; i++ {
		bowl(t, st, BallInput{})
	}
	assert.Equal(t, 0, st.stat(202).Maidens, "a wide costs the bowler")
}

func TestEndInningsSwapsSides(t *testing.T) {
	st := liveState(t, 2)
	bowl(t, st, BallInput{Runs: 4})
	require.NoError(t, st.EndInnings())

	assert.Equal(t, 2, st.Match.CurrentInnings)
	assert.Equal(t, tigers, st.battingTeam())
	assert.Equal(t, lions, st.bowlingTeam())
	assert.True(t, st.score(lions).IsFinalized)
	assert.False(t, st.score(lions).IsBatting)
	assert.True(t, st.score(tigers).IsBatting)
	for _, s := range st.Stats {
		assert.False(t, s.IsBatting || s.OnStrike || s.IsBowling, "player %d still flagged", s.PlayerID)
	}
	assert.Equal(t, StatusLive, st.Match.Status)

	require.NoError(t, st.SetOpeningBatters(201, 202))
	require.NoError(t, st.SelectBowler(101))
	res := bowl(t, st, BallInput{Runs: 1})
	assert.Equal(t, 3, res.Ball.OverNumber, "over numbers continue")
	assert.Equal(t, 2, res.Ball.InningsNumber)

	sb := ProjectScoreboard(st)
	require.NotNil(t, sb.Target)
	assert.Equal(t, 5, *sb.Target)
	require.NotNil(t, sb.Chase)
	assert.Equal(t, 4, sb.Chase.RunsRequired)
	assert.Equal(t, 11, sb.Chase.BallsRemaining)
	assert.Equal(t, "0.1", sb.Chase.FirstInningsOvers)
	assert.Equal(t, 1, sb.Timeline[1].Over, "second innings shown from over 1")

	require.NoError(t, st.EndInnings())
	assert.Equal(t, StatusLive, st.Match.Status, "waits for complete_match")
	assert.ErrorIs(t, st.EndInnings(), ErrIllegalTransition)
}

func TestChaseWonByWickets(t *testing.T) {
	st := liveState(t, 2)
	for _, r := range []int{4, 0, 1, 0, 6, 0} {
		bowl(t, st, BallInput{Runs: r})
	}
	require.NoError(t, st.SelectBowler(202))
	for i := 0; i < 6; i++ {
		bowl(t, st, BallInput{})
	}
	res, err := st.RecordBall(BallInput{}, nil, testNow)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, 11, st.score(lions).Runs)

	_, err = st.Complete(testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition, "second innings has not started")

	require.NoError(t, st.EndInnings())
	require.NoError(t, st.SetOpeningBatters(201, 202))
	require.NoError(t, st.SelectBowler(101))
	bowl(t, st, BallInput{Runs: 6, Six: true})
	last := bowl(t, st, BallInput{Runs: 6, Six: true})
	assert.True(t, last.InningsComplete)
	assert.Equal(t, "target reached; complete the match", last.InningsCompleteWhy)

	_, err = st.RecordBall(BallInput{}, nil, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	evt, err := st.Complete(testNow)
	require.NoError(t, err)
	require.NotNil(t, evt.WinnerTeamID)
	assert.Equal(t, tigers, *evt.WinnerTeamID)
	assert.Equal(t, "Tigers won by 10 wickets", evt.ResultText)
	assert.Equal(t, StatusMatchCompleted, st.Match.Status)
	assert.Equal(t, InningsTotal{TeamID: lions, Runs: 11, LegalBalls: 12}, evt.Innings[0])
	assert.Equal(t, InningsTotal{TeamID: tigers, Runs: 12, LegalBalls: 2}, evt.Innings[1])

	require.Len(t, st.newEvents, 1)
	assert.Equal(t, EventMatchCompleted, st.newEvents[0].Type)
	var decoded MatchCompleted
	require.NoError(t, json.Unmarshal(st.newEvents[0].Payload, &decoded))
	assert.Equal(t, *evt, decoded)

	_, err = st.Complete(testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition, "completed matches are immutable")
}

// Scenario D
func TestCompleteChaseByWicketMargin(t *testing.T) {
	st := liveState(t, 20)
	st.Match.CurrentInnings = 2
	first, second := st.score(lions), st.score(tigers)
	first.Runs, first.Wickets, first.LegalBalls, first.IsBatting, first.IsFinalized = 180, 7, 120, false, true
	second.Runs, second.Wickets, second.LegalBalls, second.IsBatting = 181, 4, 117, true

	evt, err := st.Complete(testNow)
	require.NoError(t, err)
	require.NotNil(t, evt.WinnerTeamID)
	assert.Equal(t, tigers, *evt.WinnerTeamID)
	assert.False(t, evt.IsTie)
	assert.Equal(t, "Tigers won by 6 wickets", evt.ResultText)
	assert.True(t, second.IsFinalized)
}

func TestResult(t *testing.T) {
	first := InningsTotal{TeamID: lions, Runs: 160, Wickets: 8, LegalBalls: 120}

	winner, tie, text := Result(first, InningsTotal{TeamID: tigers, Runs: 150, Wickets: 10, LegalBalls: 110}, "Lions", "Tigers")
	assert.Equal(t, lions, *winner)
	assert.False(t, tie)
	assert.Equal(t, "Lions won by 10 runs", text)

	_, _, text = Result(first, InningsTotal{TeamID: tigers, Runs: 159, Wickets: 9, LegalBalls: 120}, "Lions", "Tigers")
	assert.Equal(t, "Lions won by 1 run", text)

	winner, _, text = Result(first, InningsTotal{TeamID: tigers, Runs: 161, Wickets: 9, LegalBalls: 119}, "Lions", "Tigers")
	assert.Equal(t, tigers, *winner)
	assert.Equal(t, "Tigers won by 1 wicket", text)

	winner, tie, text = Result(first, InningsTotal{TeamID: tigers, Runs: 160, Wickets: 5, LegalBalls: 120}, "Lions", "Tigers")
	assert.Nil(t, winner)
	assert.True(t, tie)
	assert.Equal(t, "Match tied", text)
}
