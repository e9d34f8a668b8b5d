package match

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

func uintPtr(v uint) *uint {
	return &v
}

func (st *MatchState) requireLive() error {
	switch st.Match.Status {
	case StatusLive:
		return nil
	case StatusMatchCompleted:
		return illegalf("match %d is already completed", st.Match.ID)
	case StatusMatchCancelled:
		return illegalf("match %d was cancelled", st.Match.ID)
	default:
		return illegalf("match %d is not live (status %s)", st.Match.ID, st.Match.Status)
	}
}

// RecordToss stores the toss and derives who bats first.
func (st *MatchState) RecordToss(winnerTeamID uint, decision TossDecision) error {
	if st.Match.Status != StatusTossPending {
		return illegalf("toss cannot be recorded while match is %s", st.Match.Status)
	}
	if !st.isTeam(winnerTeamID) {
		return validationf("team %d is not playing in match %d", winnerTeamID, st.Match.ID)
	}
	var batting uint
	switch decision {
	case TossBat:
		batting = winnerTeamID
	case TossBowl:
		batting = st.otherTeam(winnerTeamID)
	default:
		return validationf("toss decision must be bat or bowl, got %q", decision)
	}
	st.Match.TossWinnerTeamID = uintPtr(winnerTeamID)
	st.Match.TossDecision = decision
	st.Match.BattingTeamID = uintPtr(batting)
	st.Match.BowlingTeamID = uintPtr(st.otherTeam(batting))
	st.Match.Status = StatusTossCompleted
	st.markMatch()
	return nil
}

// Start moves the match to live. Starting a live match again changes nothing.
func (st *MatchState) Start(now time.Time) error {
	switch st.Match.Status {
	case StatusLive:
		return nil
	case StatusTossCompleted:
	default:
		return illegalf("match cannot start while %s", st.Match.Status)
	}
	for _, team := range []uint{st.Match.TeamAID, st.Match.TeamBID} {
		if len(st.xi(team)) == 0 {
			return illegalf("playing XI for team %d has not been named", team)
		}
	}

	batting, bowling := st.battingTeam(), st.bowlingTeam()
	for i, team := range []uint{batting, bowling} {
		sc := st.score(team)
		if sc == nil {
			sc = &TeamInningsScore{MatchID: st.Match.ID, TeamID: team}
			st.Scores = append(st.Scores, sc)
		}
		*sc = TeamInningsScore{
			Model:         sc.Model,
			MatchID:       st.Match.ID,
			TeamID:        team,
			InningsNumber: i + 1,
			Overs:         FormatOvers(0),
			IsBatting:     team == batting,
		}
	}
	st.markScores()

	for _, p := range st.Players {
		if _, err := st.eligibleStat(p.TeamID, p.PlayerID, "player"); err != nil {
			return err
		}
	}

	st.Match.Status = StatusLive
	st.Match.CurrentInnings = 1
	st.Match.StartedAt = &now
	st.markMatch()
	return nil
}

// SetOpeningBatters puts two batters at the crease for an innings that has none.
func (st *MatchState) SetOpeningBatters(strikerID, nonStrikerID uint) error {
	if err := st.requireLive(); err != nil {
		return err
	}
	if strikerID == nonStrikerID {
		return validationf("striker and non-striker must be different players")
	}
	team := st.battingTeam()
	if st.battersIn(team) > 0 {
		return illegalf("batters are already at the crease; use the next batter command after a wicket")
	}
	if open, why := st.inningsOpen(); !open {
		return illegalf("%s", why)
	}
	striker, err := st.eligibleStat(team, strikerID, "striker")
	if err != nil {
		return err
	}
	nonStriker, err := st.eligibleStat(team, nonStrikerID, "non-striker")
	if err != nil {
		return err
	}
	for _, s := range []*PlayerMatchStat{striker, nonStriker} {
		if s.IsOut {
			return illegalf("player %d is already out", s.PlayerID)
		}
	}
	st.sendIn(striker, true)
	st.sendIn(nonStriker, false)
	return nil
}

// SetNextBatter fills the vacancy left by a wicket. The newcomer takes strike
// if nobody holds it.
func (st *MatchState) SetNextBatter(playerID uint) error {
	if err := st.requireLive(); err != nil {
		return err
	}
	team := st.battingTeam()
	if st.battersIn(team) != 1 {
		return illegalf("there is no vacancy at the crease")
	}
	if open, why := st.inningsOpen(); !open {
		return illegalf("%s", why)
	}
	s, err := st.eligibleStat(team, playerID, "batter")
	if err != nil {
		return err
	}
	if s.IsOut {
		return illegalf("player %d is already out", playerID)
	}
	if s.IsBatting {
		return illegalf("player %d is already batting", playerID)
	}
	striker, _ := st.crease(team)
	st.sendIn(s, striker == nil)
	return nil
}

func (st *MatchState) sendIn(s *PlayerMatchStat, onStrike bool) {
	s.IsBatting = true
	s.OnStrike = onStrike
	if s.BattingPosition == 0 {
		s.BattingPosition = st.nextBattingPosition(s.TeamID)
	}
	st.markStat(s)
}

// CheckBowler is the dry run of SelectBowler.
func (st *MatchState) CheckBowler(bowlerID uint) error {
	if err := st.requireLive(); err != nil {
		return err
	}
	team := st.bowlingTeam()
	if s := st.stat(bowlerID); s != nil {
		if s.TeamID != team {
			return notEligiblef("bowler %d is not in the fielding side", bowlerID)
		}
	} else if st.nominee(team, bowlerID) == nil {
		return notEligiblef("bowler %d is not in the playing XI of team %d", bowlerID, team)
	}
	return CheckBowlerEligible(st.Balls, bowlerID)
}

// SelectBowler flags bowlerID as the one bowling, replacing any other.
func (st *MatchState) SelectBowler(bowlerID uint) error {
	if err := st.CheckBowler(bowlerID); err != nil {
		return err
	}
	if open, why := st.inningsOpen(); !open {
		return illegalf("%s", why)
	}
	team := st.bowlingTeam()
	b, err := st.eligibleStat(team, bowlerID, "bowler")
	if err != nil {
		return err
	}
	for _, s := range st.Stats {
		if s.TeamID == team && s.IsBowling && s != b {
			s.IsBowling = false
			st.markStat(s)
		}
	}
	b.IsBowling = true
	st.markStat(b)
	return nil
}

// BallResult is what record_ball reports back besides the new scoreboard.
type BallResult struct {
	Ball                 BallEvent `json:"ball"`
	StrikeSwapped        bool      `json:"strike_swapped"`
	OverCompleted        bool      `json:"over_completed"`
	NeedsBowlerSelection bool      `json:"needs_bowler_selection"`
	InningsComplete      bool      `json:"innings_complete"`
	InningsCompleteWhy   string    `json:"innings_complete_reason,omitempty"`
}

// RecordBall validates one delivery and applies it to the ledger, totals and
// crease flags. Nothing is changed unless every check passes.
func (st *MatchState) RecordBall(in BallInput, recordedBy *uint, now time.Time) (*BallResult, error) {
	if err := st.requireLive(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if open, why := st.inningsOpen(); !open {
		return nil, illegalf("%s", why)
	}
	batting, bowling := st.battingTeam(), st.bowlingTeam()
	sc := st.score(batting)

	striker, nonStriker := st.crease(batting)
	if striker == nil || nonStriker == nil {
		return nil, illegalf("two batters must be at the crease; set batters first")
	}
	crossed := false
	if in.StrikerID != 0 && in.StrikerID != striker.PlayerID {
		switch {
		case in.StrikerID == nonStriker.PlayerID:
			crossed = true
			striker, nonStriker = nonStriker, striker
		default:
			s, err := st.eligibleStat(batting, in.StrikerID, "striker")
			if err != nil {
				return nil, err
			}
			return nil, refereef("player %d is not at the crease", s.PlayerID)
		}
	}

	var dismissed *PlayerMatchStat
	if in.Wicket {
		switch *in.DismissedPlayerID {
		case striker.PlayerID:
			dismissed = striker
		case nonStriker.PlayerID:
			dismissed = nonStriker
		default:
			return nil, refereef("dismissed player %d is not at the crease", *in.DismissedPlayerID)
		}
	}

	bowler := st.currentBowler(bowling)
	changeBowler := false
	if in.BowlerID != 0 && (bowler == nil || bowler.PlayerID != in.BowlerID) {
		if sc.LegalBalls%BallsPerOver != 0 && bowler != nil {
			return nil, refereef("bowler cannot change in the middle of an over")
		}
		if err := st.CheckBowler(in.BowlerID); err != nil {
			return nil, err
		}
		b, err := st.eligibleStat(bowling, in.BowlerID, "bowler")
		if err != nil {
			return nil, err
		}
		bowler, changeBowler = b, true
	}
	if bowler == nil {
		return nil, illegalf("bowler selection required before the next delivery")
	}

	// all checks passed, mutate
	if crossed {
		striker.OnStrike, nonStriker.OnStrike = true, false
	}
	if changeBowler {
		for _, s := range st.Stats {
			if s.TeamID == bowling && s.IsBowling {
				s.IsBowling = false
				st.markStat(s)
			}
		}
		bowler.IsBowling = true
	}

	coord := NextCoordinate(st.Match.CurrentInnings, st.Match.OversPerInnings, sc.LegalBalls)
	completesOver := in.legal() && (sc.LegalBalls+1)%BallsPerOver == 0

	ball := BallEvent{
		CreatedAt:     now,
		MatchID:       st.Match.ID,
		Sequence:      nextSequence(st.Balls),
		InningsNumber: st.Match.CurrentInnings,
		BattingTeamID: batting,
		OverNumber:    coord.Over,
		BallInOver:    coord.Ball,
		StrikerID:     striker.PlayerID,
		NonStrikerID:  nonStriker.PlayerID,
		BowlerID:      bowler.PlayerID,
		Runs:          in.Runs,
		PenaltyRuns:   in.penalty(),
		TotalRuns:     in.Runs + in.penalty(),
		IsWide:        in.Wide,
		IsNoBall:      in.NoBall,
		IsBye:         in.Bye,
		IsLegBye:      in.LegBye,
		IsFour:        in.Four || in.Runs == 4,
		IsSix:         in.Six || in.Runs == 6,
		IsLegal:       in.legal(),
		IsWicket:      in.Wicket,
		CompletesOver: completesOver,
		Note:          in.Note,
		RecordedBy:    recordedBy,
	}
	if in.Wicket {
		kind := *in.DismissalType
		ball.DismissalType = &kind
		ball.DismissedPlayerID = uintPtr(*in.DismissedPlayerID)
	}

	applyBall(sc, striker, bowler, dismissed, in)

	swap := ShouldSwapStrike(Delivery{
		Wicket:            in.Wicket,
		DismissedOnStrike: dismissed != nil && dismissed == striker,
		CompletesOver:     completesOver,
		Wide:              in.Wide,
		NoBall:            in.NoBall,
		Bye:               in.Bye || in.LegBye,
		Runs:              in.Runs,
	})
	if swap {
		striker.OnStrike, nonStriker.OnStrike = false, true
	}
	ball.StrikeSwapped = swap

	st.Balls = append(st.Balls, ball)
	st.newBalls = append(st.newBalls, ball)

	if completesOver {
		if isMaiden(inningsBalls(st.Balls, ball.InningsNumber)) {
			bowler.Maidens++
		}
		bowler.IsBowling = false
	}

	st.markScores()
	st.markStat(striker)
	st.markStat(nonStriker)
	st.markStat(bowler)

	res := &BallResult{
		Ball:          ball,
		StrikeSwapped: swap,
		OverCompleted: completesOver,
	}
	open, why := st.inningsOpen()
	res.InningsComplete = !open
	res.InningsCompleteWhy = why
	res.NeedsBowlerSelection = st.needsBowlerSelection()
	return res, nil
}

// EndInnings closes the current innings. After the first innings the sides
// swap; after the second the match waits for CompleteMatch.
func (st *MatchState) EndInnings() error {
	if err := st.requireLive(); err != nil {
		return err
	}
	current := st.score(st.battingTeam())
	if current == nil || current.IsFinalized {
		return illegalf("both innings have already ended; complete the match")
	}
	st.closeInnings(current)

	if st.Match.CurrentInnings == 1 {
		batting, bowling := st.bowlingTeam(), st.battingTeam()
		st.Match.BattingTeamID = uintPtr(batting)
		st.Match.BowlingTeamID = uintPtr(bowling)
		st.Match.CurrentInnings = 2
		if next := st.score(batting); next != nil {
			next.IsBatting = true
		}
		st.markMatch()
	}
	st.markScores()
	return nil
}

// closeInnings finalizes sc; nobody carries a crease flag past it.
func (st *MatchState) closeInnings(sc *TeamInningsScore) {
	sc.IsBatting = false
	sc.IsFinalized = true
	for _, s := range st.Stats {
		if s.IsBatting || s.OnStrike || s.IsBowling {
			s.IsBatting, s.OnStrike, s.IsBowling = false, false, false
			st.markStat(s)
		}
	}
}

// Result decides the winner from the two innings totals.
func Result(first, second InningsTotal, firstName, secondName string) (winner *uint, tie bool, text string) {
	switch {
	case second.Runs > first.Runs:
		margin := MaxWickets - second.Wickets
		return uintPtr(second.TeamID), false, fmt.Sprintf("%s won by %d %s", secondName, margin, plural(margin, "wicket"))
	case second.Runs < first.Runs:
		margin := first.Runs - second.Runs
		return uintPtr(first.TeamID), false, fmt.Sprintf("%s won by %d %s", firstName, margin, plural(margin, "run"))
	default:
		return nil, true, "Match tied"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Complete finalizes the match and queues the completion event.
func (st *MatchState) Complete(now time.Time) (*MatchCompleted, error) {
	if err := st.requireLive(); err != nil {
		return nil, err
	}
	first, second := st.scoreByInnings(1), st.scoreByInnings(2)
	if first == nil || second == nil || first.LegalBalls == 0 || second.LegalBalls == 0 {
		return nil, illegalf("both innings must have at least one legal ball before the match can complete")
	}
	for _, sc := range []*TeamInningsScore{first, second} {
		if !sc.IsFinalized {
			st.closeInnings(sc)
		}
	}

	t1 := InningsTotal{TeamID: first.TeamID, Runs: first.Runs, Wickets: first.Wickets, LegalBalls: first.LegalBalls}
	t2 := InningsTotal{TeamID: second.TeamID, Runs: second.Runs, Wickets: second.Wickets, LegalBalls: second.LegalBalls}
	winner, tie, text := Result(t1, t2, st.teamName(first.TeamID), st.teamName(second.TeamID))

	st.Match.Status = StatusMatchCompleted
	st.Match.WinningTeamID = winner
	st.Match.IsTie = tie
	st.Match.ResultSummary = text
	st.Match.CompletedAt = &now
	st.markMatch()
	st.markScores()

	evt := &MatchCompleted{
		MatchID:      st.Match.ID,
		TournamentID: st.Match.TournamentID,
		WinnerTeamID: winner,
		IsTie:        tie,
		ResultText:   text,
		Innings:      [2]InningsTotal{t1, t2},
		CompletedAt:  now,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode completion event: %w", err)
	}
	st.newEvents = append(st.newEvents, MatchEvent{
		CreatedAt: now,
		MatchID:   st.Match.ID,
		Type:      EventMatchCompleted,
		Payload:   datatypes.JSON(payload),
	})
	return evt, nil
}
