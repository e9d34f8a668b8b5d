package match

// BallInput is the scorer's description of one delivery.
type BallInput struct {
	Runs              int            `json:"runs"`
	Wide              bool           `json:"wide"`
	NoBall            bool           `json:"no_ball"`
	Bye               bool           `json:"bye"`
	LegBye            bool           `json:"leg_bye"`
	Four              bool           `json:"four"`
	Six               bool           `json:"six"`
	Wicket            bool           `json:"wicket"`
	DismissalType     *DismissalType `json:"dismissal_type,omitempty"`
	DismissedPlayerID *uint          `json:"dismissed_player_id,omitempty"`
	StrikerID         uint           `json:"striker_id,omitempty"` // 0 means the batter on strike
	BowlerID          uint           `json:"bowler_id,omitempty"`  // 0 means the flagged bowler
	Note              string         `json:"note,omitempty"`
}

func (in BallInput) anyExtra() bool {
	return in.Wide || in.NoBall || in.Bye || in.LegBye
}

func (in BallInput) legal() bool {
	return !in.Wide && !in.NoBall
}

func (in BallInput) penalty() int {
	if in.Wide || in.NoBall {
		return 1
	}
	return 0
}

// offBat reports whether Runs belong to the striker.
func (in BallInput) offBat() bool {
	return !in.Wide && !in.Bye && !in.LegBye
}

func (in BallInput) validate() error {
	maxRuns := 6
	if in.anyExtra() {
		maxRuns = 7
	}
	if in.Runs < 0 || in.Runs > maxRuns {
		if in.anyExtra() {
			return validationf("runs must be between 0 and %d on an extra, got %d", maxRuns, in.Runs)
		}
		return validationf("runs must be between 0 and 6 on a legal delivery, got %d", in.Runs)
	}
	if in.Wide && in.NoBall {
		return validationf("a delivery cannot be both a wide and a no-ball")
	}
	if in.Bye && in.LegBye {
		return validationf("a delivery cannot be both a bye and a leg-bye")
	}
	if in.Wide && (in.Bye || in.LegBye) {
		return validationf("runs off a wide are wides, not byes or leg-byes")
	}
	if in.Four && in.Six {
		return validationf("a delivery cannot be both a four and a six")
	}
	if in.Four && in.Runs != 4 {
		return validationf("a four must carry 4 runs, got %d", in.Runs)
	}
	if in.Six && in.Runs != 6 {
		return validationf("a six must carry 6 runs, got %d", in.Runs)
	}
	if in.Six && !in.offBat() {
		return validationf("a six can only be hit off the bat")
	}
	if !in.Wicket {
		if in.DismissalType != nil || in.DismissedPlayerID != nil {
			return validationf("dismissal details given without a wicket")
		}
		return nil
	}
	if in.DismissalType == nil || *in.DismissalType == "" {
		return refereef("a wicket needs a dismissal type")
	}
	if in.DismissedPlayerID == nil || *in.DismissedPlayerID == 0 {
		return refereef("a wicket needs the dismissed player")
	}
	kind := *in.DismissalType
	if !knownDismissals[kind] {
		return validationf("unknown dismissal type %q", kind)
	}
	if in.Wide && !allowedOffWide[kind] {
		return refereef("a batter cannot be out %s off a wide", kind)
	}
	if in.NoBall && !allowedOffNoBall[kind] {
		return refereef("a batter cannot be out %s off a no-ball", kind)
	}
	return nil
}

// applyBall credits one validated delivery to the batting total, the striker,
// the bowler and the dismissed batter.
func applyBall(sc *TeamInningsScore, striker, bowler, dismissed *PlayerMatchStat, in BallInput) {
	penalty := in.penalty()
	total := in.Runs + penalty

	// team
	sc.Runs += total
	switch {
	case in.Wide:
		sc.WideRuns += total
		sc.Extras += total
	case in.NoBall:
		sc.NoBallRuns += penalty
		sc.Extras += penalty
		if in.Bye {
			sc.ByeRuns += in.Runs
			sc.Extras += in.Runs
		} else if in.LegBye {
			sc.LegByeRuns += in.Runs
			sc.Extras += in.Runs
		}
	case in.Bye:
		sc.ByeRuns += in.Runs
		sc.Extras += in.Runs
	case in.LegBye:
		sc.LegByeRuns += in.Runs
		sc.Extras += in.Runs
	}
	if in.Four || in.Runs == 4 {
		sc.Fours++
	}
	if in.Six || in.Runs == 6 {
		sc.Sixes++
	}
	if in.legal() {
		sc.LegalBalls++
	}
	if in.Wicket {
		sc.Wickets++
	}
	sc.Overs = FormatOvers(sc.LegalBalls)
	sc.RunRate = RunRate(sc.Runs, sc.LegalBalls)

	// striker
	if !in.Wide {
		striker.BallsFaced++
	}
	if in.offBat() {
		striker.Runs += in.Runs
		if in.Four || in.Runs == 4 {
			striker.Fours++
		}
		if in.Six || in.Runs == 6 {
			striker.Sixes++
		}
	}
	striker.StrikeRate = StrikeRate(striker.Runs, striker.BallsFaced)

	// bowler
	conceded := total
	if in.Bye || in.LegBye {
		conceded -= in.Runs
	}
	bowler.RunsConceded += conceded
	if in.Wide {
		bowler.Wides++
	}
	if in.NoBall {
		bowler.NoBalls++
	}
	if in.legal() {
		bowler.LegalBallsBowled++
		if total == 0 {
			bowler.Dots++
		}
	}
	bowler.OversBowled = FormatOvers(bowler.LegalBallsBowled)
	bowler.EconomyRate = Economy(bowler.RunsConceded, bowler.LegalBallsBowled)

	if in.Wicket && dismissed != nil {
		kind := *in.DismissalType
		dismissed.IsOut = true
		dismissed.HowOut = &kind
		dismissed.IsBatting = false
		dismissed.OnStrike = false
		if bowlerCredited[kind] {
			bowlerID := bowler.PlayerID
			dismissed.DismissedByBowlerID = &bowlerID
			bowler.WicketsTaken++
		}
	}
}

// bowlerCharge is what a delivery costs the bowler, for maiden tracking.
func bowlerCharge(b BallEvent) int {
	if b.IsBye || b.IsLegBye {
		return b.PenaltyRuns
	}
	return b.TotalRuns
}

// isMaiden reports whether the over ending with the last ball of balls was a
// maiden by a single bowler.
func isMaiden(balls []BallEvent) bool {
	if len(balls) == 0 {
		return false
	}
	last := balls[len(balls)-1]
	for i := len(balls) - 1; i >= 0; i-- {
		b := balls[i]
		if b.OverNumber != last.OverNumber || b.InningsNumber != last.InningsNumber {
			break
		}
		if b.BowlerID != last.BowlerID || bowlerCharge(b) != 0 {
			return false
		}
	}
	return true
}
