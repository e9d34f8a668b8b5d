package match

// Delivery is the slice of a ball the strike rules look at.
type Delivery struct {
	Wicket            bool
	DismissedOnStrike bool
	CompletesOver     bool
	Wide              bool
	NoBall            bool
	Bye               bool // bye or leg-bye
	Runs              int  // run or hit, without the penalty
}

// ShouldSwapStrike applies the strike rules in order; the first that matches decides.
func ShouldSwapStrike(d Delivery) bool {
	switch {
	case d.Wicket && d.DismissedOnStrike:
		// the incoming batter takes strike via SetNextBatter
		return false
	case d.Wicket:
		return false
	case d.CompletesOver:
		return true
	case d.Wide:
		return false
	case d.NoBall:
		batRuns := d.Runs
		if d.Bye {
			batRuns = 0
		}
		return batRuns%2 == 1
	default:
		return d.Runs%2 == 1
	}
}

// CheckBowlerEligible rejects the bowler of the most recently completed over.
// How many overs the candidate bowled earlier does not matter.
func CheckBowlerEligible(balls []BallEvent, candidate uint) error {
	last, ok := lastCompletedOverBowler(balls)
	if ok && last == candidate {
		return refereef("player %d bowled the previous over and cannot bowl consecutive overs", candidate)
	}
	return nil
}

var bowlerCredited = map[DismissalType]bool{
	DismissalTypeBowled:    true,
	DismissalTypeCaught:    true,
	DismissalTypeLBW:       true,
	DismissalTypeStumped:   true,
	DismissalTypeHitWicket: true,
}

var allowedOffWide = map[DismissalType]bool{
	DismissalTypeStumped:     true,
	DismissalTypeRunOut:      true,
	DismissalTypeHitWicket:   true,
	DismissalTypeObstructing: true,
	DismissalTypeHandledBall: true,
}

var allowedOffNoBall = map[DismissalType]bool{
	DismissalTypeRunOut:      true,
	DismissalTypeObstructing: true,
	DismissalTypeHandledBall: true,
}

var knownDismissals = map[DismissalType]bool{
	DismissalTypeBowled:      true,
	DismissalTypeCaught:      true,
	DismissalTypeLBW:         true,
	DismissalTypeRunOut:      true,
	DismissalTypeStumped:     true,
	DismissalTypeHitWicket:   true,
	DismissalTypeHandledBall: true,
	DismissalTypeObstructing: true,
	DismissalTypeTimedOut:    true,
	DismissalTypeRetiredOut:  true,
}
