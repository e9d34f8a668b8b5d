package match

// Coordinate is the (over, ball) slot of a delivery. Wides and no-balls take
// the slot of the next legal ball without consuming it.
type Coordinate struct {
	Over int `json:"over"`
	Ball int `json:"ball"`
}

// inningsBase is the stored over number that precedes the first over of the
// innings. Over numbers run on from the first innings into the second.
func inningsBase(inningsNumber, oversPerInnings int) int {
	if inningsNumber <= 1 {
		return 0
	}
	return (inningsNumber - 1) * oversPerInnings
}

// NextCoordinate places the next delivery of an innings that has already seen
// legalBalls legal deliveries.
func NextCoordinate(inningsNumber, oversPerInnings, legalBalls int) Coordinate {
	return Coordinate{
		Over: inningsBase(inningsNumber, oversPerInnings) + legalBalls/BallsPerOver + 1,
		Ball: legalBalls%BallsPerOver + 1,
	}
}

// DisplayOver converts a stored over number to the innings-relative one shown to viewers.
func DisplayOver(storedOver, inningsNumber, oversPerInnings int) int {
	return storedOver - inningsBase(inningsNumber, oversPerInnings)
}

// nextSequence is one past the last sequence in the ledger.
func nextSequence(balls []BallEvent) uint {
	if len(balls) == 0 {
		return 1
	}
	return balls[len(balls)-1].Sequence + 1
}

// inningsBalls returns the ledger slice for one innings, in sequence order.
func inningsBalls(balls []BallEvent, inningsNumber int) []BallEvent {
	out := make([]BallEvent, 0, len(balls))
	for _, b := range balls {
		if b.InningsNumber == inningsNumber {
			out = append(out, b)
		}
	}
	return out
}

// lastCompletedOverBowler finds who bowled the final ball of the most
// recently completed over anywhere in the ledger.
func lastCompletedOverBowler(balls []BallEvent) (uint, bool) {
	for i := len(balls) - 1; i >= 0; i-- {
		if balls[i].CompletesOver {
			return balls[i].BowlerID, true
		}
	}
	return 0, false
}

// ReplayTotals is what an innings adds up to from the ledger alone.
type ReplayTotals struct {
	Runs       int
	Wickets    int
	LegalBalls int
	Extras     int
}

// ReplayInnings folds the ledger of one innings, calling visit after each
// delivery with the running totals. visit may be nil.
func ReplayInnings(balls []BallEvent, inningsNumber int, visit func(BallEvent, ReplayTotals)) ReplayTotals {
	var t ReplayTotals
	for _, b := range balls {
		if b.InningsNumber != inningsNumber {
			continue
		}
		t.Runs += b.TotalRuns
		t.Extras += extrasOf(b)
		if b.IsLegal {
			t.LegalBalls++
		}
		if b.IsWicket {
			t.Wickets++
		}
		if visit != nil {
			visit(b, t)
		}
	}
	return t
}

func extrasOf(b BallEvent) int {
	if b.IsWide || b.IsBye || b.IsLegBye {
		return b.PenaltyRuns + b.Runs
	}
	return b.PenaltyRuns
}
