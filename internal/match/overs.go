package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	BallsPerOver = 6
	MaxWickets   = 10
)

// FormatOvers renders a legal-ball count in cricket notation: 13 -> "2.1".
func FormatOvers(legalBalls int) string {
	if legalBalls < 0 {
		legalBalls = 0
	}
	return fmt.Sprintf("%d.%d", legalBalls/BallsPerOver, legalBalls%BallsPerOver)
}

// ParseOvers converts cricket notation back to legal balls. The digit after
// the point counts balls, so "2.6" and "2.10" are rejected.
func ParseOvers(notation string) (int, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return 0, fmt.Errorf("empty overs notation")
	}
	whole, frac, hasFrac := strings.Cut(notation, ".")
	overs, err := strconv.Atoi(whole)
	if err != nil || overs < 0 {
		return 0, fmt.Errorf("invalid overs %q", notation)
	}
	balls := 0
	if hasFrac {
		if len(frac) != 1 {
			return 0, fmt.Errorf("invalid overs %q: ball part must be a single digit", notation)
		}
		balls, err = strconv.Atoi(frac)
		if err != nil || balls < 0 || balls >= BallsPerOver {
			return 0, fmt.Errorf("invalid overs %q: ball part must be 0-5", notation)
		}
	}
	return overs*BallsPerOver + balls, nil
}

// perOver returns runs per six legal balls, unrounded. Zero balls yields zero.
func perOver(runs, legalBalls int) decimal.Decimal {
	if legalBalls <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(runs) * BallsPerOver).Div(decimal.NewFromInt(int64(legalBalls)))
}

// RunRate is runs per over, to two decimals.
func RunRate(runs, legalBalls int) float64 {
	return perOver(runs, legalBalls).Round(2).InexactFloat64()
}

// Economy is runs conceded per over bowled, to two decimals.
func Economy(runsConceded, legalBalls int) float64 {
	return perOver(runsConceded, legalBalls).Round(2).InexactFloat64()
}

// StrikeRate is runs per hundred balls faced, to two decimals.
func StrikeRate(runs, ballsFaced int) float64 {
	if ballsFaced <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(runs) * 100).
		Div(decimal.NewFromInt(int64(ballsFaced))).
		Round(2).
		InexactFloat64()
}

// RequiredRunRate is runs needed per over for the balls left, to two decimals.
func RequiredRunRate(runsNeeded, ballsRemaining int) float64 {
	if runsNeeded <= 0 {
		return 0
	}
	return perOver(runsNeeded, ballsRemaining).Round(2).InexactFloat64()
}
