package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSwapStrike(t *testing.T) {
	tests := []struct {
		name string
		d    Delivery
		want bool
	}{
		{"striker out", Delivery{Wicket: true, DismissedOnStrike: true, Runs: 1}, false},
		{"non-striker out", Delivery{Wicket: true, Runs: 1}, false},
		{"non-striker out on last ball", Delivery{Wicket: true, CompletesOver: true}, false},
		{"over ends on a dot", Delivery{CompletesOver: true}, true},
		{"over ends on three", Delivery{CompletesOver: true, Runs: 3}, true},
		{"wide ran one", Delivery{Wide: true, Runs: 1}, false},
		{"no-ball hit for one", Delivery{NoBall: true, Runs: 1}, true},
		{"no-ball hit for two", Delivery{NoBall: true, Runs: 2}, false},
		{"no-ball with one bye", Delivery{NoBall: true, Bye: true, Runs: 1}, false},
		{"single", Delivery{Runs: 1}, true},
		{"two", Delivery{Runs: 2}, false},
		{"three", Delivery{Runs: 3}, true},
		{"leg-bye single", Delivery{Bye: true, Runs: 1}, true},
		{"dot", Delivery{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSwapStrike(tt.d))
		})
	}
}

func TestCheckBowlerEligible(t *testing.T) {
	assert.NoError(t, CheckBowlerEligible(nil, 201))

	balls := []BallEvent{
		{Sequence: 1, BowlerID: 201},
		{Sequence: 2, BowlerID: 201, CompletesOver: true},
		{Sequence: 3, BowlerID: 202},
		{Sequence: 4, BowlerID: 202, CompletesOver: true},
		{Sequence: 5, BowlerID: 201},
	}
	// 202 finished the most recent over; 201 bowled earlier overs but that does not count.
	err := CheckBowlerEligible(balls, 202)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefereeRuleViolation)
	assert.NoError(t, CheckBowlerEligible(balls, 201))
	assert.NoError(t, CheckBowlerEligible(balls, 203))
}
