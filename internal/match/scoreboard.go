package match

import (
	"sort"
	"strconv"
)

const recentBallsWindow = 12

type TeamRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ScoreLine struct {
	Team          TeamRef `json:"team"`
	InningsNumber int     `json:"innings_number"`
	Runs          int     `json:"runs"`
	Wickets       int     `json:"wickets"`
	Overs         string  `json:"overs"`
	LegalBalls    int     `json:"legal_balls"`
	RunRate       float64 `json:"run_rate"`
	Extras        int     `json:"extras"`
	WideRuns      int     `json:"wide_runs"`
	NoBallRuns    int     `json:"no_ball_runs"`
	ByeRuns       int     `json:"bye_runs"`
	LegByeRuns    int     `json:"leg_bye_runs"`
	Fours         int     `json:"fours"`
	Sixes         int     `json:"sixes"`
	IsBatting     bool    `json:"is_batting"`
	IsFinalized   bool    `json:"is_finalized"`
}

type BatterLine struct {
	PlayerID   uint    `json:"player_id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
}

type BowlerLine struct {
	PlayerID     uint    `json:"player_id"`
	Name         string  `json:"name"`
	Overs        string  `json:"overs"`
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

// BallSummary is one delivery as viewers see it, with the over number made
// relative to its innings.
type BallSummary struct {
	Sequence      uint           `json:"sequence"`
	InningsNumber int            `json:"innings_number"`
	Over          int            `json:"over"`
	Ball          int            `json:"ball"`
	Label         string         `json:"label"`
	TotalRuns     int            `json:"total_runs"`
	IsWicket      bool           `json:"is_wicket"`
	DismissalType *DismissalType `json:"dismissal_type,omitempty"`
	StrikerID     uint           `json:"striker_id"`
	BowlerID      uint           `json:"bowler_id"`
	Note          string         `json:"note,omitempty"`
}

type FallOfWicket struct {
	WicketNumber int    `json:"wicket_number"`
	PlayerID     uint   `json:"player_id"`
	Score        int    `json:"score"`
	Overs        string `json:"overs"`
}

type Position struct {
	Over int    `json:"over"` // completed overs in this innings
	Ball int    `json:"ball"` // legal balls in the current over
	Text string `json:"text"` // "12.3"
}

type Chase struct {
	Target            int     `json:"target"`
	FirstInningsOvers string  `json:"first_innings_overs"`
	RunsRequired      int     `json:"runs_required"`
	BallsRemaining    int     `json:"balls_remaining"`
	RequiredRunRate   float64 `json:"required_run_rate"`
}

type ResultLine struct {
	WinnerTeamID *uint  `json:"winner_team_id,omitempty"`
	IsTie        bool   `json:"is_tie"`
	Summary      string `json:"summary"`
}

// Scoreboard is the read model pushed to viewers and served by get_scoreboard.
type Scoreboard struct {
	MatchID              uint           `json:"match_id"`
	Status               MatchStatus    `json:"status"`
	OversPerInnings      int            `json:"overs_per_innings"`
	InningsNumber        int            `json:"innings_number"`
	BattingTeam          *TeamRef       `json:"batting_team,omitempty"`
	BowlingTeam          *TeamRef       `json:"bowling_team,omitempty"`
	Scores               []ScoreLine    `json:"scores"`
	Striker              *BatterLine    `json:"striker,omitempty"`
	NonStriker           *BatterLine    `json:"non_striker,omitempty"`
	Bowler               *BowlerLine    `json:"bowler,omitempty"`
	Position             Position       `json:"position"`
	NeedsBowlerSelection bool           `json:"needs_bowler_selection"`
	Target               *int           `json:"target,omitempty"`
	Chase                *Chase         `json:"chase,omitempty"`
	RecentBalls          []BallSummary  `json:"recent_balls"`
	Timeline             []BallSummary  `json:"timeline"`
	FallOfWickets        []FallOfWicket `json:"fall_of_wickets"`
	Result               *ResultLine    `json:"result,omitempty"`
	LastSequence         uint           `json:"last_sequence"`
}

// ProjectScoreboard composes the current display snapshot. It never mutates st.
func ProjectScoreboard(st *MatchState) Scoreboard {
	m := st.Match
	sb := Scoreboard{
		MatchID:         m.ID,
		Status:          m.Status,
		OversPerInnings: m.OversPerInnings,
		InningsNumber:   m.CurrentInnings,
		Scores:          []ScoreLine{},
		RecentBalls:     []BallSummary{},
		Timeline:        []BallSummary{},
		FallOfWickets:   []FallOfWicket{},
	}
	if len(st.Balls) > 0 {
		sb.LastSequence = st.Balls[len(st.Balls)-1].Sequence
	}
	if t := st.battingTeam(); t != 0 {
		sb.BattingTeam = &TeamRef{ID: t, Name: st.teamName(t)}
	}
	if t := st.bowlingTeam(); t != 0 {
		sb.BowlingTeam = &TeamRef{ID: t, Name: st.teamName(t)}
	}

	scores := append([]*TeamInningsScore(nil), st.Scores...)
	sort.Slice(scores, func(i, j int) bool { return scores[i].InningsNumber < scores[j].InningsNumber })
	for _, sc := range scores {
		sb.Scores = append(sb.Scores, scoreLine(st, sc))
	}

	names := make(map[uint]string, len(st.Players))
	for _, p := range st.Players {
		names[p.PlayerID] = p.PlayerName
	}
	striker, nonStriker := st.crease(st.battingTeam())
	if striker != nil {
		sb.Striker = batterLine(striker, names)
	}
	if nonStriker != nil {
		sb.NonStriker = batterLine(nonStriker, names)
	}
	if b := st.currentBowler(st.bowlingTeam()); b != nil {
		sb.Bowler = &BowlerLine{
			PlayerID:     b.PlayerID,
			Name:         names[b.PlayerID],
			Overs:        b.OversBowled,
			Maidens:      b.Maidens,
			RunsConceded: b.RunsConceded,
			Wickets:      b.WicketsTaken,
			Economy:      b.EconomyRate,
		}
	}

	if current := st.score(st.battingTeam()); current != nil {
		sb.Position = Position{
			Over: current.LegalBalls / BallsPerOver,
			Ball: current.LegalBalls % BallsPerOver,
			Text: FormatOvers(current.LegalBalls),
		}
	}
	sb.NeedsBowlerSelection = st.needsBowlerSelection()

	if m.CurrentInnings == 2 {
		first, second := st.scoreByInnings(1), st.scoreByInnings(2)
		if first != nil && second != nil {
			target := first.Runs + 1
			sb.Target = &target
			needed := target - second.Runs
			if needed < 0 {
				needed = 0
			}
			remaining := m.OversPerInnings*BallsPerOver - second.LegalBalls
			if remaining < 0 {
				remaining = 0
			}
			sb.Chase = &Chase{
				Target:            target,
				FirstInningsOvers: first.Overs,
				RunsRequired:      needed,
				BallsRemaining:    remaining,
				RequiredRunRate:   RequiredRunRate(needed, remaining),
			}
		}
	}

	for _, b := range st.Balls {
		sb.Timeline = append(sb.Timeline, summarize(b, m.OversPerInnings))
	}
	recent := inningsBalls(st.Balls, m.CurrentInnings)
	if len(recent) > recentBallsWindow {
		recent = recent[len(recent)-recentBallsWindow:]
	}
	for _, b := range recent {
		sb.RecentBalls = append(sb.RecentBalls, summarize(b, m.OversPerInnings))
	}

	if m.CurrentInnings > 0 {
		ReplayInnings(st.Balls, m.CurrentInnings, func(b BallEvent, t ReplayTotals) {
			if !b.IsWicket || b.DismissedPlayerID == nil {
				return
			}
			sb.FallOfWickets = append(sb.FallOfWickets, FallOfWicket{
				WicketNumber: t.Wickets,
				PlayerID:     *b.DismissedPlayerID,
				Score:        t.Runs,
				Overs:        FormatOvers(t.LegalBalls),
			})
		})
	}

	if m.Status == StatusMatchCompleted {
		sb.Result = &ResultLine{WinnerTeamID: m.WinningTeamID, IsTie: m.IsTie, Summary: m.ResultSummary}
	}
	return sb
}

func scoreLine(st *MatchState, sc *TeamInningsScore) ScoreLine {
	return ScoreLine{
		Team:          TeamRef{ID: sc.TeamID, Name: st.teamName(sc.TeamID)},
		InningsNumber: sc.InningsNumber,
		Runs:          sc.Runs,
		Wickets:       sc.Wickets,
		Overs:         sc.Overs,
		LegalBalls:    sc.LegalBalls,
		RunRate:       sc.RunRate,
		Extras:        sc.Extras,
		WideRuns:      sc.WideRuns,
		NoBallRuns:    sc.NoBallRuns,
		ByeRuns:       sc.ByeRuns,
		LegByeRuns:    sc.LegByeRuns,
		Fours:         sc.Fours,
		Sixes:         sc.Sixes,
		IsBatting:     sc.IsBatting,
		IsFinalized:   sc.IsFinalized,
	}
}

func batterLine(s *PlayerMatchStat, names map[uint]string) *BatterLine {
	return &BatterLine{
		PlayerID:   s.PlayerID,
		Name:       names[s.PlayerID],
		Runs:       s.Runs,
		BallsFaced: s.BallsFaced,
		Fours:      s.Fours,
		Sixes:      s.Sixes,
		StrikeRate: s.StrikeRate,
	}
}

func summarize(b BallEvent, oversPerInnings int) BallSummary {
	return BallSummary{
		Sequence:      b.Sequence,
		InningsNumber: b.InningsNumber,
		Over:          DisplayOver(b.OverNumber, b.InningsNumber, oversPerInnings),
		Ball:          b.BallInOver,
		Label:         ballLabel(b),
		TotalRuns:     b.TotalRuns,
		IsWicket:      b.IsWicket,
		DismissalType: b.DismissalType,
		StrikerID:     b.StrikerID,
		BowlerID:      b.BowlerID,
		Note:          b.Note,
	}
}

// ballLabel is the short scorebook mark: "W", "4", "1wd", "2nb", "1lb", ".".
func ballLabel(b BallEvent) string {
	if b.IsWicket {
		return "W"
	}
	switch {
	case b.IsWide:
		return strconv.Itoa(b.TotalRuns) + "wd"
	case b.IsNoBall:
		return strconv.Itoa(b.TotalRuns) + "nb"
	case b.IsBye:
		return strconv.Itoa(b.Runs) + "b"
	case b.IsLegBye:
		return strconv.Itoa(b.Runs) + "lb"
	case b.TotalRuns == 0:
		return "."
	}
	return strconv.Itoa(b.TotalRuns)
}

// Roster is one player in an availability list.
type Roster struct {
	PlayerID     uint   `json:"player_id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	BattingOrder *int   `json:"batting_order,omitempty"`
}

// AvailableBatters lists XI members of teamID who are neither out nor batting.
func AvailableBatters(st *MatchState, teamID uint) ([]Roster, error) {
	if !st.isTeam(teamID) {
		return nil, notFoundf("team %d is not playing in match %d", teamID, st.Match.ID)
	}
	out := []Roster{}
	for _, p := range sortedXI(st.xi(teamID)) {
		if s := st.stat(p.PlayerID); s != nil && (s.IsOut || s.IsBatting) {
			continue
		}
		out = append(out, rosterOf(p))
	}
	return out, nil
}

// AvailableBowlers lists XI members of teamID who may bowl the next over,
// leaving out the previous over's bowler and the optional hint.
func AvailableBowlers(st *MatchState, teamID uint, excludeHint *uint) ([]Roster, error) {
	if !st.isTeam(teamID) {
		return nil, notFoundf("team %d is not playing in match %d", teamID, st.Match.ID)
	}
	last, hasLast := lastCompletedOverBowler(st.Balls)
	out := []Roster{}
	for _, p := range sortedXI(st.xi(teamID)) {
		if hasLast && p.PlayerID == last {
			continue
		}
		if excludeHint != nil && p.PlayerID == *excludeHint {
			continue
		}
		out = append(out, rosterOf(p))
	}
	return out, nil
}

func sortedXI(players []MatchPlayer) []MatchPlayer {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i].BattingOrder, players[j].BattingOrder
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return players[i].PlayerID < players[j].PlayerID
	})
	return players
}

func rosterOf(p MatchPlayer) Roster {
	return Roster{PlayerID: p.PlayerID, Name: p.PlayerName, Role: p.Role, BattingOrder: p.BattingOrder}
}
