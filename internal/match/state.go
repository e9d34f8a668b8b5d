package match

import "sort"

// MatchState is everything the scoring commands read and write for one match,
// loaded inside the command's transaction.
type MatchState struct {
	Match   Match
	Players []MatchPlayer
	Scores  []*TeamInningsScore
	Stats   []*PlayerMatchStat
	Balls   []BallEvent

	// Changes made since load, flushed by persist.
	matchDirty  bool
	scoresDirty bool
	dirtyStats  map[uint]bool
	newBalls    []BallEvent
	newEvents   []MatchEvent
}

func (st *MatchState) markMatch() {
	st.matchDirty = true
}

func (st *MatchState) markScores() {
	st.scoresDirty = true
}

func (st *MatchState) markStat(s *PlayerMatchStat) {
	if st.dirtyStats == nil {
		st.dirtyStats = make(map[uint]bool)
	}
	st.dirtyStats[s.PlayerID] = true
}

// DirtyStats returns the stat rows changed since load, ordered by player id.
func (st *MatchState) DirtyStats() []*PlayerMatchStat {
	out := make([]*PlayerMatchStat, 0, len(st.dirtyStats))
	for _, s := range st.Stats {
		if st.dirtyStats[s.PlayerID] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func (st *MatchState) isTeam(teamID uint) bool {
	return teamID != 0 && (teamID == st.Match.TeamAID || teamID == st.Match.TeamBID)
}

func (st *MatchState) otherTeam(teamID uint) uint {
	if teamID == st.Match.TeamAID {
		return st.Match.TeamBID
	}
	return st.Match.TeamAID
}

func (st *MatchState) teamName(teamID uint) string {
	switch teamID {
	case st.Match.TeamAID:
		return st.Match.TeamAName
	case st.Match.TeamBID:
		return st.Match.TeamBName
	}
	return ""
}

func (st *MatchState) battingTeam() uint {
	if st.Match.BattingTeamID == nil {
		return 0
	}
	return *st.Match.BattingTeamID
}

func (st *MatchState) bowlingTeam() uint {
	if st.Match.BowlingTeamID == nil {
		return 0
	}
	return *st.Match.BowlingTeamID
}

func (st *MatchState) score(teamID uint) *TeamInningsScore {
	for _, s := range st.Scores {
		if s.TeamID == teamID {
			return s
		}
	}
	return nil
}

func (st *MatchState) scoreByInnings(n int) *TeamInningsScore {
	for _, s := range st.Scores {
		if s.InningsNumber == n {
			return s
		}
	}
	return nil
}

func (st *MatchState) stat(playerID uint) *PlayerMatchStat {
	for _, s := range st.Stats {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}

func (st *MatchState) nominee(teamID, playerID uint) *MatchPlayer {
	for i := range st.Players {
		if st.Players[i].TeamID == teamID && st.Players[i].PlayerID == playerID {
			return &st.Players[i]
		}
	}
	return nil
}

func (st *MatchState) xi(teamID uint) []MatchPlayer {
	var out []MatchPlayer
	for _, p := range st.Players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// eligibleStat returns the player's stat row for teamID, creating it on first
// appearance. A player with no row who is not in that team's XI is rejected.
func (st *MatchState) eligibleStat(teamID, playerID uint, role string) (*PlayerMatchStat, error) {
	if playerID == 0 {
		return nil, validationf("%s id is required", role)
	}
	if s := st.stat(playerID); s != nil {
		if s.TeamID != teamID {
			return nil, notEligiblef("%s %d plays for team %d, not team %d", role, playerID, s.TeamID, teamID)
		}
		return s, nil
	}
	if st.nominee(teamID, playerID) == nil {
		return nil, notEligiblef("%s %d is not in the playing XI of team %d", role, playerID, teamID)
	}
	s := &PlayerMatchStat{
		MatchID:     st.Match.ID,
		PlayerID:    playerID,
		TeamID:      teamID,
		OversBowled: FormatOvers(0),
	}
	st.Stats = append(st.Stats, s)
	st.markStat(s)
	return s, nil
}

// crease returns the striker and non-striker of teamID; either may be nil.
func (st *MatchState) crease(teamID uint) (striker, nonStriker *PlayerMatchStat) {
	for _, s := range st.Stats {
		if s.TeamID != teamID || !s.IsBatting {
			continue
		}
		if s.OnStrike {
			striker = s
		} else {
			nonStriker = s
		}
	}
	return striker, nonStriker
}

func (st *MatchState) battersIn(teamID uint) int {
	n := 0
	for _, s := range st.Stats {
		if s.TeamID == teamID && s.IsBatting {
			n++
		}
	}
	return n
}

func (st *MatchState) currentBowler(teamID uint) *PlayerMatchStat {
	for _, s := range st.Stats {
		if s.TeamID == teamID && s.IsBowling {
			return s
		}
	}
	return nil
}

func (st *MatchState) nextBattingPosition(teamID uint) int {
	max := 0
	for _, s := range st.Stats {
		if s.TeamID == teamID && s.BattingPosition > max {
			max = s.BattingPosition
		}
	}
	return max + 1
}

// inningsOpen reports whether the current innings can still take deliveries.
func (st *MatchState) inningsOpen() (bool, string) {
	sc := st.score(st.battingTeam())
	if sc == nil || !sc.IsBatting || sc.IsFinalized {
		return false, "no innings is in progress"
	}
	if sc.LegalBalls >= st.Match.OversPerInnings*BallsPerOver {
		return false, "innings overs are exhausted; end the innings"
	}
	if sc.Wickets >= MaxWickets {
		return false, "batting side is all out; end the innings"
	}
	if st.Match.CurrentInnings == 2 {
		if first := st.scoreByInnings(1); first != nil && sc.Runs > first.Runs {
			return false, "target reached; complete the match"
		}
	}
	return true, ""
}

func (st *MatchState) needsBowlerSelection() bool {
	if st.Match.Status != StatusLive {
		return false
	}
	sc := st.score(st.battingTeam())
	if sc == nil || sc.LegalBalls == 0 || sc.LegalBalls%BallsPerOver != 0 {
		return false
	}
	if open, _ := st.inningsOpen(); !open {
		return false
	}
	return st.currentBowler(st.bowlingTeam()) == nil
}

// Clone returns a deep copy with no pending changes.
func (st *MatchState) Clone() *MatchState {
	out := &MatchState{
		Match:   st.Match,
		Players: append([]MatchPlayer(nil), st.Players...),
		Balls:   append([]BallEvent(nil), st.Balls...),
	}
	for _, s := range st.Scores {
		c := *s
		out.Scores = append(out.Scores, &c)
	}
	for _, s := range st.Stats {
		c := *s
		out.Stats = append(out.Stats, &c)
	}
	return out
}
