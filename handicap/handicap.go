// Package handicap holds the per-player streak state machine applied after results
// in competitions that affect handicaps.
package handicap

const (
	StreakThreshold = 3
	Step            = 5
)

type Standing struct {
	Handicap   int `json:"handicap"`
	WinStreak  int `json:"win_streak"`
	LossStreak int `json:"loss_streak"`
}

type Change struct {
	PlayerID int64    `json:"player_id"`
	Before   Standing `json:"before"`
	After    Standing `json:"after"`
}

// HandicapChanged reports whether a streak threshold fired.
func (c Change) HandicapChanged() bool {
	return c.Before.Handicap != c.After.Handicap
}

// ApplyWin clears the loss streak and, on the third straight win, lowers the
// handicap and consumes the streak.
func ApplyWin(s Standing) Standing {
	s.WinStreak++
	s.LossStreak = 0
	if s.WinStreak >= StreakThreshold {
		s.Handicap -= Step
		s.WinStreak = 0
	}
	return s
}

// ApplyLoss mirrors ApplyWin.
func ApplyLoss(s Standing) Standing {
	s.LossStreak++
	s.WinStreak = 0
	if s.LossStreak >= StreakThreshold {
		s.Handicap += Step
		s.LossStreak = 0
	}
	return s
}

type Outcome int

const (
	Win Outcome = iota
	Loss
)

// Apply runs one transition and records the before/after pair.
func Apply(playerID int64, s Standing, o Outcome) Change {
	c := Change{PlayerID: playerID, Before: s}
	if o == Win {
		c.After = ApplyWin(s)
	} else {
		c.After = ApplyLoss(s)
	}
	return c
}
