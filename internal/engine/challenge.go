package engine

import "time"

type ChallengeType string

const (
	ChallengeStreak    ChallengeType = "streak"
	ChallengeAvoidance ChallengeType = "avoidance"
)

type ChallengeStatus string

// Challenge status is a one-way progression. There is no regression back to
// available once activated, and no automatic move to completed: claiming is
// explicit.
const (
	ChallengeAvailable ChallengeStatus = "available"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
)

type Challenge struct {
	ID           string
	Title        string
	Description  string
	Type         ChallengeType
	TargetTaskID string
	DurationDays int
	RewardXP     int
	Status       ChallengeStatus
	StartDate    string // set on activation, YYYY-MM-DD
	IsCustom     bool
}

// BuiltinChallenges returns the code-defined challenge board. Status fields
// here are the initial state; persisted status wins for known ids.
func BuiltinChallenges() []Challenge {
	return []Challenge{
		{
			ID: "streak_run_week", Title: "Week of the Runner",
			Description:  "Run every day for a week.",
			Type:         ChallengeStreak,
			TargetTaskID: "const_run", DurationDays: 7, RewardXP: 100,
			Status: ChallengeAvailable,
		},
		{
			ID: "streak_read_three", Title: "Scholar's Momentum",
			Description:  "Read three days in a row.",
			Type:         ChallengeStreak,
			TargetTaskID: "const_read", DurationDays: 3, RewardXP: 40,
			Status: ChallengeAvailable,
		},
		{
			ID: "streak_exercise_five", Title: "Dawn Patrol",
			Description:  "Five straight mornings of exercise.",
			Type:         ChallengeStreak,
			TargetTaskID: "basic_exercise", DurationDays: 5, RewardXP: 60,
			Status: ChallengeAvailable,
		},
		{
			ID: "avoid_sugar_week", Title: "The Bitter Vow",
			Description:  "No sugar for seven days.",
			Type:         ChallengeAvoidance,
			TargetTaskID: "neg_sugar", DurationDays: 7, RewardXP: 120,
			Status: ChallengeAvailable,
		},
		{
			ID: "avoid_scroll_three", Title: "Unplugged",
			Description:  "Three days without doomscrolling.",
			Type:         ChallengeAvoidance,
			TargetTaskID: "neg_scrolling", DurationDays: 3, RewardXP: 50,
			Status: ChallengeAvailable,
		},
	}
}

// MergeChallenges combines code-defined challenges with persisted state.
// For a builtin id the code-defined definition wins but the persisted status
// and start date carry over; stored customs pass through; new builtins are
// appended as available.
func MergeChallenges(builtin, stored []Challenge) []Challenge {
	byID := make(map[string]Challenge, len(stored))
	for _, c := range stored {
		byID[c.ID] = c
	}

	out := make([]Challenge, 0, len(builtin)+len(stored))
	seen := make(map[string]bool, len(builtin))
	for _, b := range builtin {
		if s, ok := byID[b.ID]; ok {
			b.Status = s.Status
			b.StartDate = s.StartDate
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	for _, c := range stored {
		if !c.IsCustom || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

// Accept activates an available challenge, anchoring its start date at now.
// Any other starting state is a no-op returning the input unchanged.
func Accept(ch Challenge, now time.Time) Challenge {
	if ch.Status != ChallengeAvailable {
		return ch
	}
	ch.Status = ChallengeActive
	ch.StartDate = Today(now)
	return ch
}

// Claim completes an active challenge whose recomputed progress has reached
// its duration. Anything else is a no-op. Claiming is the only path that
// grants RewardXP (see ApplyChallengeRewards).
func Claim(ch Challenge, progress int) Challenge {
	if ch.Status != ChallengeActive || progress < ch.DurationDays {
		return ch
	}
	ch.Status = ChallengeCompleted
	return ch
}

// Evaluation is the recomputed standing of an active challenge.
type Evaluation struct {
	Progress int
	// Broken is set for a streak whose run already missed a day; the
	// progress is frozen at the pre-break run length and can no longer
	// reach the duration. The challenge itself stays active: progress is
	// always derived from the log, nothing is stored or reset.
	Broken bool
}

// EvaluateChallenge recomputes progress from scratch against the log.
//
// Streak: the unbroken run of consecutive days holding the target id,
// anchored at StartDate. The first missing day stops the run for good —
// later compliant days do not revive it.
//
// Avoidance: the length of the current clean run ending today. A day on
// which the target id appears resets the count to zero from that day
// forward, so intermediate violations are survivable.
func EvaluateChallenge(ch Challenge, log []DayLog, today string) Evaluation {
	if ch.Status != ChallengeActive || ch.StartDate == "" {
		return Evaluation{}
	}
	span := DaysBetween(ch.StartDate, today)
	if span < 0 {
		return Evaluation{}
	}

	byDate := make(map[string]DayLog, len(log))
	for _, d := range log {
		byDate[d.Date] = d
	}

	var ev Evaluation
	day := ch.StartDate
	for i := 0; i <= span; i++ {
		done := byDate[day].Has(ch.TargetTaskID)
		switch ch.Type {
		case ChallengeStreak:
			if !done {
				if i < span {
					ev.Broken = true
				}
				return ev
			}
			ev.Progress++
		case ChallengeAvoidance:
			if done {
				ev.Progress = 0
			} else {
				ev.Progress++
			}
		}
		day = NextDay(day)
	}
	return ev
}
