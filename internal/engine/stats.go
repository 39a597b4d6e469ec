package engine

import "sort"

// UserStats is fully derived from the catalog and the log. It is recomputed
// on every read and never persisted as authoritative state.
type UserStats struct {
	XP     int
	Level  int
	Scores map[Category]int
}

// Score returns the attribute value for a category (0 when untouched).
func (s UserStats) Score(c Category) int {
	return s.Scores[c]
}

// NewUserStats returns zeroed stats at level 1.
func NewUserStats() UserStats {
	scores := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	return UserStats{XP: 0, Level: 1, Scores: scores}
}

// ComputeStats folds the completion log into current XP, level, and
// per-category attributes. The result is independent of log order and of id
// order within a day. Ids that resolve to nothing (the task was deleted after
// being logged) contribute nothing.
func ComputeStats(catalog []Task, log []DayLog) UserStats {
	idx, err := BuildIndex(catalog)
	if err != nil {
		// A corrupt catalog yields no credit rather than a panic; the
		// merge path reports duplicates before we ever get here.
		return NewUserStats()
	}
	return computeStats(idx, log)
}

func computeStats(idx Index, log []DayLog) UserStats {
	stats := NewUserStats()

	// The per-event category floor makes the fold order-sensitive, so fold
	// over a canonical ordering: dates ascending, ids sorted within a day.
	for _, day := range SortByDate(log) {
		ids := append([]string(nil), day.Completed...)
		sort.Strings(ids)
		for _, id := range ids {
			item, ok := idx[id]
			if !ok {
				continue
			}
			if item.Negative {
				penalty := item.Task.Penalty
				if penalty <= 0 {
					penalty = DefaultPenalty
				}
				stats.XP -= penalty
				for _, c := range item.Categories {
					stats.Scores[c] -= CategoryPenalty
					if stats.Scores[c] < 0 {
						stats.Scores[c] = 0
					}
				}
				continue
			}

			if item.Difficulty != "" {
				stats.XP += XPForDifficulty(item.Difficulty)
			} else {
				stats.XP += XPPerTask
			}
			for _, c := range item.Categories {
				stats.Scores[c] += CategoryReward
			}
		}
	}

	stats.Level = LevelForXP(stats.XP)
	return stats
}

// LevelForXP derives the level from signed XP. Negative XP is floored to 0
// first; the level never drops below 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := 1 + xp/XPToLevelUp
	if level < 1 {
		level = 1
	}
	return level
}

// LevelProgress returns XP inside the current level and the level span, for
// progress bars. Negative XP reads as an empty bar.
func LevelProgress(xp int) (current, span int) {
	if xp < 0 {
		xp = 0
	}
	return xp % XPToLevelUp, XPToLevelUp
}

// ApplyChallengeRewards adds the reward XP of every claimed challenge to the
// ledger and re-derives the level. Challenges are not tasks: their reward is
// a flat event independent of the per-task credit model.
func ApplyChallengeRewards(stats UserStats, challenges []Challenge) UserStats {
	for _, ch := range challenges {
		if ch.Status == ChallengeCompleted {
			stats.XP += ch.RewardXP
		}
	}
	stats.Level = LevelForXP(stats.XP)
	return stats
}
