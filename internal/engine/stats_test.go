package engine

import (
	"math/rand"
	"testing"
)

func TestComputeStatsBasicReward(t *testing.T) {
	catalog := []Task{
		{ID: "t1", Name: "Stretch", Type: TaskBasic, Categories: []Category{CategoryPhysical}},
	}
	log := []DayLog{{Date: "2024-01-01", Completed: []string{"t1"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != 10 {
		t.Fatalf("xp=%d, want 10", stats.XP)
	}
	if stats.Level != 1 {
		t.Fatalf("level=%d, want 1", stats.Level)
	}
	if got := stats.Score(CategoryPhysical); got != 5 {
		t.Fatalf("Physical=%d, want 5", got)
	}
	for _, c := range []Category{CategoryIntellect, CategoryHealth, CategoryProfessional} {
		if got := stats.Score(c); got != 0 {
			t.Fatalf("%s=%d, want 0", c, got)
		}
	}
}

func TestComputeStatsNegativePenaltyAndCategoryFloor(t *testing.T) {
	catalog := []Task{
		{ID: "neg_sugar", Name: "Sugar", Type: TaskNegative, Penalty: 30,
			Categories: []Category{CategoryPhysical, CategoryIntellect, CategoryHealth}},
	}
	log := []DayLog{{Date: "2024-01-01", Completed: []string{"neg_sugar"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != -30 {
		t.Fatalf("xp=%d, want -30", stats.XP)
	}
	if stats.Level != 1 {
		t.Fatalf("level=%d, want 1 (never below 1)", stats.Level)
	}
	for _, c := range []Category{CategoryPhysical, CategoryIntellect, CategoryHealth} {
		if got := stats.Score(c); got != 0 {
			t.Fatalf("%s=%d, want 0 (floored)", c, got)
		}
	}
}

func TestComputeStatsDefaultPenalty(t *testing.T) {
	catalog := []Task{
		{ID: "neg_x", Name: "Vice", Type: TaskNegative, Categories: []Category{CategoryHealth}},
	}
	log := []DayLog{{Date: "2024-02-02", Completed: []string{"neg_x"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != -DefaultPenalty {
		t.Fatalf("xp=%d, want %d", stats.XP, -DefaultPenalty)
	}
}

func TestComputeStatsDifficultyTable(t *testing.T) {
	catalog := []Task{
		{ID: "easy", Name: "E", Type: TaskBasic, Difficulty: DifficultyEasy, Categories: []Category{CategoryHealth}},
		{ID: "epic", Name: "X", Type: TaskConstant, Difficulty: DifficultyEpic, Categories: []Category{CategoryPhysical}},
	}
	log := []DayLog{{Date: "2024-01-05", Completed: []string{"easy", "epic"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != 55 {
		t.Fatalf("xp=%d, want 55 (5+50)", stats.XP)
	}
}

func TestComputeStatsStageCreditsParentCategories(t *testing.T) {
	catalog := []Task{
		{ID: "proj", Name: "Campaign", Type: TaskTemporary,
			Categories: []Category{CategoryProfessional},
			Stages: []Stage{
				{ID: "s1", Name: "Draft", Date: "2024-03-01", Difficulty: DifficultyHard},
			}},
	}
	log := []DayLog{{Date: "2024-03-04", Completed: []string{"s1"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != 25 {
		t.Fatalf("xp=%d, want 25 (stage difficulty, not parent's)", stats.XP)
	}
	if got := stats.Score(CategoryProfessional); got != 5 {
		t.Fatalf("Professional=%d, want 5 (parent categories)", got)
	}
}

func TestComputeStatsSkipsDanglingIDs(t *testing.T) {
	catalog := []Task{
		{ID: "t1", Name: "T", Type: TaskBasic, Categories: []Category{CategoryHealth}},
	}
	log := []DayLog{{Date: "2024-01-01", Completed: []string{"deleted_task", "t1"}}}

	stats := ComputeStats(catalog, log)
	if stats.XP != 10 {
		t.Fatalf("xp=%d, want 10 (dangling id skipped)", stats.XP)
	}
}

func TestComputeStatsSameDayRewardAndPenaltyOrder(t *testing.T) {
	// A reward and a penalty on the same day must settle to one value no
	// matter which way the ids arrive: the floor fires relative to the
	// canonical fold order, not the input order.
	catalog := BuiltinTasks()
	a := ComputeStats(catalog, []DayLog{
		{Date: "2024-01-01", Completed: []string{"basic_exercise", "neg_sugar"}},
	})
	b := ComputeStats(catalog, []DayLog{
		{Date: "2024-01-01", Completed: []string{"neg_sugar", "basic_exercise"}},
	})
	for _, c := range Categories {
		if a.Score(c) != b.Score(c) {
			t.Fatalf("%s differs by id order: %d vs %d", c, a.Score(c), b.Score(c))
		}
	}
	if a.XP != b.XP {
		t.Fatalf("xp differs by id order: %d vs %d", a.XP, b.XP)
	}
	if got := a.Score(CategoryPhysical); got != 0 {
		t.Fatalf("Physical=%d, want 0 (reward credited before the penalty floors it)", got)
	}
}

func TestComputeStatsOrderIndependence(t *testing.T) {
	catalog := BuiltinTasks()
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"basic_exercise", "const_read", "neg_sugar"}},
		{Date: "2024-01-02", Completed: []string{"const_run"}},
		{Date: "2024-01-03", Completed: []string{"basic_sleep", "neg_fastfood"}},
	}
	want := ComputeStats(catalog, log)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]DayLog(nil), log...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		for i := range shuffled {
			ids := append([]string(nil), shuffled[i].Completed...)
			rng.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })
			shuffled[i].Completed = ids
		}
		got := ComputeStats(catalog, shuffled)
		if got.XP != want.XP || got.Level != want.Level {
			t.Fatalf("trial %d: xp/level changed under shuffle: got %d/%d want %d/%d",
				trial, got.XP, got.Level, want.XP, want.Level)
		}
		for _, c := range Categories {
			if got.Score(c) != want.Score(c) {
				t.Fatalf("trial %d: %s changed under shuffle: got %d want %d", trial, c, got.Score(c), want.Score(c))
			}
		}
	}
}

func TestLevelMonotonicityUnderAddedRewards(t *testing.T) {
	catalog := BuiltinTasks()
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"basic_exercise"}},
	}
	base := ComputeStats(catalog, log)

	grown := append([]DayLog(nil), log...)
	for day, id := range map[string]string{
		"2024-01-02": "const_run",
		"2024-01-03": "const_read",
		"2024-01-04": "basic_sleep",
	} {
		grown = ToggleCompletion(grown, day, id)
		next := ComputeStats(catalog, grown)
		if next.Level < base.Level {
			t.Fatalf("level dropped from %d to %d after adding reward completions", base.Level, next.Level)
		}
		base = next
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{-500, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestApplyChallengeRewards(t *testing.T) {
	stats := NewUserStats()
	stats.XP = 90
	stats.Level = LevelForXP(stats.XP)

	challenges := []Challenge{
		{ID: "a", Status: ChallengeCompleted, RewardXP: 50},
		{ID: "b", Status: ChallengeActive, RewardXP: 500},
		{ID: "c", Status: ChallengeAvailable, RewardXP: 500},
	}
	got := ApplyChallengeRewards(stats, challenges)
	if got.XP != 140 {
		t.Fatalf("xp=%d, want 140 (only completed rewards)", got.XP)
	}
	if got.Level != 2 {
		t.Fatalf("level=%d, want 2", got.Level)
	}
}
