package engine

import (
	"testing"
	"time"
)

func activeStreak(target string, days int) Challenge {
	return Challenge{
		ID: "ch", Type: ChallengeStreak, TargetTaskID: target,
		DurationDays: days, RewardXP: 100,
		Status: ChallengeActive, StartDate: "2024-01-01",
	}
}

func TestStreakBreaksAtMissedDay(t *testing.T) {
	// t done on day1, day2, missing day3, done day4: progress freezes at 2.
	ch := activeStreak("t", 3)
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"t"}},
		{Date: "2024-01-02", Completed: []string{"t"}},
		{Date: "2024-01-04", Completed: []string{"t"}},
	}
	ev := EvaluateChallenge(ch, log, "2024-01-04")
	if ev.Progress != 2 {
		t.Fatalf("progress=%d, want 2 (broken at day3)", ev.Progress)
	}
	if !ev.Broken {
		t.Fatalf("expected Broken=true")
	}
}

func TestStreakTodayNotYetDoneIsNotBroken(t *testing.T) {
	ch := activeStreak("t", 5)
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"t"}},
		{Date: "2024-01-02", Completed: []string{"t"}},
	}
	ev := EvaluateChallenge(ch, log, "2024-01-03")
	if ev.Progress != 2 || ev.Broken {
		t.Fatalf("ev=%+v, want progress 2, not broken (today still open)", ev)
	}
}

func TestStreakCompletes(t *testing.T) {
	ch := activeStreak("t", 3)
	log := []DayLog{
		{Date: "2024-01-01", Completed: []string{"t"}},
		{Date: "2024-01-02", Completed: []string{"t"}},
		{Date: "2024-01-03", Completed: []string{"t"}},
	}
	ev := EvaluateChallenge(ch, log, "2024-01-03")
	if ev.Progress != 3 || ev.Broken {
		t.Fatalf("ev=%+v, want progress 3", ev)
	}
}

func TestAvoidanceResetsAndRecovers(t *testing.T) {
	ch := Challenge{
		ID: "av", Type: ChallengeAvoidance, TargetTaskID: "neg",
		DurationDays: 7, Status: ChallengeActive, StartDate: "2024-01-01",
	}
	// Clean Jan 1-2, violation Jan 3, clean Jan 4-6.
	log := []DayLog{
		{Date: "2024-01-03", Completed: []string{"neg"}},
	}
	ev := EvaluateChallenge(ch, log, "2024-01-06")
	if ev.Progress != 3 {
		t.Fatalf("progress=%d, want 3 (current clean run after reset)", ev.Progress)
	}
}

func TestAvoidanceMissingDaysCountClean(t *testing.T) {
	ch := Challenge{
		ID: "av", Type: ChallengeAvoidance, TargetTaskID: "neg",
		DurationDays: 3, Status: ChallengeActive, StartDate: "2024-01-01",
	}
	ev := EvaluateChallenge(ch, nil, "2024-01-03")
	if ev.Progress != 3 {
		t.Fatalf("progress=%d, want 3 (no log entries means no violations)", ev.Progress)
	}
}

func TestEvaluateInactiveChallengeIsZero(t *testing.T) {
	ch := Challenge{ID: "x", Type: ChallengeStreak, TargetTaskID: "t", Status: ChallengeAvailable}
	if ev := EvaluateChallenge(ch, nil, "2024-01-01"); ev.Progress != 0 {
		t.Fatalf("available challenge evaluated to %d", ev.Progress)
	}
}

func TestAcceptTransitions(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	ch := Challenge{ID: "c", Status: ChallengeAvailable}
	got := Accept(ch, now)
	if got.Status != ChallengeActive {
		t.Fatalf("status=%s, want active", got.Status)
	}
	if got.StartDate != "2024-03-10" {
		t.Fatalf("start=%s, want 2024-03-10", got.StartDate)
	}

	// Accepting again (or accepting a completed one) is a no-op.
	again := Accept(got, now.AddDate(0, 0, 5))
	if again != got {
		t.Fatalf("re-accept changed the challenge: %+v", again)
	}
	done := Challenge{ID: "c", Status: ChallengeCompleted}
	if out := Accept(done, now); out != done {
		t.Fatalf("accept on completed changed the challenge")
	}
}

func TestClaimTransitions(t *testing.T) {
	ch := Challenge{ID: "c", Status: ChallengeActive, DurationDays: 3, RewardXP: 50}

	if out := Claim(ch, 2); out.Status != ChallengeActive {
		t.Fatalf("claim below duration changed status to %s", out.Status)
	}
	if out := Claim(ch, 3); out.Status != ChallengeCompleted {
		t.Fatalf("eligible claim did not complete: %s", out.Status)
	}
	notStarted := Challenge{ID: "c", Status: ChallengeAvailable, DurationDays: 0}
	if out := Claim(notStarted, 99); out.Status != ChallengeAvailable {
		t.Fatalf("claim on available challenge changed status")
	}
}

func TestMergeChallengesStatusCarriesOver(t *testing.T) {
	builtin := BuiltinChallenges()
	stored := []Challenge{
		{ID: builtin[0].ID, Status: ChallengeActive, StartDate: "2024-02-01"},
		{ID: "custom_1", Title: "My vow", Type: ChallengeAvoidance, TargetTaskID: "neg_sugar",
			DurationDays: 5, RewardXP: 30, Status: ChallengeAvailable, IsCustom: true},
		{ID: "stale_not_custom", Status: ChallengeActive},
	}
	merged := MergeChallenges(builtin, stored)

	if merged[0].Status != ChallengeActive || merged[0].StartDate != "2024-02-01" {
		t.Fatalf("builtin state not carried over: %+v", merged[0])
	}
	if merged[0].RewardXP != builtin[0].RewardXP {
		t.Fatalf("builtin definition not authoritative")
	}

	var custom *Challenge
	for i := range merged {
		if merged[i].ID == "custom_1" {
			custom = &merged[i]
		}
		if merged[i].ID == "stale_not_custom" {
			t.Fatalf("non-custom stray row leaked through the merge")
		}
	}
	if custom == nil || custom.Title != "My vow" {
		t.Fatalf("custom challenge lost in merge")
	}
}
