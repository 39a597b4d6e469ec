package engine

import "testing"

func campaignFixture() *Task {
	return &Task{
		ID: "proj_site", Name: "Launch the site", Type: TaskTemporary,
		Categories: []Category{CategoryProfessional},
		Stages: []Stage{
			{ID: "s1", Name: "Outline", Date: "2024-04-01", Difficulty: DifficultyEasy},
			{ID: "s2", Name: "Draft", Date: "2024-04-03", Difficulty: DifficultyMedium, DependsOn: "s1"},
			{ID: "s3", Name: "Publish", Date: "2024-04-07", Difficulty: DifficultyHard, DependsOn: "s2"},
		},
	}
}

func TestDependencyLock(t *testing.T) {
	task := campaignFixture()
	// s2 logged without s1 — an out-of-order log the UI should prevent,
	// but the unlock query must still report locked.
	log := []DayLog{{Date: "2024-04-03", Completed: []string{"s2"}}}

	if IsStageUnlocked(task, task.Stages[1], log) {
		t.Fatalf("s2 reported unlocked while s1 is absent from the log")
	}
	if !IsStageUnlocked(task, task.Stages[0], log) {
		t.Fatalf("s1 has no dependency and must be unlocked")
	}
}

func TestDependencySatisfiedAcrossDates(t *testing.T) {
	task := campaignFixture()
	// s1 completed weeks later than scheduled still satisfies s2.
	log := []DayLog{{Date: "2024-05-20", Completed: []string{"s1"}}}

	if !IsStageUnlocked(task, task.Stages[1], log) {
		t.Fatalf("s2 locked although s1 appears in the log")
	}
}

func TestDependencyCycleNeverUnlocks(t *testing.T) {
	task := &Task{
		ID: "proj_loop", Type: TaskTemporary, Categories: []Category{CategoryProfessional},
		Stages: []Stage{
			{ID: "a", Name: "A", Date: "2024-01-01", DependsOn: "b"},
			{ID: "b", Name: "B", Date: "2024-01-02", DependsOn: "a"},
		},
	}
	log := []DayLog{{Date: "2024-01-05", Completed: []string{"a", "b"}}}

	for _, s := range task.Stages {
		if IsStageUnlocked(task, s, log) {
			t.Fatalf("stage %s on a cycle reported unlocked", s.ID)
		}
	}
}

func TestDeletedPrerequisiteStaysLocked(t *testing.T) {
	task := &Task{
		ID: "proj_gap", Type: TaskTemporary, Categories: []Category{CategoryProfessional},
		Stages: []Stage{
			{ID: "s2", Name: "Dependent", Date: "2024-01-02", DependsOn: "s_gone"},
		},
	}
	if IsStageUnlocked(task, task.Stages[0], nil) {
		t.Fatalf("stage with deleted prerequisite reported unlocked")
	}
}

func TestStageProgress(t *testing.T) {
	task := campaignFixture()

	if p := StageProgress(task, nil); p.Percent != 0 || p.Total != 3 {
		t.Fatalf("empty log progress=%+v", p)
	}

	log := []DayLog{
		{Date: "2024-04-01", Completed: []string{"s1"}},
		{Date: "2024-04-03", Completed: []string{"s2"}},
	}
	p := StageProgress(task, log)
	if p.Completed != 2 || p.Percent != 67 {
		t.Fatalf("progress=%+v, want 2/3 -> 67%%", p)
	}

	log = ToggleCompletion(log, "2024-04-09", "s3")
	p = StageProgress(task, log)
	if p.Completed != 3 || p.Percent != 100 {
		t.Fatalf("full progress=%+v, want 100%%", p)
	}
}

func TestStageProgressEmptyCampaign(t *testing.T) {
	task := &Task{ID: "p", Type: TaskTemporary, Categories: []Category{CategoryProfessional}}
	if p := StageProgress(task, nil); p.Percent != 0 {
		t.Fatalf("no stages, percent=%d, want 0", p.Percent)
	}
}

func TestStageOn(t *testing.T) {
	task := campaignFixture()
	if s := StageOn(task, "2024-04-03"); s == nil || s.ID != "s2" {
		t.Fatalf("StageOn 2024-04-03 = %v, want s2", s)
	}
	if s := StageOn(task, "2024-04-02"); s != nil {
		t.Fatalf("StageOn empty date = %v, want nil", s)
	}
}

func TestStageStateOf(t *testing.T) {
	task := campaignFixture()
	log := []DayLog{{Date: "2024-04-01", Completed: []string{"s1"}}}

	cases := []struct {
		stage Stage
		today string
		want  StageState
	}{
		{task.Stages[0], "2024-04-02", StageCompleted},
		{task.Stages[1], "2024-04-03", StageUnlockable},
		{task.Stages[1], "2024-04-02", StageScheduled},
		{task.Stages[1], "2024-04-05", StageOverdue},
		{task.Stages[2], "2024-04-10", StageLocked},
	}
	for _, tc := range cases {
		if got := StageStateOf(task, tc.stage, log, tc.today); got != tc.want {
			t.Fatalf("state of %s at %s = %s, want %s", tc.stage.ID, tc.today, got, tc.want)
		}
	}
}

func TestValidateStages(t *testing.T) {
	ok := campaignFixture()
	if err := ValidateStages(ok); err != nil {
		t.Fatalf("valid stages rejected: %v", err)
	}

	selfRef := &Task{Stages: []Stage{{ID: "x", Name: "X", Date: "2024-01-01", DependsOn: "x"}}}
	if err := ValidateStages(selfRef); err == nil {
		t.Fatalf("self-dependency accepted")
	}

	unknownDep := &Task{Stages: []Stage{{ID: "x", Name: "X", Date: "2024-01-01", DependsOn: "nope"}}}
	if err := ValidateStages(unknownDep); err == nil {
		t.Fatalf("dependency on unknown sibling accepted")
	}

	cycle := &Task{Stages: []Stage{
		{ID: "a", Name: "A", Date: "2024-01-01", DependsOn: "b"},
		{ID: "b", Name: "B", Date: "2024-01-02", DependsOn: "a"},
	}}
	if err := ValidateStages(cycle); err == nil {
		t.Fatalf("dependency cycle accepted")
	}

	noDate := &Task{Stages: []Stage{{ID: "a", Name: "A"}}}
	if err := ValidateStages(noDate); err == nil {
		t.Fatalf("stage without date accepted")
	}
}
