package engine

import "testing"

func TestMergeTasksBuiltinWins(t *testing.T) {
	builtin := BuiltinTasks()
	stale := builtin[0]
	stale.Name = "Renamed by old storage"
	stale.IsCustom = true // even flagged custom, the id collision loses

	custom := Task{
		ID: "task_custom", Name: "Journal", Type: TaskBasic,
		Categories: []Category{CategoryIntellect}, IsCustom: true,
	}
	merged := MergeTasks(builtin, []Task{stale, custom})

	got := FindTask(merged, builtin[0].ID)
	if got == nil || got.Name != builtin[0].Name {
		t.Fatalf("builtin definition did not win: %+v", got)
	}
	if FindTask(merged, "task_custom") == nil {
		t.Fatalf("custom task dropped by merge")
	}
	if len(merged) != len(builtin)+1 {
		t.Fatalf("merged size=%d, want %d", len(merged), len(builtin)+1)
	}
}

func TestMergeTasksAppendsNewBuiltins(t *testing.T) {
	// Storage written before a builtin existed: the merge still yields it.
	merged := MergeTasks(BuiltinTasks(), nil)
	if FindTask(merged, "neg_scrolling") == nil {
		t.Fatalf("new builtin missing after merge")
	}
}

func TestBuildIndexResolvesTasksAndStages(t *testing.T) {
	catalog := []Task{
		{ID: "t", Name: "T", Type: TaskBasic, Categories: []Category{CategoryHealth}},
		{ID: "p", Name: "P", Type: TaskTemporary, Categories: []Category{CategoryProfessional},
			Stages: []Stage{{ID: "s", Name: "S", Date: "2024-01-01", Difficulty: DifficultyEpic}}},
	}
	idx, err := BuildIndex(catalog)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	item, ok := idx["s"]
	if !ok {
		t.Fatalf("stage id not indexed")
	}
	if item.Task.ID != "p" || item.Stage == nil || item.Difficulty != DifficultyEpic {
		t.Fatalf("stage resolution wrong: %+v", item)
	}
	if item.Negative {
		t.Fatalf("stage of a Temporary task marked negative")
	}
}

func TestBuildIndexRejectsDuplicateIDs(t *testing.T) {
	dupTask := []Task{
		{ID: "x", Name: "A", Type: TaskBasic, Categories: []Category{CategoryHealth}},
		{ID: "x", Name: "B", Type: TaskBasic, Categories: []Category{CategoryHealth}},
	}
	if _, err := BuildIndex(dupTask); err == nil {
		t.Fatalf("duplicate task id accepted")
	}

	stageShadowsTask := []Task{
		{ID: "t", Name: "T", Type: TaskBasic, Categories: []Category{CategoryHealth}},
		{ID: "p", Name: "P", Type: TaskTemporary, Categories: []Category{CategoryProfessional},
			Stages: []Stage{{ID: "t", Name: "S", Date: "2024-01-01"}}},
	}
	if _, err := BuildIndex(stageShadowsTask); err == nil {
		t.Fatalf("stage id shadowing a task id accepted")
	}
}

func TestValidateTask(t *testing.T) {
	ok := Task{ID: "a", Name: "A", Type: TaskBasic, Categories: []Category{CategoryHealth}}
	if err := ValidateTask(ok); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	noCats := Task{ID: "a", Name: "A", Type: TaskBasic}
	if err := ValidateTask(noCats); err == nil {
		t.Fatalf("task without categories accepted")
	}

	stagedBasic := Task{ID: "a", Name: "A", Type: TaskBasic,
		Categories: []Category{CategoryHealth},
		Stages:     []Stage{{ID: "s", Name: "S", Date: "2024-01-01"}}}
	if err := ValidateTask(stagedBasic); err == nil {
		t.Fatalf("non-Temporary task with stages accepted")
	}

	badType := Task{ID: "a", Name: "A", Type: "Weird", Categories: []Category{CategoryHealth}}
	if err := ValidateTask(badType); err == nil {
		t.Fatalf("invalid type accepted")
	}
}

func TestBuiltinCatalogShape(t *testing.T) {
	if _, err := BuildIndex(BuiltinTasks()); err != nil {
		t.Fatalf("builtin catalog has duplicate ids: %v", err)
	}
	for _, task := range BuiltinTasks() {
		if err := ValidateTask(task); err != nil {
			t.Fatalf("builtin task %s invalid: %v", task.ID, err)
		}
	}
	for _, ch := range BuiltinChallenges() {
		if FindTask(BuiltinTasks(), ch.TargetTaskID) == nil {
			t.Fatalf("challenge %s targets unknown task %s", ch.ID, ch.TargetTaskID)
		}
	}
}
