package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Task is a trackable activity definition. Temporary tasks are staged
// campaigns and own their Stages; every other type is a plain habit.
type Task struct {
	ID         string
	Name       string
	Type       TaskType
	Categories []Category
	Difficulty Difficulty // empty means the flat XPPerTask reward
	Penalty    int        // Negative tasks only; 0 means DefaultPenalty
	Stages     []Stage    // Temporary tasks only
	IsCustom   bool
}

// Stage is a dated checkpoint belonging to one Temporary task. Completions
// are logged under the stage id, not the parent task id.
type Stage struct {
	ID         string
	Name       string
	Date       string // YYYY-MM-DD
	Difficulty Difficulty
	DependsOn  string // sibling stage id, empty when unconditional
}

// NewTaskID mints an id for a user-created task.
func NewTaskID() string { return "task_" + uuid.NewString() }

// NewStageID mints an id for a user-created stage.
func NewStageID() string { return "stage_" + uuid.NewString() }

// NewProjectID mints an id for a user-created campaign.
func NewProjectID() string { return "proj_" + uuid.NewString() }

// BuiltinTasks returns the code-defined catalog. The authoritative definition
// always wins over anything persisted under the same id.
func BuiltinTasks() []Task {
	return []Task{
		{ID: "basic_exercise", Name: "Morning exercise", Type: TaskBasic, Categories: []Category{CategoryPhysical}},
		{ID: "basic_food", Name: "Healthy eating", Type: TaskBasic, Categories: []Category{CategoryHealth}},
		{ID: "basic_sleep", Name: "Full night's sleep", Type: TaskBasic, Categories: []Category{CategoryIntellect, CategoryHealth}},
		{ID: "basic_calm", Name: "Meditation", Type: TaskBasic, Categories: []Category{CategoryHealth}},

		{ID: "const_run", Name: "Running", Type: TaskConstant, Categories: []Category{CategoryPhysical}},
		{ID: "const_strength", Name: "Strength training", Type: TaskConstant, Categories: []Category{CategoryPhysical}},
		{ID: "const_read", Name: "Reading", Type: TaskConstant, Categories: []Category{CategoryIntellect}},
		{ID: "const_martial", Name: "Martial arts", Type: TaskConstant, Categories: []Category{CategoryPhysical}},
		{ID: "const_lang", Name: "Foreign languages", Type: TaskConstant, Categories: []Category{CategoryIntellect}},

		{ID: "neg_sugar", Name: "Sugar / sweets", Type: TaskNegative, Penalty: 30, Categories: []Category{CategoryPhysical, CategoryIntellect, CategoryHealth}},
		{ID: "neg_fastfood", Name: "Fast food", Type: TaskNegative, Penalty: 20, Categories: []Category{CategoryHealth}},
		{ID: "neg_scrolling", Name: "Doomscrolling", Type: TaskNegative, Penalty: 20, Categories: []Category{CategoryIntellect}},
	}
}

// FocusDurations maps builtin task ids to their default focus-timer length
// in seconds.
var FocusDurations = map[string]int{
	"basic_exercise": 20 * 60,
	"const_run":      60 * 60,
	"const_strength": 60 * 60,
	"const_read":     25 * 60,
}

// MergeTasks combines the code-defined catalog with persisted entries.
// Built-ins win on id collision, customs pass through verbatim, and new
// built-ins are always present even if storage predates them.
func MergeTasks(builtin, stored []Task) []Task {
	out := make([]Task, 0, len(builtin)+len(stored))
	out = append(out, builtin...)

	seen := make(map[string]bool, len(builtin))
	for _, t := range builtin {
		seen[t.ID] = true
	}
	for _, t := range stored {
		if !t.IsCustom || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// ResolvedItem is what a completed id in the log points at. Stage is nil when
// the id named the task directly.
type ResolvedItem struct {
	Task       *Task
	Stage      *Stage
	Difficulty Difficulty
	Categories []Category
	Negative   bool
}

// Index is a single lookup table from any completable id (task or stage) to
// its resolved credit. Built once per catalog snapshot.
type Index map[string]ResolvedItem

// BuildIndex indexes every task and stage id in the catalog. Ids must be
// globally unique across tasks and stages; a duplicate is a catalog
// integrity error, not a resolution fallback.
func BuildIndex(catalog []Task) (Index, error) {
	idx := make(Index, len(catalog))
	for i := range catalog {
		t := &catalog[i]
		if _, dup := idx[t.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", t.ID)
		}
		idx[t.ID] = ResolvedItem{
			Task:       t,
			Difficulty: t.Difficulty,
			Categories: t.Categories,
			Negative:   t.Type == TaskNegative,
		}
		for j := range t.Stages {
			s := &t.Stages[j]
			if _, dup := idx[s.ID]; dup {
				return nil, fmt.Errorf("duplicate catalog id %q", s.ID)
			}
			idx[s.ID] = ResolvedItem{
				Task:       t,
				Stage:      s,
				Difficulty: s.Difficulty,
				Categories: t.Categories,
				Negative:   t.Type == TaskNegative,
			}
		}
	}
	return idx, nil
}

// FindTask returns the task with the given id, or nil.
func FindTask(catalog []Task, id string) *Task {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// ValidateTask checks the referential shape of a task definition.
func ValidateTask(t Task) error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid task type: %q", t.Type)
	}
	if len(t.Categories) == 0 {
		return fmt.Errorf("task %s needs at least one category", t.ID)
	}
	for _, c := range t.Categories {
		if !c.IsValid() {
			return fmt.Errorf("task %s has invalid category %q", t.ID, c)
		}
	}
	if t.Difficulty != "" && !t.Difficulty.IsValid() {
		return fmt.Errorf("task %s has invalid difficulty %q", t.ID, t.Difficulty)
	}
	if len(t.Stages) > 0 && t.Type != TaskTemporary {
		return fmt.Errorf("task %s has stages but is not Temporary", t.ID)
	}
	return nil
}
