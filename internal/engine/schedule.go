package engine

import (
	"fmt"
	"math"
)

// Progress is the aggregate completion state of a campaign.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// StageProgress counts how many of the task's stages appear anywhere in the
// log's completed-id union. A stage counts as done forever once logged on any
// date.
func StageProgress(task *Task, log []DayLog) Progress {
	if task == nil || len(task.Stages) == 0 {
		return Progress{}
	}
	done := CompletedIDs(log)
	p := Progress{Total: len(task.Stages)}
	for _, s := range task.Stages {
		if done[s.ID] {
			p.Completed++
		}
	}
	p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	return p
}

// IsStageUnlocked reports whether a stage's prerequisite chain is satisfied.
// A stage with no dependency is always unlocked. A dependency completed on
// any date satisfies all later stages. A stage that can reach itself through
// DependsOn edges is never unlocked; same for one whose prerequisite was
// deleted (its id can never appear in the log).
func IsStageUnlocked(task *Task, stage Stage, log []DayLog) bool {
	if onDependencyCycle(task, stage) {
		return false
	}
	if stage.DependsOn == "" {
		return true
	}
	return CompletedIDs(log)[stage.DependsOn]
}

// onDependencyCycle walks DependsOn edges from the stage and reports whether
// it reaches itself.
func onDependencyCycle(task *Task, stage Stage) bool {
	if task == nil {
		return false
	}
	byID := make(map[string]Stage, len(task.Stages))
	for _, s := range task.Stages {
		byID[s.ID] = s
	}
	cur := stage
	for steps := 0; steps <= len(task.Stages); steps++ {
		if cur.DependsOn == "" {
			return false
		}
		if cur.DependsOn == stage.ID {
			return true
		}
		next, ok := byID[cur.DependsOn]
		if !ok {
			return false
		}
		cur = next
	}
	// More hops than stages means we are stuck inside somebody's cycle.
	return true
}

// StageOn returns the stage scheduled for the given date, if any. At most one
// stage per date is assumed per task; the first match wins.
func StageOn(task *Task, date string) *Stage {
	if task == nil {
		return nil
	}
	for i := range task.Stages {
		if task.Stages[i].Date == date {
			return &task.Stages[i]
		}
	}
	return nil
}

type StageState string

const (
	StageCompleted  StageState = "completed"
	StageUnlockable StageState = "unlockable"
	StageScheduled  StageState = "scheduled"
	StageOverdue    StageState = "overdue"
	StageLocked     StageState = "locked"
)

// StageStateOf classifies a stage for display and action gating. Completion
// beats everything; a locked stage stays locked even past its date.
func StageStateOf(task *Task, stage Stage, log []DayLog, today string) StageState {
	if CompletedIDs(log)[stage.ID] {
		return StageCompleted
	}
	if !IsStageUnlocked(task, stage, log) {
		return StageLocked
	}
	if stage.Date > today {
		return StageScheduled
	}
	if stage.Date < today {
		return StageOverdue
	}
	return StageUnlockable
}

// ValidateStages checks the referential shape of a Temporary task's stage
// collection: required fields, sibling-only dependencies, no cycles.
// Creation goes through this; an already-persisted degenerate state (deleted
// prerequisite) is tolerated at query time instead.
func ValidateStages(task *Task) error {
	byID := make(map[string]bool, len(task.Stages))
	for _, s := range task.Stages {
		if s.Name == "" {
			return fmt.Errorf("stage %s needs a name", s.ID)
		}
		if s.Date == "" {
			return fmt.Errorf("stage %s needs a date", s.ID)
		}
		if byID[s.ID] {
			return fmt.Errorf("duplicate stage id %q", s.ID)
		}
		byID[s.ID] = true
	}
	for _, s := range task.Stages {
		if s.DependsOn == "" {
			continue
		}
		if s.DependsOn == s.ID {
			return fmt.Errorf("stage %s depends on itself", s.ID)
		}
		if !byID[s.DependsOn] {
			return fmt.Errorf("stage %s depends on unknown sibling %q", s.ID, s.DependsOn)
		}
		if onDependencyCycle(task, s) {
			return fmt.Errorf("stage %s is on a dependency cycle", s.ID)
		}
	}
	return nil
}
