package storage

import "time"

// TaskRecord is a persisted user-created task. Categories is kept JSON-encoded
// in the row and decoded by the repo.
type TaskRecord struct {
	ID         string
	Name       string
	Type       string
	Categories []string
	Difficulty *string
	Penalty    *int
	IsCustom   bool
	Stages     []StageRecord
}

type StageRecord struct {
	ID         string
	TaskID     string
	Name       string
	Date       string
	Difficulty *string
	DependsOn  *string
}

// DayItem is one (date, item) membership row of the completion log.
type DayItem struct {
	Date   string
	ItemID string
}

type ChallengeRecord struct {
	ID           string
	Status       string
	StartDate    *string
	IsCustom     bool
	Title        *string
	Description  *string
	Type         *string
	TargetTaskID *string
	DurationDays *int
	RewardXP     *int
}

type Profile struct {
	Key       string
	Name      string
	Age       int
	ClassName string
	CreatedAt time.Time
}
