package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"discipline/internal/storage"
)

// Service is the storage-backed facade over the pure engine. It merges the
// code-defined catalogs with persisted user entries on every load, so derived
// reads always see one immutable snapshot.
type Service struct {
	db         *sql.DB
	tasks      *storage.TaskRepo
	logs       *storage.LogRepo
	challenges *storage.ChallengeRepo
	profiles   *storage.ProfileRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		tasks:      storage.NewTaskRepo(db),
		logs:       storage.NewLogRepo(db),
		challenges: storage.NewChallengeRepo(db),
		profiles:   storage.NewProfileRepo(db),
	}
}

func (s *Service) TaskRepo() *storage.TaskRepo           { return s.tasks }
func (s *Service) LogRepo() *storage.LogRepo             { return s.logs }
func (s *Service) ChallengeRepo() *storage.ChallengeRepo { return s.challenges }
func (s *Service) ProfileRepo() *storage.ProfileRepo     { return s.profiles }

// Catalog loads the merged task catalog: built-ins first (authoritative),
// then persisted customs.
func (s *Service) Catalog(ctx context.Context) ([]Task, error) {
	records, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stored := make([]Task, 0, len(records))
	for _, rec := range records {
		stored = append(stored, taskFromRecord(rec))
	}
	return MergeTasks(BuiltinTasks(), stored), nil
}

// Log loads the whole completion log grouped by date.
func (s *Service) Log(ctx context.Context) ([]DayLog, error) {
	items, err := s.logs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []DayLog
	byDate := map[string]int{}
	for _, it := range items {
		i, ok := byDate[it.Date]
		if !ok {
			out = append(out, DayLog{Date: it.Date})
			i = len(out) - 1
			byDate[it.Date] = i
		}
		out[i].Completed = append(out[i].Completed, it.ItemID)
	}
	return out, nil
}

// Challenges loads the merged challenge board.
func (s *Service) Challenges(ctx context.Context) ([]Challenge, error) {
	records, err := s.challenges.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stored := make([]Challenge, 0, len(records))
	for _, rec := range records {
		stored = append(stored, challengeFromRecord(rec))
	}
	return MergeChallenges(BuiltinChallenges(), stored), nil
}

// Stats recomputes derived stats from the catalog, the log, and claimed
// challenge rewards.
func (s *Service) Stats(ctx context.Context) (UserStats, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return NewUserStats(), err
	}
	log, err := s.Log(ctx)
	if err != nil {
		return NewUserStats(), err
	}
	challenges, err := s.Challenges(ctx)
	if err != nil {
		return NewUserStats(), err
	}
	return ApplyChallengeRewards(ComputeStats(catalog, log), challenges), nil
}

// Title resolves the narrative title for the current stats.
func (s *Service) Title(ctx context.Context) (Title, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return Title{}, err
	}
	return ResolveTitle(stats), nil
}

// Toggle flips one completion in the persisted log. The id is not required
// to resolve: logging ahead of catalog edits is allowed, the fold just skips
// dangling ids.
func (s *Service) Toggle(ctx context.Context, date, id string) (added bool, err error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return false, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	if strings.TrimSpace(id) == "" {
		return false, errors.New("item id is required")
	}
	return s.logs.Toggle(ctx, date, id)
}

type CreateTaskInput struct {
	Name       string
	Type       TaskType
	Categories []Category
	Difficulty Difficulty
	Penalty    int
}

// AddTask creates a custom task.
func (s *Service) AddTask(ctx context.Context, in CreateTaskInput) (Task, error) {
	t := Task{
		ID:         NewTaskID(),
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		Categories: in.Categories,
		Difficulty: in.Difficulty,
		Penalty:    in.Penalty,
		IsCustom:   true,
	}
	if err := ValidateTask(t); err != nil {
		return Task{}, err
	}
	if err := s.tasks.Insert(ctx, recordFromTask(t)); err != nil {
		return Task{}, err
	}
	return t, nil
}

// AddProject creates a custom Temporary task with an empty stage list.
func (s *Service) AddProject(ctx context.Context, name string) (Task, error) {
	t := Task{
		ID:         NewProjectID(),
		Name:       strings.TrimSpace(name),
		Type:       TaskTemporary,
		Categories: []Category{CategoryProfessional},
		Difficulty: DifficultyMedium,
		IsCustom:   true,
	}
	if err := ValidateTask(t); err != nil {
		return Task{}, err
	}
	if err := s.tasks.Insert(ctx, recordFromTask(t)); err != nil {
		return Task{}, err
	}
	return t, nil
}

// DeleteTask removes a custom task. Built-ins cannot be deleted; the merge
// would resurrect them anyway.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	rec, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		if FindTask(BuiltinTasks(), id) != nil {
			return fmt.Errorf("task %s is built-in and cannot be deleted", id)
		}
		return fmt.Errorf("task %s not found", id)
	}
	return s.tasks.Delete(ctx, id)
}

// DependsNone is the StageInput.DependsOn sentinel that clears an existing
// dependency on update. An empty DependsOn means "keep".
const DependsNone = "none"

type StageInput struct {
	Name       string
	Date       string
	Difficulty Difficulty
	DependsOn  string
}

// AddStage appends a stage to a Temporary task after validating the would-be
// stage collection (required fields, sibling dependency, no cycles).
func (s *Service) AddStage(ctx context.Context, taskID string, in StageInput) (Stage, error) {
	task, err := s.temporaryTask(ctx, taskID)
	if err != nil {
		return Stage{}, err
	}

	stage := Stage{
		ID:         NewStageID(),
		Name:       strings.TrimSpace(in.Name),
		Date:       in.Date,
		Difficulty: in.Difficulty,
		DependsOn:  in.DependsOn,
	}
	if stage.DependsOn == DependsNone {
		stage.DependsOn = ""
	}
	if stage.Date != "" {
		if _, err := time.Parse(DateLayout, stage.Date); err != nil {
			return Stage{}, fmt.Errorf("invalid stage date %q (want YYYY-MM-DD)", stage.Date)
		}
	}
	candidate := *task
	candidate.Stages = append(append([]Stage(nil), task.Stages...), stage)
	if err := ValidateStages(&candidate); err != nil {
		return Stage{}, err
	}

	if err := s.tasks.InsertStage(ctx, stageToRecord(taskID, stage)); err != nil {
		return Stage{}, err
	}
	return stage, nil
}

// UpdateStage edits a stage in place, revalidating the collection.
func (s *Service) UpdateStage(ctx context.Context, taskID, stageID string, in StageInput) (Stage, error) {
	task, err := s.temporaryTask(ctx, taskID)
	if err != nil {
		return Stage{}, err
	}

	candidate := *task
	candidate.Stages = append([]Stage(nil), task.Stages...)
	var updated *Stage
	for i := range candidate.Stages {
		if candidate.Stages[i].ID != stageID {
			continue
		}
		st := &candidate.Stages[i]
		if in.Name != "" {
			st.Name = strings.TrimSpace(in.Name)
		}
		if in.Date != "" {
			if _, err := time.Parse(DateLayout, in.Date); err != nil {
				return Stage{}, fmt.Errorf("invalid stage date %q (want YYYY-MM-DD)", in.Date)
			}
			st.Date = in.Date
		}
		if in.Difficulty != "" {
			st.Difficulty = in.Difficulty
		}
		switch in.DependsOn {
		case "":
		case DependsNone:
			st.DependsOn = ""
		default:
			st.DependsOn = in.DependsOn
		}
		updated = st
		break
	}
	if updated == nil {
		return Stage{}, fmt.Errorf("stage %s not found in task %s", stageID, taskID)
	}
	if err := ValidateStages(&candidate); err != nil {
		return Stage{}, err
	}

	if err := s.tasks.UpdateStage(ctx, stageToRecord(taskID, *updated)); err != nil {
		return Stage{}, err
	}
	return *updated, nil
}

// DeleteStage removes a stage without cascading. Dependents of the removed
// stage become permanently locked, which is an accepted degenerate state.
func (s *Service) DeleteStage(ctx context.Context, taskID, stageID string) error {
	if _, err := s.temporaryTask(ctx, taskID); err != nil {
		return err
	}
	return s.tasks.DeleteStage(ctx, taskID, stageID)
}

func (s *Service) temporaryTask(ctx context.Context, taskID string) (*Task, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	task := FindTask(catalog, taskID)
	if task == nil {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	if task.Type != TaskTemporary {
		return nil, fmt.Errorf("task %s is not a campaign", taskID)
	}
	if !task.IsCustom {
		return nil, fmt.Errorf("task %s is built-in; stages belong to custom campaigns", taskID)
	}
	return task, nil
}

// AcceptChallenge activates an available challenge. Accepting anything else
// reports changed=false without an error.
func (s *Service) AcceptChallenge(ctx context.Context, id string, now time.Time) (Challenge, bool, error) {
	ch, err := s.findChallenge(ctx, id)
	if err != nil {
		return Challenge{}, false, err
	}
	next := Accept(ch, now)
	if next.Status == ch.Status {
		return ch, false, nil
	}
	start := next.StartDate
	if err := s.challenges.UpsertState(ctx, next.ID, string(next.Status), &start); err != nil {
		return Challenge{}, false, err
	}
	return next, true, nil
}

// ClaimChallenge completes an eligible active challenge and reports the
// recomputed evaluation it was judged by. Ineligible claims are no-ops.
func (s *Service) ClaimChallenge(ctx context.Context, id string, now time.Time) (Challenge, Evaluation, bool, error) {
	ch, err := s.findChallenge(ctx, id)
	if err != nil {
		return Challenge{}, Evaluation{}, false, err
	}
	log, err := s.Log(ctx)
	if err != nil {
		return Challenge{}, Evaluation{}, false, err
	}
	ev := EvaluateChallenge(ch, log, Today(now))
	next := Claim(ch, ev.Progress)
	if next.Status == ch.Status {
		return ch, ev, false, nil
	}
	var start *string
	if next.StartDate != "" {
		start = &next.StartDate
	}
	if err := s.challenges.UpsertState(ctx, next.ID, string(next.Status), start); err != nil {
		return Challenge{}, Evaluation{}, false, err
	}
	return next, ev, true, nil
}

// ChallengeProgress recomputes one challenge's standing.
func (s *Service) ChallengeProgress(ctx context.Context, id string, now time.Time) (Challenge, Evaluation, error) {
	ch, err := s.findChallenge(ctx, id)
	if err != nil {
		return Challenge{}, Evaluation{}, err
	}
	log, err := s.Log(ctx)
	if err != nil {
		return Challenge{}, Evaluation{}, err
	}
	return ch, EvaluateChallenge(ch, log, Today(now)), nil
}

func (s *Service) findChallenge(ctx context.Context, id string) (Challenge, error) {
	all, err := s.Challenges(ctx)
	if err != nil {
		return Challenge{}, err
	}
	for _, ch := range all {
		if ch.ID == id {
			return ch, nil
		}
	}
	return Challenge{}, fmt.Errorf("challenge %s not found", id)
}

// Profile returns the onboarding profile or nil before first run.
func (s *Service) Profile(ctx context.Context) (*storage.Profile, error) {
	return s.profiles.Get(ctx, storage.MainProfileKey)
}

func (s *Service) SaveProfile(ctx context.Context, name string, age int, className string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}
	className = strings.TrimSpace(className)
	if className == "" {
		return errors.New("class name is required")
	}
	return s.profiles.Save(ctx, storage.Profile{
		Key:       storage.MainProfileKey,
		Name:      name,
		Age:       age,
		ClassName: className,
	})
}

func taskFromRecord(rec storage.TaskRecord) Task {
	t := Task{
		ID:       rec.ID,
		Name:     rec.Name,
		Type:     TaskType(rec.Type),
		IsCustom: rec.IsCustom,
	}
	for _, c := range rec.Categories {
		t.Categories = append(t.Categories, Category(c))
	}
	if rec.Difficulty != nil {
		t.Difficulty = Difficulty(*rec.Difficulty)
	}
	if rec.Penalty != nil {
		t.Penalty = *rec.Penalty
	}
	for _, s := range rec.Stages {
		stage := Stage{ID: s.ID, Name: s.Name, Date: s.Date}
		if s.Difficulty != nil {
			stage.Difficulty = Difficulty(*s.Difficulty)
		}
		if s.DependsOn != nil {
			stage.DependsOn = *s.DependsOn
		}
		t.Stages = append(t.Stages, stage)
	}
	return t
}

func recordFromTask(t Task) storage.TaskRecord {
	rec := storage.TaskRecord{
		ID:       t.ID,
		Name:     t.Name,
		Type:     string(t.Type),
		IsCustom: t.IsCustom,
	}
	for _, c := range t.Categories {
		rec.Categories = append(rec.Categories, string(c))
	}
	if t.Difficulty != "" {
		v := string(t.Difficulty)
		rec.Difficulty = &v
	}
	if t.Penalty > 0 {
		v := t.Penalty
		rec.Penalty = &v
	}
	return rec
}

func stageToRecord(taskID string, s Stage) storage.StageRecord {
	rec := storage.StageRecord{
		ID:     s.ID,
		TaskID: taskID,
		Name:   s.Name,
		Date:   s.Date,
	}
	if s.Difficulty != "" {
		v := string(s.Difficulty)
		rec.Difficulty = &v
	}
	if s.DependsOn != "" {
		v := s.DependsOn
		rec.DependsOn = &v
	}
	return rec
}

func challengeFromRecord(rec storage.ChallengeRecord) Challenge {
	ch := Challenge{
		ID:       rec.ID,
		Status:   ChallengeStatus(rec.Status),
		IsCustom: rec.IsCustom,
	}
	if rec.StartDate != nil {
		ch.StartDate = *rec.StartDate
	}
	if rec.Title != nil {
		ch.Title = *rec.Title
	}
	if rec.Description != nil {
		ch.Description = *rec.Description
	}
	if rec.Type != nil {
		ch.Type = ChallengeType(*rec.Type)
	}
	if rec.TargetTaskID != nil {
		ch.TargetTaskID = *rec.TargetTaskID
	}
	if rec.DurationDays != nil {
		ch.DurationDays = *rec.DurationDays
	}
	if rec.RewardXP != nil {
		ch.RewardXP = *rec.RewardXP
	}
	return ch
}
