package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Insert(ctx context.Context, t TaskRecord) error {
	cats, err := json.Marshal(t.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, type, categories, difficulty, penalty, is_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Type, string(cats), t.Difficulty, t.Penalty, boolToInt(t.IsCustom))
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*TaskRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, categories, difficulty, penalty, is_custom
		FROM tasks WHERE id = ?
	`, id)
	t, err := scanTask(row)
	if err != nil || t == nil {
		return t, err
	}
	stages, err := r.listStages(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Stages = stages
	return t, nil
}

// ListAll returns every persisted task with its stages attached.
func (r *TaskRepo) ListAll(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, categories, difficulty, penalty, is_custom
		FROM tasks ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []TaskRecord
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}

	for i := range out {
		stages, err := r.listStages(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Stages = stages
	}
	return out, nil
}

// Delete removes a task and its stages. Log rows referencing the ids are
// kept: the stats fold drops dangling ids silently.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stages WHERE task_id = ?`, id); err != nil {
			return fmt.Errorf("stage delete by task: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("task delete: %w", err)
		}
		return nil
	})
}

func (r *TaskRepo) InsertStage(ctx context.Context, s StageRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stages (id, task_id, name, date, difficulty, depends_on)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.TaskID, s.Name, s.Date, s.Difficulty, s.DependsOn)
	if err != nil {
		return fmt.Errorf("stage insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) UpdateStage(ctx context.Context, s StageRecord) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stages SET name = ?, date = ?, difficulty = ?, depends_on = ?
		WHERE id = ? AND task_id = ?
	`, s.Name, s.Date, s.Difficulty, s.DependsOn, s.ID, s.TaskID)
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	return nil
}

// DeleteStage removes one stage. Dependents are left pointing at the dead id
// on purpose; they read as permanently locked.
func (r *TaskRepo) DeleteStage(ctx context.Context, taskID, stageID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ? AND task_id = ?`, stageID, taskID)
	if err != nil {
		return fmt.Errorf("stage delete: %w", err)
	}
	return nil
}

func (r *TaskRepo) listStages(ctx context.Context, taskID string) ([]StageRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, date, difficulty, depends_on
		FROM stages WHERE task_id = ? ORDER BY date ASC, id ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("stage list: %w", err)
	}
	defer rows.Close()

	var out []StageRecord
	for rows.Next() {
		var s StageRecord
		var diff, dep sql.NullString
		if err := rows.Scan(&s.ID, &s.TaskID, &s.Name, &s.Date, &diff, &dep); err != nil {
			return nil, fmt.Errorf("stage scan: %w", err)
		}
		if diff.Valid {
			v := diff.String
			s.Difficulty = &v
		}
		if dep.Valid {
			v := dep.String
			s.DependsOn = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stage rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*TaskRecord, error) {
	var (
		t        TaskRecord
		catsRaw  string
		diff     sql.NullString
		penalty  sql.NullInt64
		isCustom int
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Type, &catsRaw, &diff, &penalty, &isCustom); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	if err := json.Unmarshal([]byte(catsRaw), &t.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	if diff.Valid {
		v := diff.String
		t.Difficulty = &v
	}
	if penalty.Valid {
		v := int(penalty.Int64)
		t.Penalty = &v
	}
	t.IsCustom = isCustom != 0
	return &t, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
