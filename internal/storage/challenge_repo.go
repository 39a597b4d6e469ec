package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ChallengeRepo struct {
	db *sql.DB
}

func NewChallengeRepo(db *sql.DB) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

// UpsertState stores the mutable state of a builtin challenge. The
// definition stays code-defined.
func (r *ChallengeRepo) UpsertState(ctx context.Context, id, status string, startDate *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO challenges (id, status, start_date, is_custom)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, start_date = excluded.start_date
	`, id, status, startDate)
	if err != nil {
		return fmt.Errorf("challenge upsert state: %w", err)
	}
	return nil
}

// InsertCustom stores a full user-created challenge definition.
func (r *ChallengeRepo) InsertCustom(ctx context.Context, c ChallengeRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO challenges (id, status, start_date, is_custom, title, description, type, target_task_id, duration_days, reward_xp)
		VALUES (?, ?, ?, 1, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Status, c.StartDate, c.Title, c.Description, c.Type, c.TargetTaskID, c.DurationDays, c.RewardXP)
	if err != nil {
		return fmt.Errorf("challenge insert: %w", err)
	}
	return nil
}

func (r *ChallengeRepo) ListAll(ctx context.Context) ([]ChallengeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, start_date, is_custom, title, description, type, target_task_id, duration_days, reward_xp
		FROM challenges ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("challenge list: %w", err)
	}
	defer rows.Close()

	var out []ChallengeRecord
	for rows.Next() {
		var (
			c        ChallengeRecord
			start    sql.NullString
			isCustom int
			title    sql.NullString
			desc     sql.NullString
			ctype    sql.NullString
			target   sql.NullString
			days     sql.NullInt64
			reward   sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Status, &start, &isCustom, &title, &desc, &ctype, &target, &days, &reward); err != nil {
			return nil, fmt.Errorf("challenge scan: %w", err)
		}
		c.IsCustom = isCustom != 0
		if start.Valid {
			v := start.String
			c.StartDate = &v
		}
		if title.Valid {
			v := title.String
			c.Title = &v
		}
		if desc.Valid {
			v := desc.String
			c.Description = &v
		}
		if ctype.Valid {
			v := ctype.String
			c.Type = &v
		}
		if target.Valid {
			v := target.String
			c.TargetTaskID = &v
		}
		if days.Valid {
			v := int(days.Int64)
			c.DurationDays = &v
		}
		if reward.Valid {
			v := int(reward.Int64)
			c.RewardXP = &v
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("challenge rows: %w", err)
	}
	return out, nil
}
