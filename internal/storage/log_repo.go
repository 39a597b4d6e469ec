package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

// Toggle flips the presence of an item on a date and reports whether the
// item is now present. The date "entry" is implicit: it exists exactly while
// it has rows.
func (r *LogRepo) Toggle(ctx context.Context, date, itemID string) (added bool, err error) {
	err = WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM day_log WHERE date = ? AND item_id = ?`, date, itemID)
		if err != nil {
			return fmt.Errorf("log toggle delete: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("log toggle rows affected: %w", err)
		}
		if n > 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO day_log (date, item_id) VALUES (?, ?)`, date, itemID); err != nil {
			return fmt.Errorf("log toggle insert: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// ListAll returns every membership row, ordered by date then item.
func (r *LogRepo) ListAll(ctx context.Context) ([]DayItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, item_id FROM day_log ORDER BY date ASC, item_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	defer rows.Close()

	var out []DayItem
	for rows.Next() {
		var it DayItem
		if err := rows.Scan(&it.Date, &it.ItemID); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}

// CompletedOn returns the item ids logged for one date.
func (r *LogRepo) CompletedOn(ctx context.Context, date string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id FROM day_log WHERE date = ? ORDER BY item_id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("log day list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("log day scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log day rows: %w", err)
	}
	return out, nil
}
