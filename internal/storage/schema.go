package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Only user-created tasks live here; built-ins are code-defined
		// and merged in at load.
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			categories TEXT NOT NULL,
			difficulty TEXT,
			penalty INTEGER,
			is_custom INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS stages (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			difficulty TEXT,
			depends_on TEXT,
			FOREIGN KEY(task_id) REFERENCES tasks(id)
		);`,
		// The day log is a (date, item) set; toggling deletes or inserts
		// a single row.
		`CREATE TABLE IF NOT EXISTS day_log (
			date TEXT NOT NULL,
			item_id TEXT NOT NULL,
			PRIMARY KEY (date, item_id)
		);`,
		// Builtin challenges persist only status/start; customs carry a
		// full definition.
		`CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'available',
			start_date TEXT,
			is_custom INTEGER DEFAULT 0,
			title TEXT,
			description TEXT,
			type TEXT,
			target_task_id TEXT,
			duration_days INTEGER,
			reward_xp INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER DEFAULT 0,
			class_name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_stages_task_id ON stages(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_day_log_date ON day_log(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
