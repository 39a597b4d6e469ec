package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the profile or nil when onboarding has not happened yet.
func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, name, age, class_name, created_at FROM profile WHERE key = ?`, key)

	var p Profile
	if err := row.Scan(&p.Key, &p.Name, &p.Age, &p.ClassName, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (key, name, age, class_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET name = excluded.name, age = excluded.age, class_name = excluded.class_name
	`, p.Key, p.Name, p.Age, p.ClassName)
	if err != nil {
		return fmt.Errorf("profile save: %w", err)
	}
	return nil
}
