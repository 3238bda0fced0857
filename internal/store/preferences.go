package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	preferencesTable = "preferences"
	colKey           = "key"
	colValue         = "value"
	colUpdatedAt     = "updated_at"
)

// Preference keys.
const (
	KeyTheme = "theme"
)

// ErrNotFound is returned when a preference has never been set.
var ErrNotFound = errors.New("preference not found")

// PreferenceRepo stores small user settings as key/value pairs.
type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

type preferenceRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := builder().
		Select(colValue).
		From(entsql.Table(preferencesTable)).
		Where(entsql.EQ(colKey, key)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", fmt.Errorf("query preference %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("query preference %q: %w", key, err)
		}
		return "", ErrNotFound
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", fmt.Errorf("scan preference %q: %w", key, err)
	}
	return value, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	query, args := builder().
		Insert(preferencesTable).
		Columns(colKey, colValue, colUpdatedAt).
		Values(key, value, now().UTC()).
		OnConflict(
			entsql.ConflictColumns(colKey),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save preference %q: %w", key, err)
	}
	return nil
}

// Theme returns the saved theme, or ErrNotFound.
func (r *preferenceRepo) Theme(ctx context.Context) (string, error) {
	return r.Get(ctx, KeyTheme)
}

func (r *preferenceRepo) SetTheme(ctx context.Context, theme string) error {
	return r.Set(ctx, KeyTheme, theme)
}
