package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository sobre SQLite.
type ActivityRepo struct {
	q Querier
}

func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, contact_id, type, description, activity_date, created_at, updated_at`

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ContactID, string(a.Type), a.Description, formatTime(a.ActivityDate),
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func (r *ActivityRepo) ListByContact(ctx context.Context, contactID string) ([]*entity.Activity, error) {
	return r.list(ctx, "list activities",
		`SELECT `+activityColumns+` FROM activities WHERE contact_id = ?
		 ORDER BY activity_date DESC, created_at DESC, id`, contactID)
}

func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	return r.list(ctx, "list recent activities",
		`SELECT `+activityColumns+` FROM activities
		 ORDER BY activity_date DESC, created_at DESC, id LIMIT ?`, limit)
}

func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Activity, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var list []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanActivity(s scanner) (*entity.Activity, error) {
	var (
		a                      entity.Activity
		typ                    string
		when, created, updated string
	)
	if err := s.Scan(&a.ID, &a.ContactID, &typ, &a.Description, &when, &created, &updated); err != nil {
		return nil, err
	}
	a.Type = entity.ActivityType(typ)
	var err error
	if a.ActivityDate, err = parseTime(when); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &a, nil
}
