package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository (usable con pool o tx).
type ActivityRepo struct {
	q Querier
}

func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, contact_id, type, description, activity_date, created_at, updated_at`

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ContactID, string(a.Type), a.Description, a.ActivityDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	list, err := collectActivities(rows)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByContact actividades del contacto por fecha descendente.
func (r *ActivityRepo) ListByContact(ctx context.Context, contactID string) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+activityColumns+` FROM activities WHERE contact_id = $1
		ORDER BY activity_date DESC, created_at DESC, id`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return collectActivities(rows)
}

func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+activityColumns+` FROM activities
		ORDER BY activity_date DESC, created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	return collectActivities(rows)
}

func (r *ActivityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func collectActivities(rows pgx.Rows) ([]*entity.Activity, error) {
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var (
			a   entity.Activity
			typ string
		)
		if err := rows.Scan(&a.ID, &a.ContactID, &typ, &a.Description, &a.ActivityDate,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = entity.ActivityType(typ)
		list = append(list, &a)
	}
	return list, rows.Err()
}
