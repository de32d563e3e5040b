package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación de NoteRepository (usable con pool o tx).
type NoteRepo struct {
	q Querier
}

func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

const noteColumns = `id, contact_id, content, created_at, updated_at`

func (r *NoteRepo) Create(ctx context.Context, note *entity.Note) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.ContactID, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	var n entity.Note
	err := r.q.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id).Scan(
		&n.ID, &n.ContactID, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// ListByContact notas del contacto, la más reciente primero.
func (r *NoteRepo) ListByContact(ctx context.Context, contactID string) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE contact_id = $1 ORDER BY created_at DESC, id`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.ContactID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
