package repository

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// NoteRepository define el puerto de persistencia para Note.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	ListByContact(ctx context.Context, contactID string) ([]*entity.Note, error)
	Delete(ctx context.Context, id string) error
}
