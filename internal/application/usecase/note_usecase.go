package usecase

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/validation"
	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// NoteUseCase casos de uso de notas de un contacto.
type NoteUseCase struct {
	tx TxRunner
}

func NewNoteUseCase(tx TxRunner) *NoteUseCase {
	return &NoteUseCase{tx: tx}
}

// Create agrega una nota al contacto. Si el contacto no existe devuelve domain.ErrNotFound
// antes de validar el formulario.
func (uc *NoteUseCase) Create(ctx context.Context, contactID string, f dto.Form) (*entity.Note, error) {
	contactID, ok := parseID(contactID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var note *entity.Note
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		if _, err := loadContact(ctx, r, contactID); err != nil {
			return err
		}
		in, msgs := validation.Note(f)
		if len(msgs) > 0 {
			return domain.NewValidationError(msgs...)
		}
		ts := now()
		note = &entity.Note{
			ID:        newID(),
			ContactID: contactID,
			Content:   in.Content,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		return r.Notes.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Delete elimina la nota y la devuelve (el llamador usa ContactID para redirigir).
func (uc *NoteUseCase) Delete(ctx context.Context, id string) (*entity.Note, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var note *entity.Note
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		note, err = r.Notes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return domain.ErrNotFound
		}
		return r.Notes.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}
