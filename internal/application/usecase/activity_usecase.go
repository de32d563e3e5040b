package usecase

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/validation"
	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// ActivityUseCase casos de uso de actividades (llamadas, correos, reuniones, tareas).
type ActivityUseCase struct {
	tx TxRunner
}

func NewActivityUseCase(tx TxRunner) *ActivityUseCase {
	return &ActivityUseCase{tx: tx}
}

// Create registra una actividad para el contacto. Contacto inexistente: domain.ErrNotFound.
func (uc *ActivityUseCase) Create(ctx context.Context, contactID string, f dto.Form) (*entity.Activity, error) {
	contactID, ok := parseID(contactID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var activity *entity.Activity
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		if _, err := loadContact(ctx, r, contactID); err != nil {
			return err
		}
		in, msgs := validation.Activity(f)
		if len(msgs) > 0 {
			return domain.NewValidationError(msgs...)
		}
		ts := now()
		activity = &entity.Activity{
			ID:           newID(),
			ContactID:    contactID,
			Type:         in.Type,
			Description:  in.Description,
			ActivityDate: in.ActivityDate,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		return r.Activities.Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (uc *ActivityUseCase) Delete(ctx context.Context, id string) (*entity.Activity, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var activity *entity.Activity
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		activity, err = r.Activities.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity == nil {
			return domain.ErrNotFound
		}
		return r.Activities.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}
