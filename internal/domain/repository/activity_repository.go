package repository

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// ActivityRepository define el puerto de persistencia para Activity.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	// ListByContact ordena por activity_date descendente.
	ListByContact(ctx context.Context, contactID string) ([]*entity.Activity, error)
	// ListRecent devuelve las últimas actividades de todos los contactos.
	ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error)
	Delete(ctx context.Context, id string) error
}
