package usecase

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o entra en pánico) se hace rollback; si no, commit.
// Cada caso de uso abre exactamente una transacción por llamada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}

// ContactSheetGenerator genera la ficha PDF de un contacto con sus notas y actividades.
type ContactSheetGenerator interface {
	GenerateContactSheet(ctx context.Context, detail *dto.ContactDetail) ([]byte, error)
}
