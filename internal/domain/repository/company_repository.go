package repository

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetBy* devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByName busca sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	// EnsureByName inserta la empresa si no existe otra con el mismo nombre (sin distinguir
	// mayúsculas) y devuelve la fila vigente, sea la nueva o la existente.
	EnsureByName(ctx context.Context, company *entity.Company) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context) ([]*entity.Company, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
