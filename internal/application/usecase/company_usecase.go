package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/validation"
	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// MsgDuplicateCompany rechazo cuando ya existe una empresa con el mismo nombre (sin distinguir mayúsculas).
const MsgDuplicateCompany = "A company with this name already exists"

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	tx TxRunner
}

// NewCompanyUseCase construye el caso de uso con el runner transaccional.
func NewCompanyUseCase(tx TxRunner) *CompanyUseCase {
	return &CompanyUseCase{tx: tx}
}

// List devuelve todas las empresas ordenadas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context) ([]*entity.Company, error) {
	var list []*entity.Company
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		list, err = r.Companies.List(ctx)
		return err
	})
	return list, err
}

// GetByID obtiene una empresa. domain.ErrNotFound si no existe o el id está mal formado.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var company *entity.Company
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		company, err = loadCompany(ctx, r, id)
		return err
	})
	return company, err
}

// Detail obtiene la empresa junto con sus contactos enlazados.
func (uc *CompanyUseCase) Detail(ctx context.Context, id string) (*dto.CompanyDetail, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := &dto.CompanyDetail{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		company, err := loadCompany(ctx, r, id)
		if err != nil {
			return err
		}
		out.Company = company
		out.Contacts, err = r.Contacts.ListByCompany(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create valida y crea una empresa. Devuelve *domain.ValidationError si el formulario se rechaza.
func (uc *CompanyUseCase) Create(ctx context.Context, f dto.Form) (*entity.Company, error) {
	in, msgs := validation.Company(f)
	if len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs...)
	}
	ts := now()
	company := &entity.Company{
		ID:        newID(),
		Name:      in.Name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		existing, err := r.Companies.GetByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return r.Companies.Create(ctx, company)
	})
	if err != nil {
		return nil, duplicateAsValidation(err)
	}
	return company, nil
}

// Update reemplaza el nombre de la empresa y refresca updated_at.
// El id inexistente tiene prioridad sobre los errores de validación.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, f dto.Form) (*entity.Company, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var company *entity.Company
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		company, err = loadCompany(ctx, r, id)
		if err != nil {
			return err
		}
		in, msgs := validation.Company(f)
		if len(msgs) > 0 {
			return domain.NewValidationError(msgs...)
		}
		existing, err := r.Companies.GetByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != company.ID {
			return domain.ErrDuplicate
		}
		company.Name = in.Name
		company.UpdatedAt = now()
		return r.Companies.Update(ctx, company)
	})
	if err != nil {
		return nil, duplicateAsValidation(err)
	}
	return company, nil
}

// Delete elimina la empresa. Los contactos enlazados quedan con company_id NULL por la
// regla ON DELETE SET NULL de la base; su texto de empresa no cambia.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(r repository.Set) error {
		if _, err := loadCompany(ctx, r, id); err != nil {
			return err
		}
		return r.Companies.Delete(ctx, id)
	})
}

func loadCompany(ctx context.Context, r repository.Set, id string) (*entity.Company, error) {
	company, err := r.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func duplicateAsValidation(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError(MsgDuplicateCompany)
	}
	return err
}
