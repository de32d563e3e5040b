package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/validation"
	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// ContactUseCase casos de uso de contactos, incluida la resolución de empresa.
type ContactUseCase struct {
	tx    TxRunner
	sheet ContactSheetGenerator
}

// NewContactUseCase construye el caso de uso. sheet puede ser nil si no se exporta PDF.
func NewContactUseCase(tx TxRunner, sheet ContactSheetGenerator) *ContactUseCase {
	return &ContactUseCase{tx: tx, sheet: sheet}
}

// List busca contactos según el filtro, ordenados por última modificación.
func (uc *ContactUseCase) List(ctx context.Context, filter repository.ContactFilter) ([]*entity.Contact, error) {
	var list []*entity.Contact
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		list, err = r.Contacts.Search(ctx, filter)
		return err
	})
	return list, err
}

// Detail carga el contacto con sus notas y actividades.
func (uc *ContactUseCase) Detail(ctx context.Context, id string) (*dto.ContactDetail, error) {
	return uc.detail(ctx, id, false)
}

// EditForm carga lo necesario para el formulario de edición: el contacto, sus notas y
// actividades, y las empresas para el selector.
func (uc *ContactUseCase) EditForm(ctx context.Context, id string) (*dto.ContactDetail, error) {
	return uc.detail(ctx, id, true)
}

func (uc *ContactUseCase) detail(ctx context.Context, id string, withCompanies bool) (*dto.ContactDetail, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := &dto.ContactDetail{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		contact, err := loadContact(ctx, r, id)
		if err != nil {
			return err
		}
		out.Contact = contact
		return fillContext(ctx, r, out, withCompanies)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NewForm devuelve las empresas disponibles para el formulario de alta.
func (uc *ContactUseCase) NewForm(ctx context.Context) (*dto.ContactDetail, error) {
	out := &dto.ContactDetail{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		out.Companies, err = r.Companies.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create valida el formulario, resuelve la empresa y persiste el contacto.
//
// En caso de rechazo devuelve *domain.ValidationError junto con el detalle (empresas para
// el selector) necesario para volver a mostrar el formulario; no se persiste nada.
func (uc *ContactUseCase) Create(ctx context.Context, f dto.Form) (*dto.ContactDetail, error) {
	in, msgs := validation.Contact(f)
	out := &dto.ContactDetail{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		if len(msgs) > 0 {
			return rejectContact(ctx, r, out, false, msgs...)
		}
		ts := now()
		contact := &entity.Contact{
			ID:        newID(),
			FullName:  in.FullName,
			Email:     in.Email,
			Phone:     in.Phone,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		company, err := resolveCompany(ctx, r, in, ts)
		if errors.Is(err, domain.ErrInvalidCompany) {
			return rejectContact(ctx, r, out, false, validation.MsgInvalidCompany)
		}
		if err != nil {
			return err
		}
		contact.LinkCompany(company)
		if err := r.Contacts.Create(ctx, contact); err != nil {
			return err
		}
		out.Contact = contact
		return nil
	})
	return out, err
}

// Update reemplaza los campos editables del contacto con la misma validación y resolución
// que Create. En caso de rechazo el detalle incluye las notas y actividades del contacto.
func (uc *ContactUseCase) Update(ctx context.Context, id string, f dto.Form) (*dto.ContactDetail, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	in, msgs := validation.Contact(f)
	out := &dto.ContactDetail{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		contact, err := loadContact(ctx, r, id)
		if err != nil {
			return err
		}
		out.Contact = contact
		if len(msgs) > 0 {
			return rejectContact(ctx, r, out, true, msgs...)
		}
		ts := now()
		company, err := resolveCompany(ctx, r, in, ts)
		if errors.Is(err, domain.ErrInvalidCompany) {
			return rejectContact(ctx, r, out, true, validation.MsgInvalidCompany)
		}
		if err != nil {
			return err
		}
		contact.FullName = in.FullName
		contact.Email = in.Email
		contact.Phone = in.Phone
		contact.LinkCompany(company)
		contact.UpdatedAt = ts
		return r.Contacts.Update(ctx, contact)
	})
	if err != nil && out.Contact == nil {
		return nil, err
	}
	return out, err
}

// Delete elimina el contacto; notas y actividades se borran en cascada en la base.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(r repository.Set) error {
		if _, err := loadContact(ctx, r, id); err != nil {
			return err
		}
		return r.Contacts.Delete(ctx, id)
	})
}

// ExportSheet genera la ficha PDF del contacto y el nombre de archivo sugerido.
func (uc *ContactUseCase) ExportSheet(ctx context.Context, id string) ([]byte, string, error) {
	if uc.sheet == nil {
		return nil, "", errors.New("exportación PDF no configurada")
	}
	detail, err := uc.Detail(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.sheet.GenerateContactSheet(ctx, detail)
	if err != nil {
		return nil, "", err
	}
	return pdf, "contact-" + detail.Contact.ID + ".pdf", nil
}

// resolveCompany aplica la precedencia de empresa: el texto libre gana sobre company_id.
// Con texto se busca la empresa sin distinguir mayúsculas o se crea; con company_id la
// empresa debe existir. Sin ninguno de los dos devuelve nil (el contacto queda sin empresa).
func resolveCompany(ctx context.Context, r repository.Set, in dto.ContactInput, ts time.Time) (*entity.Company, error) {
	if in.Company != "" {
		return r.Companies.EnsureByName(ctx, &entity.Company{
			ID:        newID(),
			Name:      in.Company,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}
	if in.CompanyID == "" {
		return nil, nil
	}
	id, ok := parseID(in.CompanyID)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}
	company, err := r.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidCompany
	}
	return company, nil
}

// rejectContact carga el contexto de re-render y devuelve el error de validación, que
// además provoca el rollback de la transacción.
func rejectContact(ctx context.Context, r repository.Set, out *dto.ContactDetail, withHistory bool, msgs ...string) error {
	var err error
	if withHistory {
		err = fillContext(ctx, r, out, true)
	} else {
		out.Companies, err = r.Companies.List(ctx)
	}
	if err != nil {
		return err
	}
	return domain.NewValidationError(msgs...)
}

func fillContext(ctx context.Context, r repository.Set, out *dto.ContactDetail, withCompanies bool) error {
	var err error
	if out.Notes, err = r.Notes.ListByContact(ctx, out.Contact.ID); err != nil {
		return err
	}
	if out.Activities, err = r.Activities.ListByContact(ctx, out.Contact.ID); err != nil {
		return err
	}
	if withCompanies {
		out.Companies, err = r.Companies.List(ctx)
	}
	return err
}

func loadContact(ctx context.Context, r repository.Set, id string) (*entity.Contact, error) {
	contact, err := r.Contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}
