package dto

import "github.com/jhoicas/contact-crm/internal/domain/entity"

// ContactInput datos normalizados del formulario de contacto.
// CompanyID llega sin validar: la resolución contra la tabla companies la hace el caso de uso.
type ContactInput struct {
	FullName  string
	Email     string
	Phone     string
	Company   string
	CompanyID string
}

// ContactDetail contexto completo de un contacto para las páginas de detalle y edición.
// Companies alimenta el selector de empresa de los formularios.
type ContactDetail struct {
	Contact    *entity.Contact
	Notes      []*entity.Note
	Activities []*entity.Activity
	Companies  []*entity.Company
}
