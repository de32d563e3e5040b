package dto

import "github.com/jhoicas/contact-crm/internal/domain/entity"

// CompanyInput datos normalizados del formulario de empresa.
type CompanyInput struct {
	Name string
}

// CompanyDetail empresa con sus contactos enlazados.
type CompanyDetail struct {
	Company  *entity.Company
	Contacts []*entity.Contact
}
