package entity

import "time"

// CompanyRef es la empresa enlazada a un contacto, resuelta vía company_id.
type CompanyRef struct {
	ID   string
	Name string
}

// Contact representa una persona de contacto.
//
// Company es el texto libre heredado de la versión sin tabla companies; CompanyID es la
// referencia normalizada (nil cuando no hay empresa o cuando la empresa fue eliminada).
// Linked se llena al leer con JOIN y solo existe si la referencia resuelve.
type Contact struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Company   string
	CompanyID *string
	Linked    *CompanyRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayCompany devuelve el nombre de empresa a mostrar: primero la empresa enlazada,
// luego el texto heredado, si no vacío.
func (c *Contact) DisplayCompany() string {
	if c.CompanyID != nil && c.Linked != nil {
		return c.Linked.Name
	}
	return c.Company
}

// LinkCompany enlaza el contacto a la empresa y sincroniza el texto heredado con su nombre.
// Con nil limpia ambas fuentes.
func (c *Contact) LinkCompany(company *Company) {
	if company == nil {
		c.CompanyID = nil
		c.Linked = nil
		c.Company = ""
		return
	}
	id := company.ID
	c.CompanyID = &id
	c.Linked = company.Ref()
	c.Company = company.Name
}
