package entity

import "time"

// Company representa una empresa a la que pueden pertenecer contactos.
// El nombre es único sin distinguir mayúsculas (índice sobre lower(name)).
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref devuelve la referencia liviana usada por Contact.
func (c *Company) Ref() *CompanyRef {
	if c == nil {
		return nil
	}
	return &CompanyRef{ID: c.ID, Name: c.Name}
}
