package entity

import "time"

// Note es una nota libre asociada a un contacto (se borra en cascada con él).
type Note struct {
	ID        string
	ContactID string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
