package repository

import (
	"context"
	"strings"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// ContactFilter criterios de búsqueda del listado de contactos (se combinan con AND).
type ContactFilter struct {
	Query    string // subcadena, sin distinguir mayúsculas, sobre nombre, email y empresa
	HasEmail bool
	HasPhone bool
}

// likeEscaper escapa los comodines de LIKE con barra invertida (ESCAPE '\' en SQL).
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern devuelve el patrón de subcadena para Query con los comodines escapados,
// de modo que "50%" busca el texto literal. Vacío si no hay texto de búsqueda.
func (f ContactFilter) LikePattern() string {
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(q) + "%"
}

// ContactRepository define el puerto de persistencia para Contact.
// Las lecturas resuelven la empresa enlazada (Contact.Linked) con LEFT JOIN.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	// Search devuelve los contactos ordenados por updated_at descendente.
	Search(ctx context.Context, filter ContactFilter) ([]*entity.Contact, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Contact, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
