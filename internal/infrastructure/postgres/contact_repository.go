package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactSelect = `
	SELECT c.id, c.full_name, c.email, c.phone, c.company, c.company_id, co.name,
	       c.created_at, c.updated_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id`

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, full_name, email, phone, company, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		contact.ID, contact.FullName, nullable(contact.Email), nullable(contact.Phone),
		nullable(contact.Company), contact.CompanyID, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto con su empresa enlazada.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, contactSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Update reemplaza los campos editables y el enlace de empresa.
func (r *ContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts
		SET full_name = $2, email = $3, phone = $4, company = $5, company_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		contact.ID, contact.FullName, nullable(contact.Email), nullable(contact.Phone),
		nullable(contact.Company), contact.CompanyID, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Search combina texto libre (ILIKE sobre nombre, email y empresa) y filtros con AND.
func (r *ContactRepo) Search(ctx context.Context, filter repository.ContactFilter) ([]*entity.Contact, error) {
	var (
		where []string
		args  []any
	)
	if pattern := filter.LikePattern(); pattern != "" {
		args = append(args, pattern)
		where = append(where, `(c.full_name ILIKE $1 OR COALESCE(c.email, '') ILIKE $1 OR COALESCE(c.company, '') ILIKE $1)`)
	}
	if filter.HasEmail {
		where = append(where, `COALESCE(c.email, '') <> ''`)
	}
	if filter.HasPhone {
		where = append(where, `COALESCE(c.phone, '') <> ''`)
	}
	query := contactSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY c.updated_at DESC, c.id`
	return r.list(ctx, "search contacts", query, args...)
}

// ListByCompany contactos enlazados a la empresa, por nombre.
func (r *ContactRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Contact, error) {
	return r.list(ctx, "list contacts by company",
		contactSelect+` WHERE c.company_id = $1 ORDER BY lower(c.full_name), c.id`, companyID)
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// Delete elimina el contacto; notas y actividades caen por ON DELETE CASCADE.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c                     entity.Contact
		email, phone, company *string
		linkedName            *string
	)
	if err := row.Scan(&c.ID, &c.FullName, &email, &phone, &company, &c.CompanyID, &linkedName,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Email = deref(email)
	c.Phone = deref(phone)
	c.Company = deref(company)
	if c.CompanyID != nil && linkedName != nil {
		c.Linked = &entity.CompanyRef{ID: *c.CompanyID, Name: *linkedName}
	}
	return &c, nil
}
