package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre SQLite.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar db o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// contactSelect resuelve la empresa enlazada con LEFT JOIN (co.name NULL si no hay enlace).
const contactSelect = `
	SELECT c.id, c.full_name, c.email, c.phone, c.company, c.company_id, co.name,
	       c.created_at, c.updated_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id`

func (r *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO contacts (id, full_name, email, phone, company, company_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.FullName, nullable(contact.Email), nullable(contact.Phone),
		nullable(contact.Company), nullableID(contact.CompanyID),
		formatTime(contact.CreatedAt), formatTime(contact.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.q.QueryRowContext(ctx, contactSelect+` WHERE c.id = ?`, id)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Update reemplaza los campos editables y el enlace de empresa.
func (r *ContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE contacts
		SET full_name = ?, email = ?, phone = ?, company = ?, company_id = ?, updated_at = ?
		WHERE id = ?`,
		contact.FullName, nullable(contact.Email), nullable(contact.Phone),
		nullable(contact.Company), nullableID(contact.CompanyID),
		formatTime(contact.UpdatedAt), contact.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Search aplica texto libre y filtros con AND. lower() de SQLite solo pliega ASCII;
// se aplica a ambos lados para que la comparación sea simétrica.
func (r *ContactRepo) Search(ctx context.Context, filter repository.ContactFilter) ([]*entity.Contact, error) {
	var (
		where []string
		args  []any
	)
	if pattern := filter.LikePattern(); pattern != "" {
		where = append(where, `(lower(c.full_name) LIKE lower(?) ESCAPE '\'
			OR lower(COALESCE(c.email, '')) LIKE lower(?) ESCAPE '\'
			OR lower(COALESCE(c.company, '')) LIKE lower(?) ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
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
		contactSelect+` WHERE c.company_id = ? ORDER BY lower(c.full_name), c.id`, companyID)
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// Delete elimina el contacto; notas y actividades caen por ON DELETE CASCADE.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

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

func scanContact(s scanner) (*entity.Contact, error) {
	var (
		c                     entity.Contact
		email, phone, company sql.NullString
		companyID, linkedName sql.NullString
		created, updated      string
	)
	if err := s.Scan(&c.ID, &c.FullName, &email, &phone, &company, &companyID, &linkedName,
		&created, &updated); err != nil {
		return nil, err
	}
	c.Email = email.String
	c.Phone = phone.String
	c.Company = company.String
	if companyID.Valid {
		id := companyID.String
		c.CompanyID = &id
		if linkedName.Valid {
			c.Linked = &entity.CompanyRef{ID: id, Name: linkedName.String}
		}
	}
	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}
