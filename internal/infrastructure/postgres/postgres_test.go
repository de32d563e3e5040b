package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contact-crm/internal/domain"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
	"github.com/jhoicas/contact-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/contact-crm/pkg/config"
)

// Requiere una base vacía y desechable: CRM_TEST_DATABASE_URL=postgres://... go test ./...
func openPool(t *testing.T) *postgres.TxRunner {
	t.Helper()
	url := os.Getenv("CRM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CRM_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m, err := postgres.NewMigrator(pool, nil)
	require.NoError(t, err)
	_, err = m.Up(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `TRUNCATE companies, contacts CASCADE`)
	})
	return postgres.NewTxRunner(pool)
}

func TestPostgres_EmpresaYContacto(t *testing.T) {
	runner := openPool(t)
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Microsecond)

	var contactID string
	err := runner.Run(ctx, func(r repository.Set) error {
		co, err := r.Companies.EnsureByName(ctx, &entity.Company{ID: uuid.NewString(), Name: "Acme", CreatedAt: ts, UpdatedAt: ts})
		if err != nil {
			return err
		}
		again, err := r.Companies.EnsureByName(ctx, &entity.Company{ID: uuid.NewString(), Name: "ACME", CreatedAt: ts, UpdatedAt: ts})
		if err != nil {
			return err
		}
		assert.Equal(t, co.ID, again.ID)

		c := &entity.Contact{ID: uuid.NewString(), FullName: "Ana 100%", Phone: "555", CreatedAt: ts, UpdatedAt: ts}
		c.LinkCompany(co)
		contactID = c.ID
		if err := r.Contacts.Create(ctx, c); err != nil {
			return err
		}
		return r.Notes.Create(ctx, &entity.Note{ID: uuid.NewString(), ContactID: c.ID, Content: "n", CreatedAt: ts, UpdatedAt: ts})
	})
	require.NoError(t, err)

	err = runner.Run(ctx, func(r repository.Set) error {
		found, err := r.Contacts.Search(ctx, repository.ContactFilter{Query: "100%", HasPhone: true})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Acme", found[0].DisplayCompany())
		return nil
	})
	require.NoError(t, err)

	err = runner.Run(ctx, func(r repository.Set) error {
		return r.Companies.Create(ctx, &entity.Company{ID: uuid.NewString(), Name: "acme", CreatedAt: ts, UpdatedAt: ts})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = runner.Run(ctx, func(r repository.Set) error {
		if err := r.Contacts.Delete(ctx, contactID); err != nil {
			return err
		}
		notes, err := r.Notes.ListByContact(ctx, contactID)
		require.NoError(t, err)
		assert.Empty(t, notes)
		return nil
	})
	require.NoError(t, err)
}
