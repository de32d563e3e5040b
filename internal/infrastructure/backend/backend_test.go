package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contact-crm/internal/domain/repository"
	"github.com/jhoicas/contact-crm/internal/infrastructure/backend"
	"github.com/jhoicas/contact-crm/pkg/config"
)

func TestOpen_SQLiteMigraYEjecutaTransacciones(t *testing.T) {
	ctx := context.Background()
	b, err := backend.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "data", "crm.db"),
	}, nil)
	require.NoError(t, err)
	defer b.Close()

	n, err := b.Migrator.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	err = b.Tx.Run(ctx, func(r repository.Set) error {
		count, err := r.Contacts.Count(ctx)
		assert.Zero(t, count)
		return err
	})
	assert.NoError(t, err)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := backend.Open(context.Background(), config.DBConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, "mysql")
}
