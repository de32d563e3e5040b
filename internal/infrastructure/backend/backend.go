// Package backend abre la persistencia elegida por DB_DRIVER y expone lo que necesitan
// los binarios: el runner transaccional y el migrador.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/infrastructure/migrations"
	"github.com/jhoicas/contact-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/contact-crm/internal/infrastructure/sqlite"
	"github.com/jhoicas/contact-crm/pkg/config"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

// Backend conexión abierta con su runner y su migrador.
type Backend struct {
	Driver   string
	Tx       usecase.TxRunner
	Migrator *migrations.Migrator
	close    func()
}

// Open conecta con PostgreSQL (pgxpool) o SQLite según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		m, err := postgres.NewMigrator(pool, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{Driver: cfg.Driver, Tx: postgres.NewTxRunner(pool), Migrator: m, close: pool.Close}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		m, err := sqlite.NewMigrator(db, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Backend{
			Driver:   cfg.Driver,
			Tx:       sqlite.NewTxRunner(db),
			Migrator: m,
			close:    func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
}

// Close libera la conexión.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
