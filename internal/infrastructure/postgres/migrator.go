package postgres

import (
	"context"
	"embed"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/contact-crm/internal/infrastructure/migrations"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// NewMigrator carga la cadena embebida y la asocia al pool.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) (*migrations.Migrator, error) {
	chain, err := migrations.Load(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}
	return migrations.NewMigrator(&migrationStore{pool: pool}, chain, log), nil
}

// migrationStore implementa migrations.Store. El DDL de PostgreSQL es transaccional, así
// que cada paso y su fila en schema_migrations se confirman juntos.
type migrationStore struct {
	pool *pgxpool.Pool
}

func (s *migrationStore) Ensure(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (s *migrationStore) Applied(ctx context.Context) ([]migrations.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []migrations.Record
	for rows.Next() {
		var rec migrations.Record
		if err := rows.Scan(&rec.Version, &rec.Name, &rec.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *migrationStore) Apply(ctx context.Context, m migrations.Migration) error {
	return s.run(ctx, m.Up, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, $3)`,
			m.Version, m.Name, time.Now().UTC())
		return err
	})
}

func (s *migrationStore) Revert(ctx context.Context, m migrations.Migration) error {
	return s.run(ctx, m.Down, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version)
		return err
	})
}

// run ejecuta el script sin argumentos (protocolo simple de pgx, admite varias sentencias).
func (s *migrationStore) run(ctx context.Context, script string, record func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, script); err != nil {
		return err
	}
	if err := record(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
