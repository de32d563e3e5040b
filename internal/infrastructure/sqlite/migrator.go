package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jhoicas/contact-crm/internal/infrastructure/migrations"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// NewMigrator carga la cadena embebida y la asocia a la base.
func NewMigrator(db *sql.DB, log *logger.Logger) (*migrations.Migrator, error) {
	chain, err := migrations.Load(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}
	return migrations.NewMigrator(&migrationStore{db: db}, chain, log), nil
}

// migrationStore implementa migrations.Store. Cada paso corre en una conexión fijada con
// foreign_keys desactivado (el PRAGMA no tiene efecto dentro de una transacción), lo que
// permite reconstruir tablas; antes del commit se verifica la integridad referencial.
type migrationStore struct {
	db *sql.DB
}

func (s *migrationStore) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`)
	return err
}

func (s *migrationStore) Applied(ctx context.Context) ([]migrations.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []migrations.Record
	for rows.Next() {
		var (
			rec migrations.Record
			at  string
		)
		if err := rows.Scan(&rec.Version, &rec.Name, &at); err != nil {
			return nil, err
		}
		if rec.AppliedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *migrationStore) Apply(ctx context.Context, m migrations.Migration) error {
	return s.run(ctx, m.Up, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
			m.Version, m.Name, formatTime(time.Now()))
		return err
	})
}

func (s *migrationStore) Revert(ctx context.Context, m migrations.Migration) error {
	return s.run(ctx, m.Down, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version)
		return err
	})
}

func (s *migrationStore) run(ctx context.Context, script string, record func(*sql.Tx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return err
	}
	defer func() { _, _ = conn.ExecContext(context.Background(), `PRAGMA foreign_keys = ON`) }()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if err := record(tx); err != nil {
		return err
	}
	if err := checkForeignKeys(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func checkForeignKeys(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		var (
			table, parent string
			rowid         sql.NullInt64
			fkid          int
		)
		if err := rows.Scan(&table, &rowid, &parent, &fkid); err != nil {
			return err
		}
		return fmt.Errorf("violación de clave foránea en %s (rowid %d) hacia %s", table, rowid.Int64, parent)
	}
	return rows.Err()
}
