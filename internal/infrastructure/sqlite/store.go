// Package sqlite implementa los puertos de persistencia sobre SQLite embebido
// (modernc.org/sqlite, sin cgo). Se usa en desarrollo y en los tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// timeLayout ancho fijo y UTC: el orden lexicográfico del TEXT coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Querier abstrae *sql.DB y *sql.Tx para que los repos funcionen con o sin transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre (o crea) la base en path con claves foráneas activas en cada conexión.
// Se limita a una conexión: SQLite serializa las escrituras de todos modos y así
// las transacciones nunca compiten por el lock de la base.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "crm.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullable guarda "" como NULL, igual que los campos opcionales ausentes.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableID(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}

// isUniqueViolation verifica si un error es una violación de índice único.
func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlitelib.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
