// Package migrations carga la cadena ordenada de migraciones SQL (archivos
// NNNN_nombre.up.sql / NNNN_nombre.down.sql) y la aplica sobre un Store concreto.
// Cada dialecto (postgres, sqlite) embebe sus propios archivos e implementa Store.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/contact-crm/pkg/logger"
)

var fileName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// Migration un paso de la cadena. Version es el prefijo numérico del archivo.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Record fila de la tabla schema_migrations.
type Record struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Status estado de una migración conocida.
type Status struct {
	Migration
	Applied   bool
	AppliedAt time.Time
}

// Store operaciones que cada dialecto implementa. Apply y Revert ejecutan el SQL y
// actualizan schema_migrations en una misma transacción.
type Store interface {
	Ensure(ctx context.Context) error
	Applied(ctx context.Context) ([]Record, error)
	Apply(ctx context.Context, m Migration) error
	Revert(ctx context.Context, m Migration) error
}

// Load lee los archivos de dir y devuelve la cadena ordenada por versión.
// Exige que cada versión tenga up y down y que las versiones sean 1..N sin huecos.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	byVersion := map[int]*Migration{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		match := fileName.FindStringSubmatch(e.Name())
		if match == nil {
			return nil, fmt.Errorf("nombre de migración inválido: %s", e.Name())
		}
		version, _ := strconv.Atoi(match[1])
		body, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: match[2]}
			byVersion[version] = m
		}
		if m.Name != match[2] {
			return nil, fmt.Errorf("versión %d con nombres distintos: %s y %s", version, m.Name, match[2])
		}
		if match[3] == "up" {
			m.Up = string(body)
		} else {
			m.Down = string(body)
		}
	}

	list := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("migración %04d_%s incompleta: requiere up y down", m.Version, m.Name)
		}
		list = append(list, *m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	for i, m := range list {
		if m.Version != i+1 {
			return nil, fmt.Errorf("cadena de migraciones con hueco: se esperaba %d, hay %d", i+1, m.Version)
		}
	}
	return list, nil
}

// Migrator aplica y revierte la cadena contra un Store.
type Migrator struct {
	store Store
	chain []Migration
	log   *logger.Logger
}

func NewMigrator(store Store, chain []Migration, log *logger.Logger) *Migrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{store: store, chain: chain, log: log}
}

// Up aplica en orden todas las migraciones pendientes. Devuelve cuántas aplicó.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.appliedSet(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, mig := range m.chain {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		if err := m.store.Apply(ctx, mig); err != nil {
			return n, fmt.Errorf("aplicar %04d_%s: %w", mig.Version, mig.Name, err)
		}
		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("migración aplicada")
		n++
	}
	return n, nil
}

// Down revierte las últimas steps migraciones aplicadas, de la más reciente hacia atrás.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, nil
	}
	applied, err := m.appliedSet(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := len(m.chain) - 1; i >= 0 && n < steps; i-- {
		mig := m.chain[i]
		if _, ok := applied[mig.Version]; !ok {
			continue
		}
		if err := m.store.Revert(ctx, mig); err != nil {
			return n, fmt.Errorf("revertir %04d_%s: %w", mig.Version, mig.Name, err)
		}
		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("migración revertida")
		n++
	}
	return n, nil
}

// Status devuelve el estado de cada migración de la cadena.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.appliedSet(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.chain))
	for _, mig := range m.chain {
		st := Status{Migration: mig}
		if rec, ok := applied[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = rec.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}

func (m *Migrator) appliedSet(ctx context.Context) (map[int]Record, error) {
	if err := m.store.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	records, err := m.store.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	set := make(map[int]Record, len(records))
	for _, r := range records {
		set[r.Version] = r
	}
	return set, nil
}
