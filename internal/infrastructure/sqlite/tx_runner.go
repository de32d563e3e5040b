package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la base abierta por Open.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepositorySet(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositorySet construye los cuatro repos sobre el mismo Querier.
func NewRepositorySet(q Querier) repository.Set {
	return repository.Set{
		Companies:  NewCompanyRepository(q),
		Contacts:   NewContactRepository(q),
		Notes:      NewNoteRepository(q),
		Activities: NewActivityRepository(q),
	}
}
