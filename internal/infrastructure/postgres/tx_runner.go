package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunReset inicia una transacción con los repos del restablecimiento de
// contraseña y hace Commit o Rollback.
func (r *TxRunner) RunReset(ctx context.Context, fn func(
	users repository.UserRepository,
	tokens repository.ResetTokenRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewResetTokenRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBorradoUsuario inicia una transacción con los repos de la cascada manual
// del borrado de un usuario.
func (r *TxRunner) RunBorradoUsuario(ctx context.Context, fn func(
	users repository.UserRepository,
	checklist repository.ChecklistRepository,
	docs repository.DocumentRepository,
	firmas repository.SignatureRepository,
	tokens repository.ResetTokenRepository,
	planteles repository.PlantelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewUserRepository(tx),
		NewChecklistRepository(tx),
		NewDocumentRepository(tx),
		NewSignatureRepository(tx),
		NewResetTokenRepository(tx),
		NewPlantelRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
