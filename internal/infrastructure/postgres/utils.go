package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-orders-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02" // id que no es UUID

	quantityCheck = "inventory_items_quantity_check"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isRetryable conflicto de serialización o deadlock: la transacción completa puede reintentarse.
func isRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// aborted registra la causa del driver y devuelve solo ErrTransactionAborted; el texto de
// PostgreSQL no sale hacia los clientes.
func aborted(op string, cause error) error {
	log.Warn().Err(cause).Str("op", op).Str("sqlstate", pgCode(cause)).Msg("transacción abortada")
	return fmt.Errorf("%s: %w", op, domain.ErrTransactionAborted)
}

// mapError traduce errores de PostgreSQL a errores de dominio; el resto se envuelve con op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case pgCode(err) == codeInvalidText:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case isRetryable(err):
		return aborted(op, err)
	case pgCode(err) == codeCheckViolation:
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		if pgErr.ConstraintName == quantityCheck {
			return fmt.Errorf("%s: %w", op, domain.ErrStockUnderflow)
		}
		return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
