package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-orders-api/internal/domain"
)

func TestMapError_SQLStateADominio(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrDuplicate},
		{"uuid inválido", &pgconn.PgError{Code: codeInvalidText}, domain.ErrNotFound},
		{"serialización", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrTransactionAborted},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: codeDeadlockDetected}), domain.ErrTransactionAborted},
		{"cantidad negativa", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: quantityCheck}, domain.ErrStockUnderflow},
		{"otro check", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "inventory_items_price_check"}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError("op", tc.err), tc.want)
		})
	}
}

func TestMapError_ErrorNoPostgresSeEnvuelve(t *testing.T) {
	base := errors.New("conexión cerrada")
	err := mapError("items.get", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.NoError(t, mapError("x", nil))
}

func TestMapError_AbortoNoExponeTextoDelDriver(t *testing.T) {
	pgErr := &pgconn.PgError{Code: codeSerializationFailure, Message: "could not serialize access due to concurrent update"}
	err := mapError("items.apply_delta", pgErr)
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.NotContains(t, err.Error(), "concurrent update")
	assert.NotContains(t, err.Error(), codeSerializationFailure)

	err = aborted("commit transaction", errors.New("conn closed"))
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.NotContains(t, err.Error(), "conn closed")
}
