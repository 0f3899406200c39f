package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMovement: política de signos y disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_Tabla(t *testing.T) {
	cases := []struct {
		name    string
		current int
		typ     entity.MovementType
		change  int
		wantErr error
	}{
		{"compra positiva", 0, entity.MovementPurchase, 10, nil},
		{"compra negativa", 10, entity.MovementPurchase, -1, domain.ErrValidation},
		{"devolución positiva", 3, entity.MovementReturn, 2, nil},
		{"devolución negativa", 3, entity.MovementReturn, -2, domain.ErrValidation},
		{"venta exacta deja cero", 5, entity.MovementSale, -5, nil},
		{"venta supera stock", 5, entity.MovementSale, -6, domain.ErrInsufficientStock},
		{"venta positiva", 5, entity.MovementSale, 1, domain.ErrValidation},
		{"ajuste negativo", 8, entity.MovementAdjustment, -3, nil},
		{"ajuste supera stock", 2, entity.MovementAdjustment, -3, domain.ErrInsufficientStock},
		{"cambio cero", 8, entity.MovementPurchase, 0, domain.ErrValidation},
		{"tipo desconocido", 8, entity.MovementType("Transfer"), 1, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateMovement(tc.current, tc.typ, tc.change)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NextQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestNextQuantity_SumaDelta(t *testing.T) {
	next, err := inventory.NextQuantity(15, -6)
	require.NoError(t, err)
	assert.Equal(t, 9, next)
}

func TestNextQuantity_NegativoEsUnderflow(t *testing.T) {
	next, err := inventory.NextQuantity(2, -3)
	assert.ErrorIs(t, err, domain.ErrStockUnderflow)
	assert.Equal(t, 2, next, "ante error se devuelve la cantidad actual")
	assert.Equal(t, domain.KindStockUnderflow, domain.KindOf(err))
}
