package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/order"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveTotals_IgnoraSubtotalesDelCliente(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "a", Quantity: 3, Price: d("19.99"), Subtotal: d("1")},
		{ProductID: "b", Quantity: 1, Price: d("0.01"), Subtotal: d("999")},
	}
	total := order.DeriveTotals(items)

	assert.True(t, d("59.98").Equal(total), "total = %s", total)
	assert.True(t, d("59.97").Equal(items[0].Subtotal))
	assert.True(t, d("0.01").Equal(items[1].Subtotal))
}

func TestDeriveTotals_SinDerivaDeFlotantes(t *testing.T) {
	items := make([]entity.OrderItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, entity.OrderItem{ProductID: "x", Quantity: 1, Price: d("0.10")})
	}
	assert.True(t, d("1.00").Equal(order.DeriveTotals(items)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbral de pedido grande: inclusivo en 5000
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_UmbralInclusivo(t *testing.T) {
	cases := []struct {
		price     string
		important bool
	}{
		{"5000", true},
		{"4999.99", false},
		{"5000.01", true},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			o := &entity.Order{Items: []entity.OrderItem{{ProductID: "p", Quantity: 1, Price: d(tc.price)}}}
			order.Apply(o, order.DefaultLargeOrderThreshold)
			assert.Equal(t, tc.important, o.ImportantTransaction)
			assert.True(t, d(tc.price).Equal(o.TotalAmount))
		})
	}
}

func TestApply_PedidoVacioTotalCero(t *testing.T) {
	o := &entity.Order{}
	order.Apply(o, order.DefaultLargeOrderThreshold)
	assert.True(t, o.TotalAmount.IsZero())
	assert.False(t, o.ImportantTransaction)
}
