package order

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// DefaultLargeOrderThreshold total a partir del cual un pedido es una transacción importante.
var DefaultLargeOrderThreshold = decimal.NewFromInt(5000)

// Subtotal = cantidad * precio unitario.
func Subtotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// DeriveTotals recalcula el subtotal de cada línea y devuelve la suma.
// Nunca confía en subtotales o totales recibidos del cliente.
func DeriveTotals(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		items[i].Subtotal = Subtotal(items[i].Quantity, items[i].Price)
		total = total.Add(items[i].Subtotal)
	}
	return total
}

// IsImportant indica si el total alcanza el umbral de pedido grande (inclusive).
func IsImportant(total, threshold decimal.Decimal) bool {
	return total.GreaterThanOrEqual(threshold)
}

// Apply deriva TotalAmount e ImportantTransaction del pedido antes de persistirlo.
func Apply(o *entity.Order, threshold decimal.Decimal) {
	o.TotalAmount = DeriveTotals(o.Items)
	o.ImportantTransaction = IsImportant(o.TotalAmount, threshold)
}
