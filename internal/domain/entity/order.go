package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado administrativo de un pedido.
type OrderStatus string

// Estados de pedido.
const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses todos los estados válidos, en el orden del ciclo de vida.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderCompleted, OrderCancelled}

// Valid indica si el estado es uno de los permitidos.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Open indica si el pedido sigue abierto (no completado ni cancelado).
func (s OrderStatus) Open() bool {
	return s == OrderPending || s == OrderProcessing || s == OrderShipped
}

// OrderItem línea de pedido. Price es la foto del precio de catálogo al crear el pedido.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// Order cabecera del pedido. TotalAmount e ImportantTransaction siempre se derivan de Items.
type Order struct {
	ID                   string
	CustomerID           string
	Items                []OrderItem
	TotalAmount          decimal.Decimal
	Status               OrderStatus
	ImportantTransaction bool
	Paid                 bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
