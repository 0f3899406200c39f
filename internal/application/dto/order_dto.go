package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea solicitada por el cliente: solo producto y cantidad; el precio lo pone el catálogo.
type OrderLineRequest struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders. No existe campo de total: siempre se deriva.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer"`
	Items      []OrderLineRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID                   string              `json:"id"`
	CustomerID           string              `json:"customer"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	Status               string              `json:"status"`
	ImportantTransaction bool                `json:"important_transaction"`
	Paid                 bool                `json:"paid"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}
