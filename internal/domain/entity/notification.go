package entity

import "github.com/shopspring/decimal"

// NotificationKind tipo de notificación emitida por el núcleo.
type NotificationKind string

// Tipos de notificación.
const (
	NotifyLowStock   NotificationKind = "low-stock"
	NotifyLargeOrder NotificationKind = "large-order"
	NotifyOutOfStock NotificationKind = "out-of-stock"
)

// Notification mensaje encolado hacia los sinks.
type Notification struct {
	Kind    NotificationKind
	Payload any
}

// LowStockAlert payload de "low-stock".
type LowStockAlert struct {
	ItemID          string       `json:"item_id"`
	ItemName        string       `json:"item_name"`
	AuthorID        string       `json:"author_id"`
	CurrentQuantity int          `json:"current_quantity"`
	Threshold       int          `json:"threshold"`
	MovementType    MovementType `json:"movement_type"`
	QuantityChange  int          `json:"quantity_change"`
	UserID          string       `json:"user_id"`
}

// LargeOrderAlert payload de "large-order".
type LargeOrderAlert struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Threshold   decimal.Decimal `json:"threshold"`
}

// OutOfStockAlert payload de "out-of-stock".
type OutOfStockAlert struct {
	OrderID           string   `json:"order_id"`
	ItemID            string   `json:"item_id"`
	ItemName          string   `json:"item_name"`
	Category          Category `json:"category"`
	AuthorID          string   `json:"author_id"`
	RequestedQuantity int      `json:"requested_quantity"`
	Remaining         int      `json:"remaining"`
}
