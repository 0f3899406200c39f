package repository

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// MarkPaid pone paid = true; nunca lo revierte.
	MarkPaid(ctx context.Context, id string) error
	// HasOpenOrdersForItem indica si algún pedido abierto referencia el artículo.
	HasOpenOrdersForItem(ctx context.Context, itemID string) (bool, error)
}
