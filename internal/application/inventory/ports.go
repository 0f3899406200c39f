package inventory

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a esa tx.
// Si fn devuelve error todo se revierte; si no, se hace Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// CatalogTxRunner transacción con repos de inventario y pedidos. El borrado de artículos la usa para
// serializarse con la reserva de stock de los pedidos (ambos bloquean la fila del artículo).
type CatalogTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Notifier recibe notificaciones fire-and-forget. No bloquea ni devuelve error.
type Notifier interface {
	Notify(kind entity.NotificationKind, payload any)
}
